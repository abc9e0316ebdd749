package gates

import (
	"github.com/wiregate/wiregate/internal/config"
	"github.com/wiregate/wiregate/internal/gate"
)

func init() {
	register(gate.Definition{
		ID:      "function",
		Summary: "function exists with the expected runtime, handler, environment and network",
		Inputs: append(commonInputs("gate_function_report.json"),
			endpointInput,
			config.Input{Name: "function_name", Required: true, Usage: "function name"},
			config.Input{Name: "runtime", Default: "python3.12", Usage: "expected runtime"},
			config.Input{Name: "handler", Usage: "expected handler (skip check when empty)"},
			config.Input{Name: "env_key", Usage: "environment variable to verify"},
			config.Input{Name: "env_expected", Usage: "expected value of env_key"},
			config.Input{Name: "vpc_id", Usage: "network the function must be attached to (skip when empty)"},
		),
		Steps: functionSteps,
	})
}

func functionSteps(cfg config.Values) ([]gate.Step, error) {
	fnRes := "function/" + cfg.Get("function_name")

	steps := []gate.Step{
		{
			Probe:   gate.Exists("function", attr(fnRes, "arn")),
			Observe: "function_arn",
		},
		{
			Probe:    gate.Equals("runtime", attr(fnRes, "runtime")),
			Expected: cfg.Get("runtime"),
			Observe:  "runtime",
		},
	}

	if handler := cfg.Get("handler"); handler != "" {
		steps = append(steps, gate.Step{
			Probe:    gate.Equals("handler", attr(fnRes, "handler")),
			Expected: handler,
			Observe:  "handler",
		})
	}

	if key := cfg.Get("env_key"); key != "" {
		steps = append(steps, gate.Step{
			Probe:    gate.Equals("env "+key, attr(fnRes, "env."+key)),
			Expected: cfg.Get("env_expected"),
			Observe:  "env_" + key,
		})
	}

	if vpc := cfg.Get("vpc_id"); vpc != "" {
		steps = append(steps, gate.Step{
			Probe:    gate.Equals("vpc attachment", attr(fnRes, "vpc_id")),
			Expected: vpc,
			Observe:  "vpc_id",
		})
	}

	return steps, nil
}
