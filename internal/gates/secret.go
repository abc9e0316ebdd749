package gates

import (
	"github.com/wiregate/wiregate/internal/config"
	"github.com/wiregate/wiregate/internal/gate"
)

func init() {
	register(gate.Definition{
		ID:      "secret",
		Summary: "secret exists, is policy-protected, and is wired into its consumer",
		Inputs: append(commonInputs("gate_secret_report.json"),
			endpointInput,
			config.Input{Name: "secret_id", Required: true, Secret: true, Usage: "secret reference"},
			config.Input{Name: "name_prefix", Usage: "required secret name prefix (skip when empty)"},
			config.Input{Name: "consumer_function", Usage: "function that must reference the secret (skip when empty)"},
			config.Input{Name: "consumer_env_key", Default: "SECRET_ARN", Usage: "consumer env var holding the secret reference"},
		),
		Steps: secretSteps,
	})
}

func secretSteps(cfg config.Values) ([]gate.Step, error) {
	secretRes := "secret/" + cfg.Get("secret_id")

	steps := []gate.Step{
		{
			Probe: gate.Exists("secret", attr(secretRes, "arn")),
		},
		{
			Probe: gate.Exists("resource policy", attr(secretRes, "policy")),
		},
	}

	if prefix := cfg.Get("name_prefix"); prefix != "" {
		steps = append(steps, gate.Step{
			Probe:    gate.HasPrefix("secret name", attr(secretRes, "name")),
			Expected: prefix,
			Observe:  "secret_name",
		})
	}

	if consumer := cfg.Get("consumer_function"); consumer != "" {
		steps = append(steps, gate.Step{
			Probe:    gate.Equals("consumer wiring", attr("function/"+consumer, "env."+cfg.Get("consumer_env_key"))),
			Expected: cfg.Get("secret_id"),
		})
	}

	return steps, nil
}
