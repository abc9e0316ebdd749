package gates

import (
	"fmt"

	"github.com/wiregate/wiregate/internal/config"
	"github.com/wiregate/wiregate/internal/gate"
)

func init() {
	register(gate.Definition{
		ID:      "httpapi",
		Summary: "HTTP API wired to its backing function and answering live",
		Inputs: append(commonInputs("gate_httpapi_report.json"),
			endpointInput,
			config.Input{Name: "api_id", Required: true, Usage: "API identifier"},
			config.Input{Name: "stage", Default: "prod", Usage: "deployment stage"},
			config.Input{Name: "route_path", Default: "/health", Usage: "route to exercise"},
			config.Input{Name: "http_method", Default: "GET", Usage: "method for the live invocation"},
			config.Input{Name: "integration_target", Required: true, Usage: "function the route must integrate with"},
			config.Input{Name: "success_marker", Default: `"status":"ok"`, Usage: "body substring expected from the live invocation"},
			config.Input{Name: "invoke_url", Usage: "override for the live invocation URL"},
		),
		Steps: httpapiSteps,
	})
}

func httpapiSteps(cfg config.Values) ([]gate.Step, error) {
	apiID := cfg.Get("api_id")
	stage := cfg.Get("stage")
	route := cfg.Get("route_path")

	apiRes := "apigw/" + apiID
	stageRes := fmt.Sprintf("apigw/%s/stage/%s", apiID, stage)
	routeRes := fmt.Sprintf("apigw/%s/route%s", apiID, route)

	invokeURL := cfg.Get("invoke_url")
	if invokeURL == "" {
		invokeURL = fmt.Sprintf("https://%s.execute-api.%s.amazonaws.com/%s%s",
			apiID, cfg.Get("region"), stage, route)
	}

	return []gate.Step{
		{
			Probe:   gate.Exists("api", attr(apiRes, "name")),
			Observe: "api_name",
		},
		{
			Probe:    gate.OneOf("stage status", attr(stageRes, "status")),
			Expected: "ACTIVE,AVAILABLE",
			Observe:  "stage_status",
		},
		{
			Probe:    gate.HasPrefix("api endpoint", attr(apiRes, "endpoint")),
			Expected: "https://",
			Observe:  "api_endpoint",
		},
		{
			Probe:    gate.Equals("route integration", attr(routeRes, "integration_target")),
			Expected: cfg.Get("integration_target"),
			Observe:  "integration_target",
		},
		{
			Probe:    gate.HTTPCheck("live invoke", invokeURL, cfg.Get("http_method"), cfg.Get("success_marker"), nil, ""),
			Expected: "200",
			Observe:  "live_invoke_status",
		},
	}, nil
}
