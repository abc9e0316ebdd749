package gates

import (
	"fmt"
	"os"

	"github.com/wiregate/wiregate/internal/config"
	"github.com/wiregate/wiregate/internal/gate"
)

func init() {
	register(gate.Definition{
		ID:      "database",
		Summary: "table exists, is active, and matches its configuration baseline",
		Inputs: append(commonInputs("gate_database_report.json"),
			endpointInput,
			config.Input{Name: "table_name", Required: true, Usage: "table name"},
			config.Input{Name: "billing_mode", Default: "PAY_PER_REQUEST", Usage: "expected billing mode"},
			config.Input{Name: "status_set", Default: "ACTIVE,UPDATING", Usage: "acceptable table statuses"},
			config.Input{Name: "baseline_file", Usage: "expected configuration document to diff against (skip when empty)"},
		),
		Steps: databaseSteps,
	})
}

func databaseSteps(cfg config.Values) ([]gate.Step, error) {
	tableRes := "table/" + cfg.Get("table_name")

	steps := []gate.Step{
		{
			Probe:   gate.Exists("table", attr(tableRes, "arn")),
			Observe: "table_arn",
		},
		{
			Probe:    gate.OneOf("table status", attr(tableRes, "status")),
			Expected: cfg.Get("status_set"),
			Observe:  "table_status",
		},
		{
			Probe:    gate.Equals("billing mode", attr(tableRes, "billing_mode")),
			Expected: cfg.Get("billing_mode"),
			Observe:  "billing_mode",
		},
	}

	if path := cfg.Get("baseline_file"); path != "" {
		baseline, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read baseline file: %w", err)
		}
		steps = append(steps, gate.Step{
			Probe: gate.BaselineDiff("table config", baseline, document(tableRes)),
		})
	}

	return steps, nil
}
