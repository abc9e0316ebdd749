package gates

import (
	"context"

	"github.com/wiregate/wiregate/internal/cloud"
	"github.com/wiregate/wiregate/internal/config"
	"github.com/wiregate/wiregate/internal/gate"
)

func init() {
	register(gate.Definition{
		ID:      "image",
		Summary: "container image is published and pinned to the expected digest",
		Inputs: append(commonInputs("gate_image_report.json"),
			config.Input{Name: "image_ref", Required: true, Usage: "image reference, e.g. registry/repo:tag"},
			config.Input{Name: "expected_digest", Usage: "required image digest (existence-only when empty)"},
		),
		Steps: imageSteps,
	})
}

func imageSteps(cfg config.Values) ([]gate.Step, error) {
	return imageStepsWith(cfg, cloud.NewRegistryResolver())
}

// imageStepsWith split out so tests can inject a resolver.
func imageStepsWith(cfg config.Values, resolver *cloud.RegistryResolver) ([]gate.Step, error) {
	ref := cfg.Get("image_ref")

	fetchDigest := func(ctx context.Context, _ cloud.Client) (string, error) {
		return resolver.Digest(ref)
	}

	steps := []gate.Step{
		{
			Probe:   gate.Exists("image digest", fetchDigest),
			Observe: "image_digest",
		},
	}

	if want := cfg.Get("expected_digest"); want != "" {
		steps = append(steps, gate.Step{
			Probe:    gate.Equals("digest pin", fetchDigest),
			Expected: want,
		})
	}

	return steps, nil
}
