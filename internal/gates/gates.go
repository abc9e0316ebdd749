// Package gates registers the built-in gate definitions. Each gate declares
// its input contract and builds an ordered probe list; the probe bodies are
// thin queries against the control-plane collaborator.
package gates

import (
	"context"
	"sort"

	"github.com/wiregate/wiregate/internal/cloud"
	"github.com/wiregate/wiregate/internal/config"
	"github.com/wiregate/wiregate/internal/gate"
)

var registry = map[string]gate.Definition{}

func register(def gate.Definition) {
	registry[def.ID] = def
}

// Lookup returns the gate definition for id.
func Lookup(id string) (gate.Definition, bool) {
	def, ok := registry[id]
	return def, ok
}

// All returns every registered gate, sorted by id.
func All() []gate.Definition {
	out := make([]gate.Definition, 0, len(registry))
	for _, def := range registry {
		out = append(out, def)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// commonInputs shared by every gate.
func commonInputs(defaultReport string) []config.Input {
	return []config.Input{
		{Name: "region", Required: true, Usage: "target region"},
		{Name: "report_file", Default: defaultReport, Usage: "report output path"},
	}
}

// endpointInput for gates that query the control plane.
var endpointInput = config.Input{Name: "endpoint", Required: true, Usage: "control-plane API base URL"}

// attr fetches one attribute of a resource.
func attr(id, key string) gate.Fetch {
	return func(ctx context.Context, c cloud.Client) (string, error) {
		res, err := c.GetResource(ctx, id)
		if err != nil {
			return "", err
		}
		return res.Attr(key), nil
	}
}

// document fetches a resource's raw configuration document.
func document(id string) gate.FetchDocument {
	return func(ctx context.Context, c cloud.Client) ([]byte, error) {
		res, err := c.GetResource(ctx, id)
		if err != nil {
			return nil, err
		}
		return res.Document, nil
	}
}
