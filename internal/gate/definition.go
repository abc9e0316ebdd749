package gate

import "github.com/wiregate/wiregate/internal/config"

// Definition describes one registered gate: its identity, input contract,
// and how to build its ordered probe list from resolved inputs.
type Definition struct {
	ID      string
	Summary string
	Inputs  []config.Input
	Steps   func(cfg config.Values) ([]Step, error)
}
