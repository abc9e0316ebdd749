// Package differ compares observed resource configuration documents against
// expected baseline documents and renders the differences as human-readable
// change messages.
package differ

import (
	"fmt"

	"github.com/wI2L/jsondiff"
)

// CompareBaseline diffs the observed document against the expected baseline.
// Returns one message per distinct change, nil when the documents match.
func CompareBaseline(expected, observed []byte) ([]string, error) {
	patch, err := jsondiff.CompareJSON(expected, observed)
	if err != nil {
		return nil, fmt.Errorf("compare configuration documents: %w", err)
	}
	return Translate(patch), nil
}
