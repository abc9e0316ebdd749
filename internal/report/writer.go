package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wiregate/wiregate/internal/models"
)

// WriteError marks a report that could not be emitted. Surfaced to stderr
// and mapped to a dedicated exit code, never silently dropped.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write report %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Write validates the report against the embedded schema and writes it to
// path, creating parent directories as needed.
func Write(path string, r *models.GateReport) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if err := Validate(data); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &WriteError{Path: path, Err: err}
		}
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	return nil
}
