package report

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/wiregate/wiregate/internal/models"
)

func TestWrite(t *testing.T) {
	r := buildTestReport(t, []string{"api: present"}, nil, nil)

	dir := t.TempDir()
	path := filepath.Join(dir, "reports", "gate_httpapi_report.json")

	if err := Write(path, r); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	var parsed models.GateReport
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("emitted file is not valid JSON: %v", err)
	}
	if parsed.Gate != "httpapi" || parsed.Status != models.StatusPass {
		t.Errorf("parsed = %+v", parsed)
	}
}

func TestWrite_UnwritablePath(t *testing.T) {
	r := buildTestReport(t, nil, nil, nil)

	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Write(filepath.Join(blocker, "report.json"), r)
	if err == nil {
		t.Fatal("expected write error")
	}
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("expected *WriteError, got %T", err)
	}
}

func TestWrite_SchemaViolation(t *testing.T) {
	r := buildTestReport(t, nil, nil, nil)
	r.Status = "BOGUS"

	err := Write(filepath.Join(t.TempDir(), "report.json"), r)
	if err == nil {
		t.Fatal("expected schema validation failure")
	}
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("expected *WriteError, got %T", err)
	}
}
