package models

import "fmt"

// ReportSchemaVersion current
const ReportSchemaVersion = "1.0"

// OutcomeKind classifies a single probe result.
type OutcomeKind string

const (
	OutcomePass OutcomeKind = "PASS"
	OutcomeWarn OutcomeKind = "WARN"
	OutcomeFail OutcomeKind = "FAIL"
)

// Outcome is the classified result of one probe. Produced exactly once per
// probe and never mutated afterward.
type Outcome struct {
	Kind    OutcomeKind `json:"kind"`
	Message string      `json:"message"`
}

// Pass outcome
func Pass(format string, args ...any) Outcome {
	return Outcome{Kind: OutcomePass, Message: fmt.Sprintf(format, args...)}
}

// Warn outcome
func Warn(format string, args ...any) Outcome {
	return Outcome{Kind: OutcomeWarn, Message: fmt.Sprintf(format, args...)}
}

// Fail outcome
func Fail(format string, args ...any) Outcome {
	return Outcome{Kind: OutcomeFail, Message: fmt.Sprintf(format, args...)}
}

// Gate status values.
const (
	StatusPass = "PASS"
	StatusFail = "FAIL"
)

// Process exit codes. ExitConfigError never reaches a report; a config
// failure aborts before any probe runs.
const (
	ExitPass        = 0
	ExitConfigError = 1
	ExitFail        = 2
	ExitWriteError  = 3
)

// GateReport is the canonical summary of one gate run. Field order is the
// emitted key order; list fields are always present, `[]` when empty.
type GateReport struct {
	SchemaVersion string            `json:"schema_version"`
	Gate          string            `json:"gate"`
	TimestampUTC  string            `json:"timestamp_utc"`
	Region        string            `json:"region"`
	Inputs        map[string]string `json:"inputs"`
	Observed      map[string]string `json:"observed"`
	Status        string            `json:"status"`
	ExitCode      int               `json:"exit_code"`
	Details       []string          `json:"details"`
	Warnings      []string          `json:"warnings"`
	Failures      []string          `json:"failures"`
	ReportDigest  string            `json:"report_digest,omitempty"`
}
