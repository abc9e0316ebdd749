// Package report assembles and emits the canonical GateReport artifact.
// One report per gate run, written once, never mutated.
package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gowebpki/jcs"
	"github.com/wiregate/wiregate/internal/models"
)

// TimestampFormat is the fixed UTC layout for timestamp_utc.
const TimestampFormat = "2006-01-02T15:04:05Z"

// Build assembles the report from run metadata and the aggregated lists.
// Secret-flagged inputs are redacted; nil lists and maps come out as their
// empty forms so they serialize as [] and {}, never null.
func Build(gateID, region string, inputs map[string]string, secrets map[string]bool,
	observed map[string]string, details, warnings, failures []string,
	status string, exitCode int, now time.Time) (*models.GateReport, error) {

	r := &models.GateReport{
		SchemaVersion: models.ReportSchemaVersion,
		Gate:          gateID,
		TimestampUTC:  now.UTC().Format(TimestampFormat),
		Region:        region,
		Inputs:        RedactInputs(inputs, secrets),
		Observed:      nonNilMap(observed),
		Status:        status,
		ExitCode:      exitCode,
		Details:       nonNilList(details),
		Warnings:      nonNilList(warnings),
		Failures:      nonNilList(failures),
	}

	digest, err := Digest(r)
	if err != nil {
		return nil, err
	}
	r.ReportDigest = digest

	return r, nil
}

// Digest returns the sha256 hex of the report's RFC 8785 canonical form,
// computed with the digest field itself excluded.
func Digest(r *models.GateReport) (string, error) {
	undigested := *r
	undigested.ReportDigest = ""

	data, err := json.Marshal(&undigested)
	if err != nil {
		return "", fmt.Errorf("marshal report for digest: %w", err)
	}
	canonical, err := jcs.Transform(data)
	if err != nil {
		return "", fmt.Errorf("canonicalize report: %w", err)
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

func nonNilList(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
