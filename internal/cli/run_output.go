package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/wiregate/wiregate/internal/models"
)

// colors
const (
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorReset  = "\033[0m"
)

// FormatRunSummary renders the human-readable verdict for a finished run.
// The full evidence lives in the report file; this is the operator's glance.
func FormatRunSummary(r *models.GateReport, reportPath string) string {
	var sb strings.Builder

	if r.Status == models.StatusPass {
		sb.WriteString(fmt.Sprintf("%swiregate %s: PASS%s", colorGreen, r.Gate, colorReset))
	} else {
		sb.WriteString(fmt.Sprintf("%swiregate %s: FAIL%s", colorRed, r.Gate, colorReset))
	}
	sb.WriteString(fmt.Sprintf(" (region=%s, failures=%d, warnings=%d)\n",
		r.Region, len(r.Failures), len(r.Warnings)))

	if len(r.Failures) > 0 {
		sb.WriteString(fmt.Sprintf("%sFAILURES (%d)%s\n", colorRed, len(r.Failures), colorReset))
		for _, f := range r.Failures {
			sb.WriteString("  ✗ " + f + "\n")
		}
	}
	if len(r.Warnings) > 0 {
		sb.WriteString(fmt.Sprintf("%sWARNINGS (%d)%s\n", colorYellow, len(r.Warnings), colorReset))
		for _, w := range r.Warnings {
			sb.WriteString("  ! " + w + "\n")
		}
	}

	sb.WriteString(fmt.Sprintf("Report: %s\n", reportPath))
	return sb.String()
}

// FormatJSONOutput emits the report itself, indented, for CI consumption.
func FormatJSONOutput(r *models.GateReport) ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}
