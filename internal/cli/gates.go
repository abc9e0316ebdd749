package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wiregate/wiregate/internal/gates"
)

var gatesCmd = &cobra.Command{
	Use:   "gates",
	Short: "List the registered gates and their input contracts",
	RunE:  runGates,
}

var gatesVerboseFlag bool

func init() {
	gatesCmd.Flags().BoolVarP(&gatesVerboseFlag, "verbose", "v", false, "Show each gate's input contract")
}

// GetGatesCmd export
func GetGatesCmd() *cobra.Command {
	return gatesCmd
}

func runGates(cmd *cobra.Command, _ []string) error {
	fmt.Print(FormatGatesList(gatesVerboseFlag))
	return nil
}

// FormatGatesList renders the gate catalog.
func FormatGatesList(verbose bool) string {
	var sb strings.Builder

	for _, def := range gates.All() {
		fmt.Fprintf(&sb, "%-10s %s\n", def.ID, def.Summary)
		if !verbose {
			continue
		}
		for _, in := range def.Inputs {
			line := fmt.Sprintf("    %-32s %s", in.EnvVar(), in.Usage)
			if in.Required {
				line += " (required)"
			} else if in.Default != "" {
				line += fmt.Sprintf(" (default %q)", in.Default)
			}
			sb.WriteString(line + "\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
