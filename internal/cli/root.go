package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/wiregate/wiregate/internal/observability"
	"github.com/wiregate/wiregate/internal/observability/logging"
	otelobs "github.com/wiregate/wiregate/internal/observability/otel"
	"github.com/wiregate/wiregate/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "wiregate",
	Short: "Deployment gates for cloud infrastructure",
	Long: `wiregate runs one-shot verification gates against deployed cloud
infrastructure and emits a canonical JSON report per run.

A gate is an ordered list of probes; a failing probe never stops the run,
so the report always carries the full picture of what is wrong.`,
	Version:           version.BuildVersion(),
	PersistentPreRunE: setupObservability,
	PersistentPostRun: teardownObservability,
}

var (
	logFormatFlag      string
	logLevelFlag       string
	logOutputFlag      string
	otelEnabledFlag    bool
	otelEndpointFlag   string
	otelProtocolFlag   string
	otelInsecureFlag   bool
	otelSampleFlag     float64
	otelShutdown       func(context.Context) error
	activeLogger       logging.Logger
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logFormatFlag, "log-format", "off", "Run log format: jsonl or off")
	pf.StringVar(&logLevelFlag, "log-level", "info", "Minimum log level: debug, info, warn, error")
	pf.StringVar(&logOutputFlag, "log-output", "stderr", "Log destination: stderr or a file path")
	pf.BoolVar(&otelEnabledFlag, "otel", false, "Enable OpenTelemetry tracing")
	pf.StringVar(&otelEndpointFlag, "otel-endpoint", "", "OTLP endpoint (default per protocol)")
	pf.StringVar(&otelProtocolFlag, "otel-protocol", otelobs.ProtocolHTTP, "OTLP protocol: otlphttp or otlpgrpc")
	pf.BoolVar(&otelInsecureFlag, "otel-insecure", false, "Allow insecure OTLP connections")
	pf.Float64Var(&otelSampleFlag, "otel-sample-ratio", 1.0, "Trace sample ratio (0..1)")

	rootCmd.AddCommand(GetRunCmd())
	rootCmd.AddCommand(GetGatesCmd())
}

// setupObservability threads the run ID, logger, and optional tracer through
// the command context before any subcommand runs.
func setupObservability(cmd *cobra.Command, _ []string) error {
	ctx := observability.WithRunID(cmd.Context())

	log, err := logging.NewLogger(logging.Config{
		Format: logFormatFlag,
		Level:  logLevelFlag,
		Output: logOutputFlag,
	})
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}
	activeLogger = log
	ctx = logging.WithLogger(ctx, log)

	if otelEnabledFlag {
		cfg := otelobs.DefaultConfig()
		cfg.Enabled = true
		cfg.Endpoint = otelEndpointFlag
		cfg.Protocol = otelProtocolFlag
		cfg.Insecure = otelInsecureFlag
		cfg.SampleRatio = otelSampleFlag

		handle, initErr := otelobs.Init(ctx, cfg)
		if initErr != nil {
			return fmt.Errorf("initialize tracing: %w", initErr)
		}
		otelShutdown = handle.Shutdown
		ctx = otelobs.WithHandle(ctx, handle)
	}

	cmd.SetContext(ctx)
	return nil
}

func teardownObservability(cmd *cobra.Command, _ []string) {
	if otelShutdown != nil {
		_ = otelShutdown(cmd.Context())
	}
	if activeLogger != nil {
		_ = activeLogger.Close()
	}
}

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
