package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/wiregate/wiregate/internal/cloud"
	"github.com/wiregate/wiregate/internal/config"
	"github.com/wiregate/wiregate/internal/gate"
	"github.com/wiregate/wiregate/internal/gates"
	"github.com/wiregate/wiregate/internal/models"
	"github.com/wiregate/wiregate/internal/observability"
	"github.com/wiregate/wiregate/internal/observability/logging"
	otelobs "github.com/wiregate/wiregate/internal/observability/otel"
	"github.com/wiregate/wiregate/internal/policy"
	"github.com/wiregate/wiregate/internal/report"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var runCmd = &cobra.Command{
	Use:   "run <gate-id>",
	Short: "Run one verification gate and emit its report",
	Long: `Runs every probe of the named gate in declared order against the live
environment, then writes the canonical JSON report and exits with the
gate's verdict.

Inputs are resolved per input from the process environment (WIREGATE_*),
then the defaults file, then the gate's built-in default. A missing
required input aborts before any probe runs and before any report is
written.

Exit codes:
  0  gate passed
  1  configuration error (no report written)
  2  gate failed (one or more failures recorded)
  3  report could not be written

Examples:
  # Run the HTTP API gate
  WIREGATE_REGION=eu-west-1 WIREGATE_ENDPOINT=https://cp.internal \
    WIREGATE_API_ID=a1b2c3 WIREGATE_INTEGRATION_TARGET=orders-handler \
    wiregate run httpapi

  # Apply a policy preset and get the report on stdout
  wiregate run httpapi --policy=baseline --format=json

  # Shared input defaults for CI
  wiregate run database --defaults ci-defaults.yaml`,
	Args:         cobra.ExactArgs(1),
	RunE:         runRun,
	SilenceUsage: true,
}

var (
	runDefaultsFlag string
	runReportFlag   string
	runFormatFlag   string
	runPolicyFlag   string
	runTimeoutFlag  time.Duration
)

func init() {
	runCmd.Flags().StringVar(&runDefaultsFlag, "defaults", "", "Path to YAML input defaults file")
	runCmd.Flags().StringVar(&runReportFlag, "report", "", "Report output path (overrides the report_file input)")
	runCmd.Flags().StringVar(&runFormatFlag, "format", "text", "Output format: text or json")
	runCmd.Flags().StringVar(&runPolicyFlag, "policy", "", "Policy to apply: baseline, strict, or path to YAML file")
	runCmd.Flags().DurationVarP(&runTimeoutFlag, "timeout", "t", 0, "Overall probe-run timeout (0 = no timeout)")
}

// GetRunCmd export
func GetRunCmd() *cobra.Command {
	return runCmd
}

// runRun delegates to executeRun so every deferred lifecycle handler (span
// end, run.complete event) unwinds before the process exits; os.Exit runs
// no deferred calls.
func runRun(cmd *cobra.Command, args []string) error {
	code, err := executeRun(cmd, args)
	if err != nil {
		return err
	}
	if code != models.ExitPass {
		// os.Exit directly so Cobra's error prefix never corrupts stdout.
		exitRun(cmd, code)
	}
	return nil
}

func executeRun(cmd *cobra.Command, args []string) (code int, err error) {
	ctx := cmd.Context()
	gateID := args[0]

	log := logging.From(ctx)
	start := time.Now()

	if runFormatFlag != "text" && runFormatFlag != "json" {
		return 0, fmt.Errorf("invalid format: %s (use text or json)", runFormatFlag)
	}

	def, ok := gates.Lookup(gateID)
	if !ok {
		return 0, fmt.Errorf("unknown gate: %s (run 'wiregate gates' for the list)", gateID)
	}

	// Resolve inputs and the policy reference before anything observable
	// happens. A config error aborts the run: no probes, no report.
	defaults, err := config.LoadDefaults(runDefaultsFlag)
	if err != nil {
		return 0, err
	}
	cfg, err := config.Resolve(gateID, def.Inputs, defaults, nil)
	if err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprint(os.Stderr, config.Usage(gateID, def.Inputs))
		}
		return 0, err
	}
	var policyConfig *models.PolicyConfig
	if runPolicyFlag != "" {
		policyConfig, err = policy.Load(runPolicyFlag)
		if err != nil {
			return 0, err
		}
	}

	// Start OTel span if enabled
	if h := otelobs.From(ctx); h != nil {
		var span trace.Span
		ctx, span = h.Tracer.Start(ctx, "wiregate.run",
			trace.WithAttributes(
				attribute.String("wiregate.run_id", observability.RunID(ctx)),
				attribute.String("wiregate.gate", gateID),
				attribute.String("wiregate.region", cfg.Get("region")),
			))
		defer func() {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, "failed")
			} else {
				span.SetStatus(codes.Ok, "success")
			}
			span.End()
		}()
	}

	log.Event(ctx, "run.start", map[string]any{"gate": gateID})

	var resultStatus string
	defer func() {
		log.Event(ctx, "run.complete", map[string]any{
			"gate":        gateID,
			"duration_ms": time.Since(start).Milliseconds(),
			"result":      resultStatus,
		})
	}()

	steps, err := def.Steps(cfg)
	if err != nil {
		resultStatus = "fail"
		return 0, fmt.Errorf("gate %s: %w", gateID, err)
	}

	runCtx := ctx
	if runTimeoutFlag > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, runTimeoutFlag)
		defer cancel()
	}

	exec := &gate.Executor{Client: cloud.NewHTTPClient(cfg.Get("endpoint"))}
	rec := gate.NewRecorder()
	exec.Run(runCtx, steps, rec)

	if policyConfig != nil {
		if policyErr := applyPolicy(policyConfig, gateID, cfg, rec); policyErr != nil {
			resultStatus = "fail"
			return 0, policyErr
		}
	}

	status, exitCode := rec.Resolve()

	r, err := report.Build(gateID, cfg.Get("region"), cfg.Map(), cfg.Secrets(),
		rec.Observed(), rec.Details(), rec.Warnings(), rec.Failures(),
		status, exitCode, time.Now())
	if err != nil {
		resultStatus = "fail"
		return 0, fmt.Errorf("assemble report: %w", err)
	}

	reportPath := runReportFlag
	if reportPath == "" {
		reportPath = cfg.Get("report_file")
	}
	if writeErr := report.Write(reportPath, r); writeErr != nil {
		resultStatus = "fail"
		fmt.Fprintln(os.Stderr, writeErr)
		return models.ExitWriteError, nil
	}

	if runFormatFlag == "json" {
		jsonOutput, jsonErr := FormatJSONOutput(r)
		if jsonErr != nil {
			resultStatus = "fail"
			return 0, fmt.Errorf("format report: %w", jsonErr)
		}
		fmt.Println(string(jsonOutput))
	} else {
		fmt.Print(FormatRunSummary(r, reportPath))
	}

	if status == models.StatusFail {
		resultStatus = "fail"
		return exitCode, nil
	}

	resultStatus = "success"
	return models.ExitPass, nil
}

// applyPolicy evaluates the policy over the finished run and folds failed
// rules back into the recorder before the status is resolved. Error-severity
// rules become failures, warn-severity rules become warnings.
func applyPolicy(policyConfig *models.PolicyConfig, gateID string, cfg config.Values, rec *gate.Recorder) error {
	engine, err := policy.NewEngine()
	if err != nil {
		return fmt.Errorf("create policy engine: %w", err)
	}

	input := policy.BuildInput(gateID, cfg.Get("region"), cfg.Map(),
		rec.Observed(), rec.Details(), rec.Warnings(), rec.Failures())

	results := engine.Evaluate(policyConfig, input)
	for _, res := range results {
		if res.Passed {
			continue
		}
		msg := res.FailureMsg
		if msg == "" {
			msg = "rule evaluated to false"
		}
		switch res.Severity {
		case models.PolicySeverityWarn:
			rec.Append(models.Warn("policy %s: %s", res.RuleName, msg))
		default:
			rec.Append(models.Fail("policy %s: %s", res.RuleName, msg))
		}
	}
	rec.Append(models.Pass("policy %s: %d rule(s) evaluated", policyConfig.Name, len(results)))
	return nil
}

// exitRun flushes observability state and exits with code. PersistentPostRun
// never fires after os.Exit, so the teardown happens here.
func exitRun(cmd *cobra.Command, code int) {
	teardownObservability(cmd, nil)
	os.Exit(code)
}
