package gate

import (
	"context"

	"github.com/wiregate/wiregate/internal/cloud"
	"github.com/wiregate/wiregate/internal/models"
	"github.com/wiregate/wiregate/internal/observability/logging"
)

// Executor runs an ordered list of steps against one collaborator client.
// Execution is strictly sequential; a failing probe never aborts the rest
// of the run, so the gate reports the full picture of what is wrong.
type Executor struct {
	Client cloud.Client
}

// Run executes every step in declared order, appending each outcome to the
// recorder. Probe panics are recovered into Fail outcomes.
func (e *Executor) Run(ctx context.Context, steps []Step, rec *Recorder) {
	log := logging.From(ctx)

	for _, step := range steps {
		outcome, observed := e.runStep(ctx, step)
		rec.Append(outcome)
		if step.Observe != "" {
			rec.Observe(step.Observe, observed)
		}
		log.Event(ctx, "probe.complete", map[string]any{
			"probe": step.Probe.Name(),
			"kind":  string(outcome.Kind),
		})
	}
}

func (e *Executor) runStep(ctx context.Context, step Step) (outcome models.Outcome, observed string) {
	defer func() {
		if p := recover(); p != nil {
			outcome = models.Fail("%s: panic: %v", step.Probe.Name(), p)
			observed = ""
		}
	}()
	return step.Probe.Execute(ctx, e.Client, step.Expected)
}
