package gate

import "github.com/wiregate/wiregate/internal/models"

// Recorder owns the three ordered outcome lists plus the observed-value map
// for one gate run. Append-only; append order is preserved per list and is
// the audit trail. One Recorder per run, threaded explicitly, never ambient.
type Recorder struct {
	details  []string
	warnings []string
	failures []string
	observed map[string]string
}

// NewRecorder empty
func NewRecorder() *Recorder {
	return &Recorder{
		details:  []string{},
		warnings: []string{},
		failures: []string{},
		observed: map[string]string{},
	}
}

// Append routes an outcome's message into exactly one list by kind.
func (r *Recorder) Append(o models.Outcome) {
	switch o.Kind {
	case models.OutcomeWarn:
		r.warnings = append(r.warnings, o.Message)
	case models.OutcomeFail:
		r.failures = append(r.failures, o.Message)
	default:
		r.details = append(r.details, o.Message)
	}
}

// Observe records a raw observed value under name. Empty values are kept
// out of the map; later observations of the same name win.
func (r *Recorder) Observe(name, value string) {
	if name == "" || value == "" {
		return
	}
	r.observed[name] = value
}

func (r *Recorder) Details() []string  { return r.details }
func (r *Recorder) Warnings() []string { return r.warnings }
func (r *Recorder) Failures() []string { return r.failures }

// Observed returns a copy of the observed-value map.
func (r *Recorder) Observed() map[string]string {
	out := make(map[string]string, len(r.observed))
	for k, v := range r.observed {
		out[k] = v
	}
	return out
}

// Resolve derives the overall status and process exit code. Pure function
// of the failures list; warnings never influence either.
func (r *Recorder) Resolve() (string, int) {
	if len(r.failures) > 0 {
		return models.StatusFail, models.ExitFail
	}
	return models.StatusPass, models.ExitPass
}
