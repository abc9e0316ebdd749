package gate

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/wiregate/wiregate/internal/cloud"
	"github.com/wiregate/wiregate/internal/models"
)

type panicProbe struct{}

func (panicProbe) Name() string { return "panicky" }
func (panicProbe) Execute(context.Context, cloud.Client, string) (models.Outcome, string) {
	panic("boom")
}

func TestExecutor_RunsAllStepsInOrder(t *testing.T) {
	exec := &Executor{Client: &fakeClient{}}
	rec := NewRecorder()

	steps := []Step{
		{Probe: Equals("first", fetchConst("v1", nil)), Expected: "v1", Observe: "first"},
		{Probe: Equals("second", fetchConst("bad", nil)), Expected: "good"},
		{Probe: Equals("third", fetchConst("", errors.New("timeout"))), Expected: "v3"},
		{Probe: Equals("fourth", fetchConst("v4", nil)), Expected: "v4", Observe: "fourth"},
	}

	exec.Run(context.Background(), steps, rec)

	// a failing probe never stops the run
	if got := rec.Details(); !reflect.DeepEqual(got, []string{"first: v1", "fourth: v4"}) {
		t.Errorf("details = %v", got)
	}
	failures := rec.Failures()
	if len(failures) != 2 {
		t.Fatalf("failures = %v, want 2 entries", failures)
	}
	if !strings.Contains(failures[0], "second") || !strings.Contains(failures[1], "third") {
		t.Errorf("failure order not preserved: %v", failures)
	}

	observed := rec.Observed()
	if observed["first"] != "v1" || observed["fourth"] != "v4" {
		t.Errorf("observed = %v", observed)
	}
}

func TestExecutor_RecoversProbePanic(t *testing.T) {
	exec := &Executor{Client: &fakeClient{}}
	rec := NewRecorder()

	steps := []Step{
		{Probe: panicProbe{}},
		{Probe: Equals("after", fetchConst("ok", nil)), Expected: "ok"},
	}

	exec.Run(context.Background(), steps, rec)

	failures := rec.Failures()
	if len(failures) != 1 || !strings.Contains(failures[0], "panicky: panic: boom") {
		t.Errorf("failures = %v", failures)
	}
	if got := rec.Details(); !reflect.DeepEqual(got, []string{"after: ok"}) {
		t.Errorf("probe after panic did not run: details = %v", got)
	}
}

func TestExecutor_NotFoundIsFailure(t *testing.T) {
	client := &fakeClient{resources: map[string]*cloud.Resource{}}
	exec := &Executor{Client: client}
	rec := NewRecorder()

	fetch := func(ctx context.Context, c cloud.Client) (string, error) {
		res, err := c.GetResource(ctx, "function/missing")
		if err != nil {
			return "", err
		}
		return res.Attr("runtime"), nil
	}

	exec.Run(context.Background(), []Step{{Probe: Exists("function", fetch)}}, rec)

	status, code := rec.Resolve()
	if status != models.StatusFail || code != models.ExitFail {
		t.Errorf("Resolve() = (%s, %d), want (FAIL, 2)", status, code)
	}
	if !strings.Contains(rec.Failures()[0], "resource not found") {
		t.Errorf("failures = %v", rec.Failures())
	}
}
