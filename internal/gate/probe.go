// Package gate implements the common gate-execution core: ordered probe
// execution against external state, tolerant failure classification, and
// insertion-ordered aggregation of the classified outcomes.
package gate

import (
	"context"
	"fmt"
	"strings"

	"github.com/wiregate/wiregate/internal/cloud"
	"github.com/wiregate/wiregate/internal/differ"
	"github.com/wiregate/wiregate/internal/models"
)

// Probe is one atomic check comparing an observed external value against an
// expected value. Execute returns the classified outcome plus the raw
// observed value for the report's observed map ("" when nothing was
// observed).
type Probe interface {
	Name() string
	Execute(ctx context.Context, client cloud.Client, expected string) (models.Outcome, string)
}

// Step pairs a probe with its expected value and the observed-map key the
// fetched value is recorded under (empty to skip recording).
type Step struct {
	Probe    Probe
	Expected string
	Observe  string
}

// Fetch retrieves one observed value from the collaborator.
type Fetch func(ctx context.Context, client cloud.Client) (string, error)

type fetchProbe struct {
	name    string
	fetch   Fetch
	compare func(expected, observed string) models.Outcome
}

func (p *fetchProbe) Name() string { return p.name }

func (p *fetchProbe) Execute(ctx context.Context, client cloud.Client, expected string) (models.Outcome, string) {
	observed, err := p.fetch(ctx, client)
	if err != nil {
		return models.Fail("%s: %v", p.name, err), ""
	}
	return p.compare(expected, observed), observed
}

// Equals passes when the observed value matches the expected value exactly.
// The failure message carries both values verbatim.
func Equals(name string, fetch Fetch) Probe {
	return &fetchProbe{name: name, fetch: fetch, compare: func(expected, observed string) models.Outcome {
		if observed == expected {
			return models.Pass("%s: %s", name, observed)
		}
		return models.Fail("%s: expected %q, observed %q", name, expected, observed)
	}}
}

// Exists passes when the observed value is present (non-empty); the expected
// value is ignored.
func Exists(name string, fetch Fetch) Probe {
	return &fetchProbe{name: name, fetch: fetch, compare: func(_, observed string) models.Outcome {
		if observed == "" {
			return models.Fail("%s: not present", name)
		}
		return models.Pass("%s: present (%s)", name, observed)
	}}
}

// HasPrefix passes when the observed value starts with the expected prefix.
func HasPrefix(name string, fetch Fetch) Probe {
	return &fetchProbe{name: name, fetch: fetch, compare: func(expected, observed string) models.Outcome {
		if strings.HasPrefix(observed, expected) {
			return models.Pass("%s: %s", name, observed)
		}
		return models.Fail("%s: expected prefix %q, observed %q", name, expected, observed)
	}}
}

// OneOf passes when the observed value is a member of the expected
// comma-separated set.
func OneOf(name string, fetch Fetch) Probe {
	return &fetchProbe{name: name, fetch: fetch, compare: func(expected, observed string) models.Outcome {
		for _, member := range strings.Split(expected, ",") {
			if observed == strings.TrimSpace(member) {
				return models.Pass("%s: %s", name, observed)
			}
		}
		return models.Fail("%s: expected one of %q, observed %q", name, expected, observed)
	}}
}

// HTTPCheck is the live functional probe: invoke the URL and require the
// expected status code plus, when marker is non-empty, a body substring.
// The expected value is the status code as a string, e.g. "200".
func HTTPCheck(name, url, method, marker string, headers map[string]string, body string) Probe {
	return &httpProbe{name: name, url: url, method: method, marker: marker, headers: headers, body: body}
}

type httpProbe struct {
	name    string
	url     string
	method  string
	marker  string
	headers map[string]string
	body    string
}

func (p *httpProbe) Name() string { return p.name }

func (p *httpProbe) Execute(ctx context.Context, client cloud.Client, expected string) (models.Outcome, string) {
	code, respBody, err := client.InvokeHTTP(ctx, p.url, p.method, p.headers, p.body)
	if err != nil {
		return models.Fail("%s: %v", p.name, err), ""
	}

	observed := fmt.Sprintf("%d", code)
	if observed != expected {
		return models.Fail("%s: %s %s did not return %s (http_code=%d)", p.name, p.method, p.url, expected, code), observed
	}
	if p.marker != "" && !strings.Contains(respBody, p.marker) {
		return models.Fail("%s: response missing expected marker %q", p.name, p.marker), observed
	}
	return models.Pass("%s: HTTP %s from %s", p.name, observed, p.url), observed
}

// FetchDocument retrieves a resource configuration document.
type FetchDocument func(ctx context.Context, client cloud.Client) ([]byte, error)

// BaselineDiff compares an observed configuration document against the
// expected baseline document. Drift is a Warn outcome listing the changes,
// not a Fail; a fetch or diff error is still a Fail.
func BaselineDiff(name string, baseline []byte, fetch FetchDocument) Probe {
	return &baselineProbe{name: name, baseline: baseline, fetch: fetch}
}

type baselineProbe struct {
	name     string
	baseline []byte
	fetch    FetchDocument
}

func (p *baselineProbe) Name() string { return p.name }

func (p *baselineProbe) Execute(ctx context.Context, client cloud.Client, _ string) (models.Outcome, string) {
	doc, err := p.fetch(ctx, client)
	if err != nil {
		return models.Fail("%s: %v", p.name, err), ""
	}

	changes, err := differ.CompareBaseline(p.baseline, doc)
	if err != nil {
		return models.Fail("%s: %v", p.name, err), ""
	}
	if len(changes) == 0 {
		return models.Pass("%s: matches baseline", p.name), ""
	}
	return models.Warn("%s: drift from baseline: %s", p.name, strings.Join(changes, "; ")), ""
}
