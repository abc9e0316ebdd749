// Package cloud defines the control-plane collaborator contract that probes
// consume. Resource identifiers are collaborator-defined paths such as
// "function/orders-api" or "apigw/a1b2c3/stage/prod"; the gate core never
// interprets them beyond pass-through.
package cloud

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned by GetResource when the identifier resolves to no
// resource. Probes translate it into a Fail outcome; it is not a transport
// error.
var ErrNotFound = errors.New("resource not found")

// Resource is the control-plane view of one cloud resource.
type Resource struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
	Document   json.RawMessage   `json:"document,omitempty"`
}

// Attr returns a named attribute, "" when absent.
func (r *Resource) Attr(key string) string {
	if r == nil {
		return ""
	}
	return r.Attributes[key]
}

// Client is the external collaborator every probe runs against. Transport
// failures surface as ordinary errors; callers never inspect transport
// internals.
type Client interface {
	GetResource(ctx context.Context, id string) (*Resource, error)
	ListResources(ctx context.Context, filter string) ([]Resource, error)
	InvokeHTTP(ctx context.Context, url, method string, headers map[string]string, body string) (int, string, error)
}
