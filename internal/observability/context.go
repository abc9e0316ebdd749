// Package observability provides structured logging and run identity for
// wiregate.
package observability

import (
	"context"
	"crypto/rand"
	"fmt"
)

type runIDKey struct{}

// WithRunID generates a new run ID and stores it in the context.
// Each CLI invocation calls this once at startup.
func WithRunID(ctx context.Context) context.Context {
	return context.WithValue(ctx, runIDKey{}, generateUUID())
}

// RunID retrieves the run ID from context, "" if unset.
func RunID(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey{}).(string); ok {
		return id
	}
	return ""
}

// generateUUID creates a UUID v4 string
func generateUUID() string {
	var uuid [16]byte
	if _, err := rand.Read(uuid[:]); err != nil {
		return "00000000-0000-0000-0000-000000000000"
	}
	uuid[6] = (uuid[6] & 0x0f) | 0x40
	uuid[8] = (uuid[8] & 0x3f) | 0x80
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		uuid[0:4], uuid[4:6], uuid[6:8], uuid[8:10], uuid[10:16])
}
