// Package testutil provides testing utilities for scaffold packages
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_io"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zaptest"
)

// NewTestContext creates a RuntimeContext suitable for testing
func NewTestContext(t *testing.T) *scaffold_io.RuntimeContext {
	t.Helper()
	ctx := context.Background()

	return &scaffold_io.RuntimeContext{
		Ctx:        ctx,
		Log:        zaptest.NewLogger(t),
		Timestamp:  time.Now(),
		Span:       trace.SpanFromContext(ctx),
		Component:  "test",
		Command:    t.Name(),
		Attributes: make(map[string]string),
	}
}
