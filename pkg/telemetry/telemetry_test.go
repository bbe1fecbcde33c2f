package telemetry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestInitNoopByDefault(t *testing.T) {
	shutdown, err := Init("scaffold", "")
	require.NoError(t, err)

	_, span := Start(context.Background(), "status")
	span.End()
	assert.False(t, span.SpanContext().IsValid())
	assert.NoError(t, shutdown(context.Background()))
}

func TestInitWritesSpansToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace", "spans.jsonl")

	shutdown, err := Init("scaffold", path)
	require.NoError(t, err)

	_, span := Start(context.Background(), "migrate", attribute.String("resource", "photos"))
	span.End()
	require.NoError(t, shutdown(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Name":"migrate"`)
	assert.Contains(t, string(data), "photos")

	_, err = Init("scaffold", "")
	require.NoError(t, err)
}

func TestCommandCategory(t *testing.T) {
	assert.Equal(t, "lifecycle", CommandCategory("migrate"))
	assert.Equal(t, "lifecycle", CommandCategory("update"))
	assert.Equal(t, "secrets", CommandCategory("secrets-key"))
	assert.Equal(t, "general", CommandCategory("status"))
}
