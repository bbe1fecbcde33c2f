package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// =====================================
// File System Testing Utilities
// =====================================

// CreateTestFile writes content to dir/filename, creating parent directories.
func CreateTestFile(t *testing.T, dir, filename, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	return path
}

// WriteJSONFile marshals v into path, creating parent directories.
func WriteJSONFile(t *testing.T, path string, v interface{}) {
	t.Helper()
	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

// ReadJSONFile decodes path into a generic map.
func ReadJSONFile(t *testing.T, path string) map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

// AssertFileExists verifies that a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Fatalf("expected file to exist: %s", path)
	}
}

// AssertFileNotExists verifies that a file does not exist
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Fatalf("expected file to not exist: %s", path)
	}
}

// WithEnvVar sets an environment variable for the duration of the test.
func WithEnvVar(t *testing.T, key, value string) {
	t.Helper()
	t.Setenv(key, value)
}
