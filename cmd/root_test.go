package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runCLI(t *testing.T, p *testutil.Project, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	full := append([]string{
		"--project-dir", p.Root,
		"--log-file", filepath.Join(t.TempDir(), "scaffold.log"),
	}, args...)
	code := Run(context.Background(), full, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func legacyPhotos(t *testing.T) *testutil.Project {
	t.Helper()
	p := testutil.NewProject(t)
	p.WriteLegacyStorage(t, "photos", map[string]interface{}{
		"bucketName":                       "b1",
		"selectedGuestPermissions":         []string{"s3:GetObject", "s3:ListBucket"},
		"selectedAuthenticatedPermissions": []string{"s3:PutObject"},
	}, map[string]interface{}{})
	return p
}

func TestStorageMigrateFlow(t *testing.T) {
	p := legacyPhotos(t)

	code, out, _ := runCLI(t, p, "storage", "status", "photos")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "photos: legacy")

	code, out, _ = runCLI(t, p, "storage", "migrate", "photos")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Migrated photos")
	testutil.AssertFileExists(t, p.Paths.CliInputsFilePath("storage", "photos"))
	testutil.AssertFileNotExists(t, p.Paths.ParametersFilePath("storage", "photos"))

	code, out, _ = runCLI(t, p, "storage", "status", "photos")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "photos: unified")

	code, out, _ = runCLI(t, p, "storage", "inspect", "photos")
	require.Equal(t, 0, code)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "authAndGuest", doc["storageAccess"])
	assert.Equal(t, []interface{}{"read"}, doc["guestAccess"])

	code, out, _ = runCLI(t, p, "storage", "inspect", "photos", "--output", "yaml")
	require.Equal(t, 0, code)
	var ydoc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(out), &ydoc))
	assert.Equal(t, "b1", ydoc["bucketName"])

	// A second migration is refused but is not a failure.
	code, _, errOut := runCLI(t, p, "storage", "migrate", "photos")
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "already uses cli-inputs.json")
}

func TestStorageStatusNotFound(t *testing.T) {
	p := testutil.NewProject(t)
	code, out, _ := runCLI(t, p, "storage", "status", "videos")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "videos: not-found")
}

func TestStorageInspectRequiresMigration(t *testing.T) {
	p := legacyPhotos(t)
	code, _, errOut := runCLI(t, p, "storage", "inspect", "photos")
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "scaffold storage migrate photos")
}

func TestStorageMigrateMissingLegacyFile(t *testing.T) {
	p := testutil.NewProject(t)
	testutil.WriteJSONFile(t, p.Paths.ParametersFilePath("storage", "photos"), map[string]interface{}{})

	code, _, errOut := runCLI(t, p, "storage", "migrate", "photos")
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "not found")
	testutil.AssertFileExists(t, p.Paths.ParametersFilePath("storage", "photos"))
}

func TestStorageMigrateUnknownPermission(t *testing.T) {
	p := testutil.NewProject(t)
	p.WriteLegacyStorage(t, "photos", map[string]interface{}{
		"selectedGuestPermissions": []string{"s3:PutBucketAcl"},
	}, nil)

	code, _, errOut := runCLI(t, p, "storage", "migrate", "photos")
	assert.Equal(t, 3, code)
	assert.Contains(t, errOut, "s3:PutBucketAcl")
}

func TestStorageUpdate(t *testing.T) {
	p := testutil.NewProject(t)
	in := filepath.Join(t.TempDir(), "inputs.json")
	testutil.WriteJSONFile(t, in, map[string]interface{}{
		"guestAccess":     []string{},
		"authAccess":      []string{"read", "delete"},
		"storageAccess":   "auth",
		"triggerFunction": "NONE",
	})

	code, out, _ := runCLI(t, p, "storage", "update", "photos", "--file", in)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Updated")

	doc := testutil.ReadJSONFile(t, p.Paths.CliInputsFilePath("storage", "photos"))
	assert.Equal(t, "photos", doc["resourceName"])
	assert.Equal(t, []interface{}{"read", "delete"}, doc["authAccess"])
}

func TestStorageUpdateInvalid(t *testing.T) {
	p := testutil.NewProject(t)
	in := filepath.Join(t.TempDir(), "inputs.json")
	testutil.WriteJSONFile(t, in, map[string]interface{}{
		"guestAccess": []string{"everything"},
		"authAccess":  []string{},
	})

	code, _, errOut := runCLI(t, p, "storage", "update", "photos", "--file", in)
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "Notice")
	testutil.AssertFileNotExists(t, p.Paths.CliInputsFilePath("storage", "photos"))
}

func TestStorageUpdateLegacyResource(t *testing.T) {
	p := legacyPhotos(t)
	in := filepath.Join(t.TempDir(), "inputs.json")
	testutil.WriteJSONFile(t, in, map[string]interface{}{"guestAccess": []string{}, "authAccess": []string{}})

	code, _, errOut := runCLI(t, p, "storage", "update", "photos", "--file", in)
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "scaffold storage migrate photos")
	testutil.AssertFileNotExists(t, p.Paths.CliInputsFilePath("storage", "photos"))
}

func TestEnvSecretsKey(t *testing.T) {
	p := testutil.NewProject(t).WithEnv(t, "dev")

	code, first, _ := runCLI(t, p, "env", "secrets-key")
	require.Equal(t, 0, code)
	code, second, _ := runCLI(t, p, "env", "secrets-key")
	require.Equal(t, 0, code)
	assert.Equal(t, first, second)
	assert.Len(t, first, 37) // uuid plus newline

	_, err := os.Stat(p.Paths.TeamProviderInfoFilePath())
	assert.NoError(t, err)
}

func TestEnvSecretsKeyWithoutEnvironment(t *testing.T) {
	p := testutil.NewProject(t)
	code, _, errOut := runCLI(t, p, "env", "secrets-key")
	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "local-env-info.json")
}

func TestUnknownLogLevel(t *testing.T) {
	p := testutil.NewProject(t)
	code, _, _ := runCLI(t, p, "--log-level", "chatty", "storage", "status", "photos")
	assert.Equal(t, 1, code)
}
