package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/pathmanager"
	"github.com/stretchr/testify/require"
)

// Project is a throwaway project tree rooted in t.TempDir().
type Project struct {
	Root  string
	Paths *pathmanager.PathManager
}

// NewProject creates an empty project with an amplify/backend directory.
func NewProject(t *testing.T) *Project {
	t.Helper()
	root := t.TempDir()
	paths, err := pathmanager.New(root)
	require.NoError(t, err)
	CreateTestDir(t, paths.BackendDirPath())
	return &Project{Root: root, Paths: paths}
}

// CreateTestDir creates dir and its parents.
func CreateTestDir(t *testing.T, dir string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	return dir
}

// WithEnv writes .config/local-env-info.json selecting env.
func (p *Project) WithEnv(t *testing.T, env string) *Project {
	t.Helper()
	WriteJSONFile(t, p.Paths.LocalEnvInfoFilePath(), map[string]interface{}{
		"projectPath": p.Root,
		"envName":     env,
	})
	return p
}

// WriteLegacyStorage lays down the pre-migration files for an S3 resource.
// A nil storageParams leaves storage-params.json absent.
func (p *Project) WriteLegacyStorage(t *testing.T, resource string, parameters, storageParams map[string]interface{}) {
	t.Helper()
	WriteJSONFile(t, p.Paths.ParametersFilePath("storage", resource), parameters)
	WriteJSONFile(t, p.Paths.CfnTemplateFilePath("storage", resource, "S3"), map[string]interface{}{
		"AWSTemplateFormatVersion": "2010-09-09",
		"Resources":                map[string]interface{}{},
	})
	if storageParams != nil {
		WriteJSONFile(t, p.Paths.StorageParamsFilePath("storage", resource), storageParams)
	}
}

// File joins elem onto the project root.
func (p *Project) File(elem ...string) string {
	return filepath.Join(append([]string{p.Root}, elem...)...)
}
