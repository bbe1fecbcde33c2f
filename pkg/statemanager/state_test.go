package statemanager

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/pathmanager"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_err"
	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStateManager(t *testing.T) (*StateManager, *pathmanager.PathManager) {
	t.Helper()
	pm, err := pathmanager.New(t.TempDir())
	require.NoError(t, err)
	return New(pm), pm
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestGetLocalEnvInfo(t *testing.T) {
	ctx := context.Background()
	sm, pm := newStateManager(t)

	_, err := sm.GetLocalEnvInfo(ctx)
	require.Error(t, err)
	assert.True(t, cerr.Is(err, scaffold_err.ErrEnvironmentNotInitialized))
	assert.True(t, scaffold_err.IsExpectedUserError(err))

	writeFile(t, pm.LocalEnvInfoFilePath(), `{"projectPath":"/p","defaultEditor":"code","envName":"dev"}`)
	info, err := sm.GetLocalEnvInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dev", info.EnvName)
	assert.Equal(t, "code", info.DefaultEditor)
}

func TestGetLocalEnvInfoWithoutEnvName(t *testing.T) {
	ctx := context.Background()
	sm, pm := newStateManager(t)
	writeFile(t, pm.LocalEnvInfoFilePath(), `{"projectPath":"/p"}`)

	_, err := sm.GetLocalEnvInfo(ctx)
	require.Error(t, err)
	assert.True(t, cerr.Is(err, scaffold_err.ErrEnvironmentNotInitialized))
}

func TestGetLocalEnvInfoMalformed(t *testing.T) {
	ctx := context.Background()
	sm, pm := newStateManager(t)
	writeFile(t, pm.LocalEnvInfoFilePath(), `{"envName":`)

	_, err := sm.GetLocalEnvInfo(ctx)
	require.Error(t, err)
	assert.True(t, cerr.Is(err, scaffold_err.ErrConfigParse))
}

func TestSetLocalEnvInfo(t *testing.T) {
	ctx := context.Background()
	sm, _ := newStateManager(t)

	err := sm.SetLocalEnvInfo(ctx, &LocalEnvInfo{})
	require.Error(t, err)
	assert.True(t, cerr.Is(err, scaffold_err.ErrSchemaValidation))

	require.NoError(t, sm.SetLocalEnvInfo(ctx, &LocalEnvInfo{EnvName: "prod"}))
	info, err := sm.GetLocalEnvInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "prod", info.EnvName)
}

func TestTeamProviderInfoRoundTrip(t *testing.T) {
	ctx := context.Background()
	sm, pm := newStateManager(t)

	exists, err := sm.TeamProviderInfoExists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	doc, err := sm.GetTeamProviderInfo(ctx)
	require.NoError(t, err)
	assert.Nil(t, EnvProviderValue(doc, "dev", "StackId"))

	require.NoError(t, SetEnvProviderValue(doc, "dev", "prePushDeploymentSecretsKey", "k1"))
	require.NoError(t, sm.SetTeamProviderInfo(ctx, doc))

	exists, err = sm.TeamProviderInfoExists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	reloaded, err := sm.GetTeamProviderInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "k1", EnvProviderValue(reloaded, "dev", "prePushDeploymentSecretsKey"))

	raw, err := os.ReadFile(pm.TeamProviderInfoFilePath())
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"awscloudformation": {`)
}

func TestTeamProviderInfoKeepsOtherEnvironments(t *testing.T) {
	ctx := context.Background()
	sm, pm := newStateManager(t)
	writeFile(t, pm.TeamProviderInfoFilePath(), `{
  "prod": {"awscloudformation": {"Region": "eu-west-1"}, "categories": {"storage": {}}},
  "dev": {"awscloudformation": {"Region": "us-east-1"}}
}`)

	doc, err := sm.GetTeamProviderInfo(ctx)
	require.NoError(t, err)
	require.NoError(t, SetEnvProviderValue(doc, "dev", "prePushDeploymentSecretsKey", "k2"))
	require.NoError(t, sm.SetTeamProviderInfo(ctx, doc))

	reloaded, err := sm.GetTeamProviderInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", EnvProviderValue(reloaded, "prod", "Region"))
	assert.Equal(t, "us-east-1", EnvProviderValue(reloaded, "dev", "Region"))
	assert.Equal(t, "k2", EnvProviderValue(reloaded, "dev", "prePushDeploymentSecretsKey"))
	assert.True(t, reloaded.Exists("prod", "categories", "storage"))
}

func TestSetEnvProviderValueCollision(t *testing.T) {
	ctx := context.Background()
	sm, pm := newStateManager(t)
	writeFile(t, pm.TeamProviderInfoFilePath(), `{"dev": {"awscloudformation": "not-an-object"}}`)

	doc, err := sm.GetTeamProviderInfo(ctx)
	require.NoError(t, err)
	assert.Error(t, SetEnvProviderValue(doc, "dev", "prePushDeploymentSecretsKey", "k3"))
}

func TestGetTeamProviderInfoMalformed(t *testing.T) {
	ctx := context.Background()
	sm, pm := newStateManager(t)
	writeFile(t, pm.TeamProviderInfoFilePath(), `[1,2`)

	_, err := sm.GetTeamProviderInfo(ctx)
	require.Error(t, err)
	assert.True(t, cerr.Is(err, scaffold_err.ErrConfigParse))
}

func TestSetTeamProviderInfoRejectsNil(t *testing.T) {
	sm, _ := newStateManager(t)
	assert.Error(t, sm.SetTeamProviderInfo(context.Background(), nil))
}
