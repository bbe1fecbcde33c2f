// pkg/statemanager/state.go

// Package statemanager reads and writes the project-level environment
// documents: team-provider-info.json and .config/local-env-info.json.
package statemanager

import (
	"context"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/fileops"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/pathmanager"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_err"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_io"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/shared"
	"github.com/Jeffail/gabs"
	cerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// LocalEnvInfo is the per-checkout environment selection.
type LocalEnvInfo struct {
	ProjectPath   string `json:"projectPath,omitempty"`
	DefaultEditor string `json:"defaultEditor,omitempty"`
	EnvName       string `json:"envName" validate:"required"`
}

// StateManager is the single access point for environment documents.
type StateManager struct {
	paths    *pathmanager.PathManager
	validate *validator.Validate
}

func New(paths *pathmanager.PathManager) *StateManager {
	return &StateManager{paths: paths, validate: validator.New()}
}

// Paths exposes the path manager the state manager was built with.
func (s *StateManager) Paths() *pathmanager.PathManager {
	return s.paths
}

// GetLocalEnvInfo loads the active environment selection.
func (s *StateManager) GetLocalEnvInfo(ctx context.Context) (*LocalEnvInfo, error) {
	path := s.paths.LocalEnvInfoFilePath()

	var info LocalEnvInfo
	found, err := scaffold_io.ReadJSONIfExists(ctx, path, &info)
	if err != nil {
		return nil, scaffold_err.Mark(err, scaffold_err.ErrConfigParse, "read %s", path)
	}
	if !found {
		return nil, scaffold_err.NewExpectedError(cerr.WithHint(
			scaffold_err.Mark(nil, scaffold_err.ErrEnvironmentNotInitialized, "%s not found", path),
			"initialise an environment first so local-env-info.json names the active envName",
		))
	}
	if err := s.validate.Struct(info); err != nil {
		return nil, scaffold_err.NewExpectedError(
			scaffold_err.Mark(err, scaffold_err.ErrEnvironmentNotInitialized, "%s has no envName", path))
	}

	otelzap.Ctx(ctx).Debug("Resolved local environment", zap.String("env", info.EnvName))
	return &info, nil
}

// SetLocalEnvInfo persists the active environment selection.
func (s *StateManager) SetLocalEnvInfo(ctx context.Context, info *LocalEnvInfo) error {
	if err := s.validate.Struct(info); err != nil {
		return scaffold_err.WrapValidationError(err)
	}
	path := s.paths.LocalEnvInfoFilePath()
	if err := scaffold_io.WriteJSON(ctx, path, info); err != nil {
		return scaffold_err.WrapPersistenceError(err, path)
	}
	return nil
}

// TeamProviderInfoExists reports whether team-provider-info.json is on disk.
func (s *StateManager) TeamProviderInfoExists(ctx context.Context) (bool, error) {
	return fileops.NewFileSystemOperations(zap.L()).Exists(ctx, s.paths.TeamProviderInfoFilePath())
}

// GetTeamProviderInfo returns the whole team-provider-info document. A
// missing file yields an empty document so callers can populate it.
func (s *StateManager) GetTeamProviderInfo(ctx context.Context) (*gabs.Container, error) {
	path := s.paths.TeamProviderInfoFilePath()

	var raw map[string]interface{}
	found, err := scaffold_io.ReadJSONIfExists(ctx, path, &raw)
	if err != nil {
		return nil, scaffold_err.Mark(err, scaffold_err.ErrConfigParse, "read %s", path)
	}
	if !found || raw == nil {
		otelzap.Ctx(ctx).Debug("team-provider-info not found, starting empty", zap.String("path", path))
		raw = map[string]interface{}{}
	}
	return gabs.Consume(raw)
}

// SetTeamProviderInfo writes the whole document back.
func (s *StateManager) SetTeamProviderInfo(ctx context.Context, doc *gabs.Container) error {
	if doc == nil || doc.Data() == nil {
		return cerr.AssertionFailedf("team-provider-info document is empty")
	}
	path := s.paths.TeamProviderInfoFilePath()
	if err := scaffold_io.WriteJSON(ctx, path, doc.Data()); err != nil {
		return scaffold_err.WrapPersistenceError(err, path)
	}
	otelzap.Ctx(ctx).Info("team-provider-info updated", zap.String("path", path))
	return nil
}

// EnvProviderValue returns the value at [env][provider][key], or nil.
func EnvProviderValue(doc *gabs.Container, env, key string) interface{} {
	return doc.Search(env, shared.ProviderCloudFormation, key).Data()
}

// SetEnvProviderValue sets [env][provider][key], creating intermediate objects.
func SetEnvProviderValue(doc *gabs.Container, env, key string, value interface{}) error {
	if _, err := doc.Set(value, env, shared.ProviderCloudFormation, key); err != nil {
		return cerr.Wrapf(err, "set %s.%s.%s", env, shared.ProviderCloudFormation, key)
	}
	return nil
}
