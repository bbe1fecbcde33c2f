// pkg/s3inputstate/state.go

// Package s3inputstate loads, validates, saves and migrates the unified
// cli-inputs.json document of an S3 storage resource.
package s3inputstate

import (
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/fileops"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/pathmanager"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_err"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_io"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/schema"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// SchemaName is the CUE definition cli-inputs.json must satisfy.
const SchemaName = "S3UserInputs"

// InputState is one resource's view of cli-inputs.json.
type InputState struct {
	rc        *scaffold_io.RuntimeContext
	paths     *pathmanager.PathManager
	files     *fileops.FileSystemOperations
	validator *schema.CLIInputSchemaValidator

	category          string
	service           string
	resourceName      string
	cliInputsFilePath string
	buildFilePath     string

	inputPayload *UserInputs
}

// New builds the state for resourceName.
//
// With input set the payload is adopted and validated. Without it an
// existing cli-inputs.json is loaded and validated. When neither is present
// the state stays empty and the caller is expected to Migrate.
func New(rc *scaffold_io.RuntimeContext, paths *pathmanager.PathManager, resourceName string, input *UserInputs) (*InputState, error) {
	if err := pathmanager.ValidateResourceName(resourceName); err != nil {
		return nil, scaffold_err.NewExpectedError(err)
	}

	validator, err := schema.NewCLIInputSchemaValidator(shared.ServiceS3, shared.CategoryStorage, SchemaName)
	if err != nil {
		return nil, cerr.WithStack(err)
	}

	s := &InputState{
		rc:                rc,
		paths:             paths,
		files:             fileops.NewFileSystemOperations(rc.Log),
		validator:         validator,
		category:          shared.CategoryStorage,
		service:           shared.ServiceS3,
		resourceName:      resourceName,
		cliInputsFilePath: paths.CliInputsFilePath(shared.CategoryStorage, resourceName),
		buildFilePath:     paths.ResourceBuildDirPath(shared.CategoryStorage, resourceName),
	}

	switch {
	case input != nil:
		s.inputPayload = input
	case s.CliInputFileExists():
		payload, err := s.GetCliInputPayload()
		if err != nil {
			return nil, err
		}
		s.inputPayload = payload
	default:
		rc.Log.Debug("No cli-inputs.json yet, resource needs migration",
			zap.String("resource", resourceName))
		return s, nil
	}

	if err := s.Validate(s.inputPayload); err != nil {
		return nil, err
	}
	return s, nil
}

// Exists reports whether resourceName already has a cli-inputs.json.
func Exists(rc *scaffold_io.RuntimeContext, paths *pathmanager.PathManager, resourceName string) bool {
	path := paths.CliInputsFilePath(shared.CategoryStorage, resourceName)
	ok, err := fileops.NewFileSystemOperations(rc.Log).Exists(rc.Ctx, path)
	if err != nil {
		rc.Log.Warn("Cannot stat cli-inputs.json", zap.String("path", path), zap.Error(err))
		return false
	}
	return ok
}

// CanResourceBeTransformed is true once the resource has been migrated to
// cli-inputs.json.
func CanResourceBeTransformed(rc *scaffold_io.RuntimeContext, paths *pathmanager.PathManager, resourceName string) bool {
	return Exists(rc, paths, resourceName)
}

func (s *InputState) ResourceName() string      { return s.resourceName }
func (s *InputState) CliInputsFilePath() string { return s.cliInputsFilePath }
func (s *InputState) BuildFilePath() string     { return s.buildFilePath }

// CliInputFileExists reports whether this resource's cli-inputs.json exists.
func (s *InputState) CliInputFileExists() bool {
	return Exists(s.rc, s.paths, s.resourceName)
}

// GetUserInput returns the cached payload or loads it from disk.
func (s *InputState) GetUserInput() (*UserInputs, error) {
	if s.inputPayload != nil {
		return s.inputPayload, nil
	}
	payload, err := s.GetCliInputPayload()
	if err != nil {
		return nil, scaffold_err.NewExpectedError(cerr.WithHint(
			scaffold_err.Mark(err, scaffold_err.ErrMigrationRequired, "storage resource %s has no usable cli-inputs.json", s.resourceName),
			"run \"scaffold storage migrate "+s.resourceName+"\"",
		))
	}
	s.inputPayload = payload
	return payload, nil
}

// GetCliInputPayload reads cli-inputs.json without touching the cache.
func (s *InputState) GetCliInputPayload() (*UserInputs, error) {
	var payload UserInputs
	if err := scaffold_io.ReadJSON(s.rc.Ctx, s.cliInputsFilePath, &payload); err != nil {
		return nil, cerr.WithHint(
			scaffold_err.Mark(err, scaffold_err.ErrConfigParse, "load %s", s.cliInputsFilePath),
			"run \"scaffold storage migrate "+s.resourceName+"\"",
		)
	}
	return &payload, nil
}

// GetCliMetadata returns generated metadata. None is produced yet.
func (s *InputState) GetCliMetadata() *FeatureMetadata {
	return nil
}

// Validate checks input, or the cached payload when input is nil, against
// the S3UserInputs schema. Validator errors are returned unchanged.
func (s *InputState) Validate(input *UserInputs) error {
	if input == nil {
		input = s.inputPayload
	}
	if input == nil {
		loaded, err := s.GetCliInputPayload()
		if err != nil {
			return err
		}
		input = loaded
	}
	return s.validator.ValidateStruct(s.rc.Ctx, input)
}

// UpdateInputPayload replaces the cached payload and re-validates it.
func (s *InputState) UpdateInputPayload(input *UserInputs) error {
	s.inputPayload = input
	return s.Validate(input)
}

// SaveCliInputPayload validates input, caches it and writes cli-inputs.json.
func (s *InputState) SaveCliInputPayload(input *UserInputs) error {
	if err := s.Validate(input); err != nil {
		return err
	}
	s.inputPayload = input

	dir := s.paths.ResourceDirPath(s.category, s.resourceName)
	if err := s.files.CreateDirectory(s.rc.Ctx, dir, shared.DirPermStandard); err != nil {
		return scaffold_err.WrapPersistenceError(err, dir)
	}
	if err := scaffold_io.WriteJSON(s.rc.Ctx, s.cliInputsFilePath, input); err != nil {
		return scaffold_err.WrapPersistenceError(err, s.cliInputsFilePath)
	}

	s.rc.Log.Info("Saved cli-inputs.json",
		zap.String("resource", s.resourceName),
		zap.String("path", s.cliInputsFilePath))
	return nil
}
