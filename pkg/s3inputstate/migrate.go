// pkg/s3inputstate/migrate.go

package s3inputstate

import (
	"strings"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/s3permissions"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_err"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

const groupPermissionMapKey = "groupPermissionMap"

// legacyParameters is the subset of parameters.json carried into cli-inputs.json.
type legacyParameters struct {
	BucketName                       string                            `mapstructure:"bucketName"`
	TriggerFunction                  string                            `mapstructure:"triggerFunction"`
	SelectedGuestPermissions         []s3permissions.CfnPermissionType `mapstructure:"selectedGuestPermissions"`
	SelectedAuthenticatedPermissions []s3permissions.CfnPermissionType `mapstructure:"selectedAuthenticatedPermissions"`
}

type legacyStorageParams struct {
	GroupPermissionMap map[string][]s3permissions.StorageParamsPermissionType `mapstructure:"groupPermissionMap"`
}

// Migrate converts the legacy parameters, template and storage-params files
// into cli-inputs.json and then removes them. Nothing is deleted unless the
// new file was written.
func (s *InputState) Migrate() error {
	log := s.rc.Log.With(zap.String("resource", s.resourceName))
	log.Info("Migrating storage resource to cli-inputs.json")

	params, err := s.GetOldS3ParamsForMigration()
	if err != nil {
		return err
	}

	inputs, err := s.GenInputParametersForMigration(params)
	if err != nil {
		return err
	}

	if err := s.SaveCliInputPayload(inputs); err != nil {
		return err
	}

	if err := s.RemoveOldS3ConfigFiles(params); err != nil {
		log.Warn("Some legacy files could not be removed", zap.Error(err))
	}

	log.Info("Migration complete", zap.String("path", s.cliInputsFilePath))
	return nil
}

// GetOldS3ParamsForMigration reads the three legacy files. parameters.json and
// the CloudFormation template are required; storage-params.json defaults to {}.
func (s *InputState) GetOldS3ParamsForMigration() (*MigrationParams, error) {
	p := &MigrationParams{
		ParametersFilePath:    s.paths.ParametersFilePath(s.category, s.resourceName),
		CfnFilePath:           s.paths.CfnTemplateFilePath(s.category, s.resourceName, s.service),
		StorageParamsFilePath: s.paths.StorageParamsFilePath(s.category, s.resourceName),
	}

	var err error
	if p.Parameters, err = s.readLegacyFile(p.ParametersFilePath, true); err != nil {
		return nil, err
	}
	if p.Cfn, err = s.readLegacyFile(p.CfnFilePath, true); err != nil {
		return nil, err
	}
	if p.StorageParams, err = s.readLegacyFile(p.StorageParamsFilePath, false); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *InputState) readLegacyFile(path string, required bool) (map[string]interface{}, error) {
	exists, err := s.files.Exists(s.rc.Ctx, path)
	if err != nil {
		return nil, cerr.WithStack(err)
	}
	if !exists {
		if !required {
			return map[string]interface{}{}, nil
		}
		return nil, scaffold_err.NewExpectedError(cerr.WithHint(
			scaffold_err.Mark(nil, scaffold_err.ErrMissingLegacyFile, "%s not found", path),
			"restore the resource's legacy files from version control, or re-add the storage resource",
		))
	}

	doc := map[string]interface{}{}
	if err := scaffold_io.ReadJSON(s.rc.Ctx, path, &doc); err != nil {
		return nil, scaffold_err.Mark(err, scaffold_err.ErrConfigParse, "read legacy file")
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	return doc, nil
}

// GenInputParametersForMigration builds the unified payload from legacy files.
func (s *InputState) GenInputParametersForMigration(p *MigrationParams) (*UserInputs, error) {
	var params legacyParameters
	if err := decodeLegacy(p.Parameters, &params); err != nil {
		return nil, scaffold_err.Mark(err, scaffold_err.ErrConfigParse, "decode %s", p.ParametersFilePath)
	}

	inputs := &UserInputs{
		ResourceName:    s.resourceName,
		BucketName:      params.BucketName,
		PolicyUUID:      buildShortUUID(),
		GuestAccess:     []s3permissions.PermissionType{},
		AuthAccess:      []s3permissions.PermissionType{},
		TriggerFunction: TriggerFunctionNone,
	}
	if params.TriggerFunction != "" {
		inputs.TriggerFunction = params.TriggerFunction
	}

	var err error
	if inputs.AuthAccess, err = s3permissions.CfnListToUser(params.SelectedAuthenticatedPermissions); err != nil {
		return nil, cerr.Wrapf(err, "selectedAuthenticatedPermissions in %s", p.ParametersFilePath)
	}
	if inputs.GuestAccess, err = s3permissions.CfnListToUser(params.SelectedGuestPermissions); err != nil {
		return nil, cerr.Wrapf(err, "selectedGuestPermissions in %s", p.ParametersFilePath)
	}
	// GetObject and ListBucket both become read.
	inputs.AuthAccess = uniquePermissions(inputs.AuthAccess)
	inputs.GuestAccess = uniquePermissions(inputs.GuestAccess)

	switch {
	case len(params.SelectedGuestPermissions) > 0:
		inputs.StorageAccess = AccessAuthAndGuest
	case len(params.SelectedAuthenticatedPermissions) > 0:
		inputs.StorageAccess = AccessAuthOnly
	}

	if _, ok := p.StorageParams[groupPermissionMapKey]; ok {
		var sp legacyStorageParams
		if err := decodeLegacy(p.StorageParams, &sp); err != nil {
			return nil, scaffold_err.Mark(err, scaffold_err.ErrConfigParse, "decode %s", p.StorageParamsFilePath)
		}
		if inputs.GroupAccess, err = s3permissions.LegacyGroupMapToUser(sp.GroupPermissionMap); err != nil {
			return nil, cerr.Wrapf(err, "groupPermissionMap in %s", p.StorageParamsFilePath)
		}
	}

	return inputs, nil
}

// RemoveOldS3ConfigFiles deletes each legacy file that exists. Every file is
// attempted; failures are collected.
func (s *InputState) RemoveOldS3ConfigFiles(p *MigrationParams) error {
	var result *multierror.Error
	for _, path := range []string{p.CfnFilePath, p.ParametersFilePath, p.StorageParamsFilePath} {
		removed, err := s.files.RemoveIfExists(s.rc.Ctx, path)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		if removed {
			s.rc.Log.Debug("Removed legacy file", zap.String("path", path))
		}
	}
	return result.ErrorOrNil()
}

func decodeLegacy(in map[string]interface{}, out interface{}) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:  out,
		TagName: "mapstructure",
	})
	if err != nil {
		return err
	}
	return dec.Decode(in)
}

// buildShortUUID returns the first group of a random v4 UUID.
func buildShortUUID() string {
	return strings.SplitN(uuid.NewString(), "-", 2)[0]
}

func uniquePermissions(in []s3permissions.PermissionType) []s3permissions.PermissionType {
	seen := make(map[s3permissions.PermissionType]bool, len(in))
	out := make([]s3permissions.PermissionType, 0, len(in))
	for _, p := range in {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
