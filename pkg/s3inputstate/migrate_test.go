package s3inputstate

import (
	"regexp"
	"testing"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/s3permissions"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_err"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/testutil"
	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var shortUUID = regexp.MustCompile(`^[a-f0-9]{8}$`)

type legacyPaths struct {
	parameters, cfn, storageParams string
}

func legacyFiles(p *testutil.Project, resource string) legacyPaths {
	return legacyPaths{
		parameters:    p.Paths.ParametersFilePath("storage", resource),
		cfn:           p.Paths.CfnTemplateFilePath("storage", resource, "S3"),
		storageParams: p.Paths.StorageParamsFilePath("storage", resource),
	}
}

func migrateResource(t *testing.T, p *testutil.Project, resource string) (*InputState, error) {
	t.Helper()
	rc := testutil.NewTestContext(t)
	s, err := New(rc, p.Paths, resource, nil)
	require.NoError(t, err)
	return s, s.Migrate()
}

func TestMigrateAuthAndGuest(t *testing.T) {
	p := testutil.NewProject(t)
	p.WriteLegacyStorage(t, "photos", map[string]interface{}{
		"bucketName":                       "b1",
		"selectedGuestPermissions":         []string{"s3:GetObject", "s3:ListBucket"},
		"selectedAuthenticatedPermissions": []string{"s3:PutObject"},
	}, map[string]interface{}{})
	files := legacyFiles(p, "photos")

	s, err := migrateResource(t, p, "photos")
	require.NoError(t, err)

	got, err := s.GetUserInput()
	require.NoError(t, err)
	assert.Equal(t, "photos", got.ResourceName)
	assert.Equal(t, "b1", got.BucketName)
	assert.Equal(t, []s3permissions.PermissionType{s3permissions.PermissionRead}, got.GuestAccess)
	assert.Equal(t, []s3permissions.PermissionType{s3permissions.PermissionCreateAndUpdate}, got.AuthAccess)
	assert.Equal(t, AccessAuthAndGuest, got.StorageAccess)
	assert.Equal(t, TriggerFunctionNone, got.TriggerFunction)
	assert.Nil(t, got.GroupAccess)
	assert.Regexp(t, shortUUID, got.PolicyUUID)

	doc := testutil.ReadJSONFile(t, s.CliInputsFilePath())
	assert.Equal(t, "authAndGuest", doc["storageAccess"])
	assert.NotContains(t, doc, "groupAccess")

	testutil.AssertFileNotExists(t, files.parameters)
	testutil.AssertFileNotExists(t, files.cfn)
	testutil.AssertFileNotExists(t, files.storageParams)
}

func TestMigrateAuthOnly(t *testing.T) {
	p := testutil.NewProject(t)
	p.WriteLegacyStorage(t, "photos", map[string]interface{}{
		"bucketName":                       "b1",
		"selectedAuthenticatedPermissions": []string{"s3:PutObject", "s3:GetObject", "s3:ListBucket", "s3:DeleteObject"},
	}, nil)

	s, err := migrateResource(t, p, "photos")
	require.NoError(t, err)

	got, err := s.GetUserInput()
	require.NoError(t, err)
	assert.Equal(t, AccessAuthOnly, got.StorageAccess)
	assert.Equal(t, []s3permissions.PermissionType{
		s3permissions.PermissionCreateAndUpdate,
		s3permissions.PermissionRead,
		s3permissions.PermissionDelete,
	}, got.AuthAccess)
	assert.NotNil(t, got.GuestAccess)
	assert.Empty(t, got.GuestAccess)
}

func TestMigrateNoPermissions(t *testing.T) {
	p := testutil.NewProject(t)
	p.WriteLegacyStorage(t, "photos", map[string]interface{}{"bucketName": "b1"}, nil)

	s, err := migrateResource(t, p, "photos")
	require.NoError(t, err)

	got, err := s.GetUserInput()
	require.NoError(t, err)
	assert.Empty(t, got.StorageAccess)
	assert.NotContains(t, testutil.ReadJSONFile(t, s.CliInputsFilePath()), "storageAccess")
}

func TestMigrateGroupPermissionMap(t *testing.T) {
	p := testutil.NewProject(t)
	p.WriteLegacyStorage(t, "photos", map[string]interface{}{
		"bucketName":                       "b1",
		"selectedAuthenticatedPermissions": []string{"s3:GetObject"},
		"triggerFunction":                  "S3Trigger1a2b",
	}, map[string]interface{}{
		"groupPermissionMap": map[string]interface{}{"admins": []string{"read", "delete"}},
	})

	s, err := migrateResource(t, p, "photos")
	require.NoError(t, err)

	got, err := s.GetUserInput()
	require.NoError(t, err)
	assert.Equal(t, s3permissions.GroupAccessType{
		"admins": {s3permissions.PermissionRead, s3permissions.PermissionDelete},
	}, got.GroupAccess)
	assert.Equal(t, "S3Trigger1a2b", got.TriggerFunction)
}

func TestMigrateEmptyGroupPermissionMap(t *testing.T) {
	p := testutil.NewProject(t)
	p.WriteLegacyStorage(t, "photos", map[string]interface{}{"bucketName": "b1"}, map[string]interface{}{
		"groupPermissionMap": map[string]interface{}{},
	})

	s, err := migrateResource(t, p, "photos")
	require.NoError(t, err)

	got, err := s.GetUserInput()
	require.NoError(t, err)
	assert.NotNil(t, got.GroupAccess)
	assert.Empty(t, got.GroupAccess)
	assert.Equal(t, map[string]interface{}{}, testutil.ReadJSONFile(t, s.CliInputsFilePath())["groupAccess"])
}

func TestMigrateFreshPolicyUUID(t *testing.T) {
	p := testutil.NewProject(t)
	params := map[string]interface{}{"bucketName": "b1", "policyUUID": "deadbeef"}
	p.WriteLegacyStorage(t, "photos", params, nil)
	p.WriteLegacyStorage(t, "videos", params, nil)

	a, err := migrateResource(t, p, "photos")
	require.NoError(t, err)
	b, err := migrateResource(t, p, "videos")
	require.NoError(t, err)

	ua, err := a.GetUserInput()
	require.NoError(t, err)
	ub, err := b.GetUserInput()
	require.NoError(t, err)
	assert.NotEqual(t, "deadbeef", ua.PolicyUUID)
	assert.NotEqual(t, ua.PolicyUUID, ub.PolicyUUID)
}

func TestMigrateMissingParameters(t *testing.T) {
	p := testutil.NewProject(t)
	files := legacyFiles(p, "photos")
	testutil.WriteJSONFile(t, files.cfn, map[string]interface{}{"Resources": map[string]interface{}{}})

	s, err := migrateResource(t, p, "photos")
	require.Error(t, err)
	assert.True(t, cerr.Is(err, scaffold_err.ErrMissingLegacyFile))
	assert.True(t, scaffold_err.IsExpectedUserError(err))

	assert.False(t, s.CliInputFileExists())
	testutil.AssertFileExists(t, files.cfn)
}

func TestMigrateMissingTemplate(t *testing.T) {
	p := testutil.NewProject(t)
	files := legacyFiles(p, "photos")
	testutil.WriteJSONFile(t, files.parameters, map[string]interface{}{"bucketName": "b1"})

	s, err := migrateResource(t, p, "photos")
	require.Error(t, err)
	assert.True(t, cerr.Is(err, scaffold_err.ErrMissingLegacyFile))
	assert.False(t, s.CliInputFileExists())
	testutil.AssertFileExists(t, files.parameters)
}

func TestMigrateUnknownPermissionKeepsLegacyFiles(t *testing.T) {
	p := testutil.NewProject(t)
	p.WriteLegacyStorage(t, "photos", map[string]interface{}{
		"selectedGuestPermissions": []string{"s3:PutBucketPolicy"},
	}, map[string]interface{}{})
	files := legacyFiles(p, "photos")

	s, err := migrateResource(t, p, "photos")
	require.Error(t, err)
	assert.True(t, cerr.Is(err, scaffold_err.ErrUnknownPermissionKind))
	assert.False(t, s.CliInputFileExists())
	testutil.AssertFileExists(t, files.parameters)
	testutil.AssertFileExists(t, files.cfn)
	testutil.AssertFileExists(t, files.storageParams)
}

func TestMigrateMalformedLegacyFile(t *testing.T) {
	p := testutil.NewProject(t)
	p.WriteLegacyStorage(t, "photos", map[string]interface{}{"bucketName": "b1"}, nil)
	files := legacyFiles(p, "photos")
	testutil.CreateTestFile(t, p.Paths.ResourceDirPath("storage", "photos"), "storage-params.json", "[1,", 0644)

	_, err := migrateResource(t, p, "photos")
	require.Error(t, err)
	assert.True(t, cerr.Is(err, scaffold_err.ErrConfigParse))
	testutil.AssertFileExists(t, files.parameters)
}

func TestMigrateWrongFieldType(t *testing.T) {
	p := testutil.NewProject(t)
	p.WriteLegacyStorage(t, "photos", map[string]interface{}{
		"selectedGuestPermissions": "s3:GetObject",
	}, nil)

	_, err := migrateResource(t, p, "photos")
	require.Error(t, err)
	assert.True(t, cerr.Is(err, scaffold_err.ErrConfigParse))
}

func TestRemoveOldS3ConfigFilesToleratesMissing(t *testing.T) {
	rc := testutil.NewTestContext(t)
	p := testutil.NewProject(t)
	files := legacyFiles(p, "photos")
	testutil.WriteJSONFile(t, files.parameters, map[string]interface{}{})

	s, err := New(rc, p.Paths, "photos", nil)
	require.NoError(t, err)
	err = s.RemoveOldS3ConfigFiles(&MigrationParams{
		ParametersFilePath:    files.parameters,
		CfnFilePath:           files.cfn,
		StorageParamsFilePath: files.storageParams,
	})
	require.NoError(t, err)
	testutil.AssertFileNotExists(t, files.parameters)
}
