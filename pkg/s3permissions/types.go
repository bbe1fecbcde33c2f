// pkg/s3permissions/types.go

// Package s3permissions translates S3 access permissions between the
// user-facing vocabulary, the legacy storage-params vocabulary and the
// CloudFormation policy actions.
package s3permissions

// PermissionType is the user-facing permission stored in cli-inputs.json.
type PermissionType string

const (
	PermissionCreateAndUpdate PermissionType = "create/update"
	PermissionRead            PermissionType = "read"
	PermissionDelete          PermissionType = "delete"
)

// CfnPermissionType is an S3 policy action as it appears in the generated
// CloudFormation template and legacy parameters file.
type CfnPermissionType string

const (
	CfnPutObject    CfnPermissionType = "s3:PutObject"
	CfnGetObject    CfnPermissionType = "s3:GetObject"
	CfnDeleteObject CfnPermissionType = "s3:DeleteObject"
	CfnListBucket   CfnPermissionType = "s3:ListBucket"
)

// StorageParamsPermissionType is the permission vocabulary of the legacy
// storage-params.json file.
type StorageParamsPermissionType string

const (
	StorageParamsCreateAndUpdate StorageParamsPermissionType = "create/update"
	StorageParamsRead            StorageParamsPermissionType = "read"
	StorageParamsDelete          StorageParamsPermissionType = "delete"
)

// GroupAccessType maps a user-pool group name to its permissions.
type GroupAccessType map[string][]PermissionType

// AllPermissionTypes lists the user-facing permissions in canonical order.
func AllPermissionTypes() []PermissionType {
	return []PermissionType{PermissionCreateAndUpdate, PermissionRead, PermissionDelete}
}
