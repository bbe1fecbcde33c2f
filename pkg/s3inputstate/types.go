// pkg/s3inputstate/types.go

package s3inputstate

import (
	"encoding/json"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/s3permissions"
)

// S3AccessType selects who may reach the bucket.
type S3AccessType string

const (
	AccessAuthOnly     S3AccessType = "auth"
	AccessAuthAndGuest S3AccessType = "authAndGuest"
)

// TriggerFunctionNone marks a resource without a Lambda trigger.
const TriggerFunctionNone = "NONE"

// UserInputs is the content of cli-inputs.json for an S3 resource.
type UserInputs struct {
	ResourceName    string                         `json:"resourceName" yaml:"resourceName" validate:"required,alphanum,max=128"`
	BucketName      string                         `json:"bucketName,omitempty" yaml:"bucketName,omitempty"`
	PolicyUUID      string                         `json:"policyUUID,omitempty" yaml:"policyUUID,omitempty" validate:"omitempty,len=8,hexadecimal"`
	StorageAccess   S3AccessType                   `json:"storageAccess,omitempty" yaml:"storageAccess,omitempty" validate:"omitempty,oneof=auth authAndGuest"`
	GuestAccess     []s3permissions.PermissionType `json:"guestAccess" yaml:"guestAccess" validate:"dive,oneof=create/update read delete"`
	AuthAccess      []s3permissions.PermissionType `json:"authAccess" yaml:"authAccess" validate:"dive,oneof=create/update read delete"`
	TriggerFunction string                         `json:"triggerFunction,omitempty" yaml:"triggerFunction,omitempty"`
	GroupAccess     s3permissions.GroupAccessType  `json:"groupAccess,omitempty" yaml:"groupAccess,omitempty"`
}

// MarshalJSON writes empty permission lists as [] and keeps an empty,
// non-nil group map so "groups configured, none selected" survives a save.
func (u UserInputs) MarshalJSON() ([]byte, error) {
	type plain UserInputs
	out := struct {
		plain
		GroupAccess *s3permissions.GroupAccessType `json:"groupAccess,omitempty"`
	}{plain: plain(u)}

	if out.GuestAccess == nil {
		out.GuestAccess = []s3permissions.PermissionType{}
	}
	if out.AuthAccess == nil {
		out.AuthAccess = []s3permissions.PermissionType{}
	}
	if u.GroupAccess != nil {
		out.GroupAccess = &u.GroupAccess
	}
	return json.Marshal(out)
}

// S3CFNDependsOn names a resource the generated stack depends on.
type S3CFNDependsOn struct {
	Category     string   `json:"category"`
	ResourceName string   `json:"resourceName"`
	Attributes   []string `json:"attributes"`
}

// FeatureMetadata is generated data the user does not edit.
type FeatureMetadata struct {
	DependsOn []S3CFNDependsOn `json:"dependsOn"`
}

// MigrationParams carries the legacy files of one resource.
type MigrationParams struct {
	ParametersFilePath    string
	CfnFilePath           string
	StorageParamsFilePath string

	Parameters    map[string]interface{}
	Cfn           map[string]interface{}
	StorageParams map[string]interface{}
}

// Options is what callers pass to Registry.GetInstance.
type Options struct {
	ResourceName string
	InputPayload *UserInputs
}
