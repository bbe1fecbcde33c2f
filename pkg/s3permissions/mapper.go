// pkg/s3permissions/mapper.go

package s3permissions

import (
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_err"
)

// access is the canonical permission every vocabulary is translated through.
type access int

const (
	accessCreateUpdate access = iota + 1
	accessRead
	accessDelete
)

// cfnTable lists the policy actions granted by each canonical access, in the
// order they are emitted.
var cfnTable = map[access][]CfnPermissionType{
	accessCreateUpdate: {CfnPutObject},
	accessRead:         {CfnGetObject, CfnListBucket},
	accessDelete:       {CfnDeleteObject},
}

// nameTable holds the string shared by the user and legacy vocabularies.
var nameTable = map[access]string{
	accessCreateUpdate: "create/update",
	accessRead:         "read",
	accessDelete:       "delete",
}

var (
	fromCfn  = map[CfnPermissionType]access{}
	fromName = map[string]access{}
)

func init() {
	for a, actions := range cfnTable {
		for _, action := range actions {
			fromCfn[action] = a
		}
	}
	for a, name := range nameTable {
		fromName[name] = a
	}
}

func unknown(vocabulary string, value string) error {
	return scaffold_err.Mark(nil, scaffold_err.ErrUnknownPermissionKind, "unknown %s permission %q", vocabulary, value)
}

func userFromAccess(a access) PermissionType {
	return PermissionType(nameTable[a])
}

// CfnToUser converts a policy action to its user-facing permission.
// Both GetObject and ListBucket map to read.
func CfnToUser(k CfnPermissionType) (PermissionType, error) {
	a, ok := fromCfn[k]
	if !ok {
		return "", unknown("CloudFormation", string(k))
	}
	return userFromAccess(a), nil
}

// LegacyToUser converts a storage-params permission to a user permission.
func LegacyToUser(k StorageParamsPermissionType) (PermissionType, error) {
	a, ok := fromName[string(k)]
	if !ok {
		return "", unknown("storage params", string(k))
	}
	return userFromAccess(a), nil
}

// UserToCfn expands a user permission to the policy actions it grants.
func UserToCfn(k PermissionType) ([]CfnPermissionType, error) {
	a, ok := fromName[string(k)]
	if !ok {
		return nil, unknown("user", string(k))
	}
	actions := cfnTable[a]
	out := make([]CfnPermissionType, len(actions))
	copy(out, actions)
	return out, nil
}

// CfnListToUser maps each action in order. Duplicates are kept.
func CfnListToUser(in []CfnPermissionType) ([]PermissionType, error) {
	out := make([]PermissionType, 0, len(in))
	for _, k := range in {
		p, err := CfnToUser(k)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// LegacyListToUser maps each storage-params permission in order.
func LegacyListToUser(in []StorageParamsPermissionType) ([]PermissionType, error) {
	out := make([]PermissionType, 0, len(in))
	for _, k := range in {
		p, err := LegacyToUser(k)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// UserListToCfn concatenates the expansion of each permission in order.
func UserListToCfn(in []PermissionType) ([]CfnPermissionType, error) {
	out := make([]CfnPermissionType, 0, len(in))
	for _, k := range in {
		actions, err := UserToCfn(k)
		if err != nil {
			return nil, err
		}
		out = append(out, actions...)
	}
	return out, nil
}

// CfnGroupMapToUser maps every group's action list. A nil map stays nil.
func CfnGroupMapToUser(in map[string][]CfnPermissionType) (GroupAccessType, error) {
	if in == nil {
		return nil, nil
	}
	out := make(GroupAccessType, len(in))
	for group, actions := range in {
		perms, err := CfnListToUser(actions)
		if err != nil {
			return nil, scaffold_err.Mark(err, scaffold_err.ErrUnknownPermissionKind, "group %q", group)
		}
		out[group] = perms
	}
	return out, nil
}

// LegacyGroupMapToUser maps every group's storage-params permissions.
// A nil map stays nil.
func LegacyGroupMapToUser(in map[string][]StorageParamsPermissionType) (GroupAccessType, error) {
	if in == nil {
		return nil, nil
	}
	out := make(GroupAccessType, len(in))
	for group, perms := range in {
		mapped, err := LegacyListToUser(perms)
		if err != nil {
			return nil, scaffold_err.Mark(err, scaffold_err.ErrUnknownPermissionKind, "group %q", group)
		}
		out[group] = mapped
	}
	return out, nil
}

// UserGroupMapToCfn expands every group's permissions to policy actions.
func UserGroupMapToCfn(in GroupAccessType) (map[string][]CfnPermissionType, error) {
	if in == nil {
		return nil, nil
	}
	out := make(map[string][]CfnPermissionType, len(in))
	for group, perms := range in {
		actions, err := UserListToCfn(perms)
		if err != nil {
			return nil, scaffold_err.Mark(err, scaffold_err.ErrUnknownPermissionKind, "group %q", group)
		}
		out[group] = actions
	}
	return out, nil
}
