// pkg/s3permissions/validate.go

package s3permissions

// Validate reports whether p is a known user permission.
func (p PermissionType) Validate() error {
	if _, ok := fromName[string(p)]; !ok {
		return unknown("user", string(p))
	}
	return nil
}

// Validate reports whether k is a known policy action.
func (k CfnPermissionType) Validate() error {
	if _, ok := fromCfn[k]; !ok {
		return unknown("CloudFormation", string(k))
	}
	return nil
}

// Validate reports whether k is a known storage-params permission.
func (k StorageParamsPermissionType) Validate() error {
	if _, ok := fromName[string(k)]; !ok {
		return unknown("storage params", string(k))
	}
	return nil
}

// Validate checks every permission of every group.
func (g GroupAccessType) Validate() error {
	for _, perms := range g {
		for _, p := range perms {
			if err := p.Validate(); err != nil {
				return err
			}
		}
	}
	return nil
}
