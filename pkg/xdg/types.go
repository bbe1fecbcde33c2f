// pkg/xdg/types.go

package xdg

// DirPermStandard is used for directories created under the XDG roots.
const DirPermStandard = 0755
