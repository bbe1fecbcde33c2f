// pkg/xdg/xdg.go

package xdg

import (
	"os"
	"path/filepath"
)

func GetEnvOrDefault(envVar, fallback string) string {
	if val := os.Getenv(envVar); val != "" {
		return val
	}
	return fallback
}

func XDGStatePath(app, file string) string {
	base := GetEnvOrDefault("XDG_STATE_HOME", filepath.Join(os.Getenv("HOME"), ".local", "state"))
	return filepath.Join(base, app, file)
}

// EnsureDir creates the parent directory of path.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), DirPermStandard)
}
