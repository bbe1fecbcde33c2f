/* pkg/logger/paths.go */

package logger

import (
	"os"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/xdg"
	"go.uber.org/zap/zapcore"
)

// PlatformLogPaths returns candidate log paths in order of priority.
func PlatformLogPaths() []string {
	return []string{
		xdg.XDGStatePath(shared.AppID, shared.AppLogFile), // ~/.local/state/scaffold/scaffold.log
		filepath.Join(os.TempDir(), shared.AppID, shared.AppLogFile),
	}
}

// ResolveLogPath returns the first candidate that can be opened for append.
func ResolveLogPath() string {
	for _, path := range PlatformLogPaths() {
		if err := xdg.EnsureDir(path); err != nil {
			continue
		}
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, shared.FilePermOwnerReadWrite)
		if err == nil {
			_ = file.Close()
			return path
		}
	}
	return ""
}

// GetLogFileWriter opens path for appending and wraps it for zap.
func GetLogFileWriter(path string) (zapcore.WriteSyncer, error) {
	if err := xdg.EnsureDir(path); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, shared.FilePermOwnerReadWrite)
	if err != nil {
		return nil, err
	}
	return zapcore.AddSync(file), nil
}
