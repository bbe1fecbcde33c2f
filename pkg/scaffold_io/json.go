/* pkg/scaffold_io/json.go */

package scaffold_io

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/fileops"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// ReadJSON decodes the JSON document at filePath into out.
// A missing file is reported with os.ErrNotExist in the chain.
func ReadJSON(ctx context.Context, filePath string, out interface{}) error {
	logger := otelzap.Ctx(ctx)
	logger.Debug("Reading JSON file", zap.String("path", filePath))

	data, err := fileops.NewFileSystemOperations(zap.L()).ReadFile(ctx, filePath)
	if err != nil {
		return cerr.WithStack(err)
	}

	if err := json.Unmarshal(stripBOM(data), out); err != nil {
		logger.Error("Failed to unmarshal JSON",
			zap.String("path", filePath),
			zap.Error(err))
		return cerr.Wrapf(err, "failed to unmarshal JSON file %s", filePath)
	}

	logger.Debug("JSON file read successfully",
		zap.String("path", filePath),
		zap.Int("size", len(data)))
	return nil
}

// ReadJSONIfExists is ReadJSON that reports (false, nil) for a missing file.
func ReadJSONIfExists(ctx context.Context, filePath string, out interface{}) (bool, error) {
	err := ReadJSON(ctx, filePath, out)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// WriteJSON marshals in with two-space indentation and replaces filePath atomically.
func WriteJSON(ctx context.Context, filePath string, in interface{}) error {
	logger := otelzap.Ctx(ctx)
	logger.Debug("Writing JSON file", zap.String("path", filePath))

	data, err := MarshalJSON(in)
	if err != nil {
		logger.Error("Failed to marshal JSON", zap.Error(err))
		return cerr.Wrap(err, "failed to marshal JSON")
	}

	if err := fileops.NewFileSystemOperations(zap.L()).WriteFile(ctx, filePath, data, shared.FilePermStandard); err != nil {
		logger.Error("Failed to write JSON file",
			zap.String("path", filePath),
			zap.Error(err))
		return cerr.WithStack(err)
	}
	return nil
}

// MarshalJSON renders in the same layout the project files use on disk.
func MarshalJSON(in interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(in); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
}
