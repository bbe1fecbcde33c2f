/* pkg/scaffold_io/yaml.go */

package scaffold_io

import (
	"context"
	"io"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// EncodeYAML writes in to w as a YAML document.
func EncodeYAML(ctx context.Context, w io.Writer, in interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(in); err != nil {
		otelzap.Ctx(ctx).Error("Failed to marshal YAML", zap.Error(err))
		return cerr.Wrap(err, "failed to marshal YAML")
	}
	return enc.Close()
}
