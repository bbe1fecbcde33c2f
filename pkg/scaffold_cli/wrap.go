// pkg/scaffold_cli/wrap.go

// Package scaffold_cli adapts scaffold command handlers to cobra.
package scaffold_cli

import (
	"context"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_err"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Handler is the signature of every scaffold command body.
type Handler func(rc *scaffold_io.RuntimeContext, cmd *cobra.Command, args []string) error

// Wrap ensures panic recovery, telemetry and logging around fn.
func Wrap(fn Handler) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		parent := cmd.Context()
		if parent == nil {
			parent = context.Background()
		}

		rc := scaffold_io.NewContext(parent, cmd.Name())
		defer rc.End(&err)
		defer rc.HandlePanic(&err)

		rc.Log.Debug("Command started",
			zap.String("path", cmd.CommandPath()),
			zap.Strings("args", args))

		err = fn(rc, cmd, args)
		if err != nil && !scaffold_err.IsExpectedUserError(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}
