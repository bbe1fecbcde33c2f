// cmd/storage/status.go
package storage

import (
	"fmt"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/fileops"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/s3inputstate"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_cli"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_io"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/shared"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Resource formats reported by status.
const (
	StatusUnified  = "unified"
	StatusLegacy   = "legacy"
	StatusNotFound = "not-found"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status <resource>",
		Short: "Show whether a storage resource uses cli-inputs.json or needs migration",
		Args:  cobra.ExactArgs(1),
		RunE: scaffold_cli.Wrap(func(rc *scaffold_io.RuntimeContext, cmd *cobra.Command, args []string) error {
			resource := args[0]
			paths, err := projectPaths(resource)
			if err != nil {
				return err
			}

			status := StatusNotFound
			if s3inputstate.CanResourceBeTransformed(rc, paths, resource) {
				status = StatusUnified
			} else {
				legacy, err := fileops.NewFileSystemOperations(rc.Log).Exists(rc.Ctx, paths.ParametersFilePath(shared.CategoryStorage, resource))
				if err != nil {
					return err
				}
				if legacy {
					status = StatusLegacy
				}
			}

			rc.Log.Info("Storage resource status", zap.String("resource", resource), zap.String("status", status))

			out := cmd.OutOrStdout()
			switch status {
			case StatusUnified:
				fmt.Fprintf(out, "%s: %s (%s)\n", resource, status, paths.CliInputsFilePath(shared.CategoryStorage, resource))
			case StatusLegacy:
				fmt.Fprintf(out, "%s: %s, run \"scaffold storage migrate %s\"\n", resource, status, resource)
			default:
				fmt.Fprintf(out, "%s: %s\n", resource, status)
			}
			return nil
		}),
	}
}
