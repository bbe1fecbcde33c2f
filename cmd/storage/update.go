// cmd/storage/update.go
package storage

import (
	"fmt"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/fileops"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/s3inputstate"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_cli"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_err"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_io"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <resource> --file <inputs.json>",
		Short: "Replace a storage resource's cli-inputs.json after validating it",
		Args:  cobra.ExactArgs(1),
		RunE: scaffold_cli.Wrap(func(rc *scaffold_io.RuntimeContext, cmd *cobra.Command, args []string) error {
			resource := args[0]
			file, err := cli.GetRequiredString(cmd, "file")
			if err != nil {
				return scaffold_err.NewExpectedError(err)
			}

			paths, err := projectPaths(resource)
			if err != nil {
				return err
			}

			// A resource still on legacy files has to be migrated first.
			if !s3inputstate.Exists(rc, paths, resource) {
				legacy, err := fileops.NewFileSystemOperations(rc.Log).Exists(rc.Ctx, paths.ParametersFilePath(shared.CategoryStorage, resource))
				if err != nil {
					return err
				}
				if legacy {
					return scaffold_err.NewExpectedError(cerr.WithHint(
						scaffold_err.Mark(nil, scaffold_err.ErrMigrationRequired, "storage resource %s still uses legacy files", resource),
						"run \"scaffold storage migrate "+resource+"\"",
					))
				}
			}

			var inputs s3inputstate.UserInputs
			if err := scaffold_io.ReadJSON(rc.Ctx, file, &inputs); err != nil {
				return scaffold_err.NewExpectedError(scaffold_err.Mark(err, scaffold_err.ErrConfigParse, "read %s", file))
			}
			if inputs.ResourceName == "" {
				inputs.ResourceName = resource
			}
			if inputs.ResourceName != resource {
				return scaffold_err.NewExpectedError(cerr.Newf("%s describes resource %q, not %q", file, inputs.ResourceName, resource))
			}

			state, err := s3inputstate.NewRegistry(rc, paths).GetInstance(s3inputstate.Options{
				ResourceName: resource,
				InputPayload: &inputs,
			})
			if err != nil {
				return userFixable(err)
			}
			if err := state.SaveCliInputPayload(&inputs); err != nil {
				return userFixable(err)
			}

			rc.Log.Info("Storage inputs updated", zap.String("resource", resource))
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", state.CliInputsFilePath())
			return nil
		}),
	}

	cli.AddStringFlag(cmd, "file", "f", "", "JSON document with the new inputs", true)
	return cmd
}

// userFixable marks schema failures as expected errors so they print as a
// notice with hints instead of a stack trace.
func userFixable(err error) error {
	if cerr.Is(err, scaffold_err.ErrSchemaValidation) {
		return scaffold_err.NewExpectedError(err)
	}
	return err
}
