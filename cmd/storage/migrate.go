// cmd/storage/migrate.go
package storage

import (
	"fmt"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/s3inputstate"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_cli"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_err"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate <resource>",
		Short: "Convert a storage resource's legacy files into cli-inputs.json",
		Long: `Reads parameters.json, the S3 CloudFormation template and the optional
storage-params.json of the resource, writes cli-inputs.json and then deletes
the legacy files. Legacy files are only removed once cli-inputs.json has been
written.`,
		Args: cobra.ExactArgs(1),
		RunE: scaffold_cli.Wrap(func(rc *scaffold_io.RuntimeContext, cmd *cobra.Command, args []string) error {
			resource := args[0]
			rc.Span.SetAttributes(attribute.String("resource", resource))

			paths, err := projectPaths(resource)
			if err != nil {
				return err
			}

			if s3inputstate.Exists(rc, paths, resource) {
				return scaffold_err.NewExpectedError(cerr.WithHint(
					cerr.Newf("storage resource %s already uses cli-inputs.json", resource),
					"use \"scaffold storage inspect "+resource+"\" to view it",
				))
			}

			state, err := s3inputstate.New(rc, paths, resource, nil)
			if err != nil {
				return err
			}
			if err := state.Migrate(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Migrated %s to %s\n", resource, state.CliInputsFilePath())
			return nil
		}),
	}
}
