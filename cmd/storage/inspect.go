// cmd/storage/inspect.go
package storage

import (
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/s3inputstate"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_cli"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_err"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

func newInspectCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "inspect <resource>",
		Short: "Print the validated cli-inputs of a storage resource",
		Args:  cobra.ExactArgs(1),
		RunE: scaffold_cli.Wrap(func(rc *scaffold_io.RuntimeContext, cmd *cobra.Command, args []string) error {
			resource := args[0]
			paths, err := projectPaths(resource)
			if err != nil {
				return err
			}

			state, err := s3inputstate.NewRegistry(rc, paths).GetInstance(s3inputstate.Options{ResourceName: resource})
			if err != nil {
				return err
			}
			inputs, err := state.GetUserInput()
			if err != nil {
				return err
			}

			switch output {
			case "yaml":
				return scaffold_io.EncodeYAML(rc.Ctx, cmd.OutOrStdout(), inputs)
			case "json":
				data, err := scaffold_io.MarshalJSON(inputs)
				if err != nil {
					return cerr.Wrap(err, "encode cli inputs")
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			default:
				return scaffold_err.NewExpectedError(cerr.WithHint(
					cerr.Newf("unknown output format %q", output),
					"use --output json or --output yaml",
				))
			}
		}),
	}

	cmd.Flags().StringVarP(&output, "output", "o", "json", "Output format: json or yaml")
	return cmd
}
