// cmd/env/secrets_key.go
package env

import (
	"fmt"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/config"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/pathmanager"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_cli"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_io"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/secrets"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/statemanager"
	"github.com/spf13/cobra"
)

func newSecretsKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "secrets-key",
		Short: "Print the deployment secrets key of the active environment",
		Long: `Prints the prePushDeploymentSecretsKey of the active environment. When none is
stored the key is taken from the environment's StackId, and failing that a new
key is generated and saved to team-provider-info.json.`,
		Args: cobra.NoArgs,
		RunE: scaffold_cli.Wrap(func(rc *scaffold_io.RuntimeContext, cmd *cobra.Command, args []string) error {
			paths, err := pathmanager.New(config.Current().ProjectDir)
			if err != nil {
				return err
			}

			key, err := secrets.GetDeploymentSecretsKey(rc.Ctx, statemanager.New(paths))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		}),
	}
}
