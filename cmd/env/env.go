// cmd/env/env.go
package env

import (
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_cli"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_io"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// NewEnvCmd groups commands acting on the active project environment.
func NewEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Inspect per-environment project settings",
		Long: `Environment commands read amplify/team-provider-info.json for the environment
selected in amplify/.config/local-env-info.json.`,
		RunE: scaffold_cli.Wrap(func(rc *scaffold_io.RuntimeContext, cmd *cobra.Command, args []string) error {
			otelzap.Ctx(rc.Ctx).Info("No subcommand provided for env", zap.String("command", cmd.Use))
			return cmd.Help()
		}),
	}

	cmd.AddCommand(newSecretsKeyCmd())
	return cmd
}
