// cmd/storage/storage.go
package storage

import (
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/config"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/pathmanager"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_cli"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_err"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_io"
	"github.com/spf13/cobra"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// NewStorageCmd is the root command for S3 storage resources.
func NewStorageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "storage",
		Aliases: []string{"stor"},
		Short:   "Manage S3 storage resource inputs",
		Long: `Storage commands read, migrate and update the cli-inputs.json of S3 storage
resources under amplify/backend/storage/<resource>/.

Examples:
  scaffold storage status photos                   # Unified or legacy format?
  scaffold storage migrate photos                  # Convert legacy files
  scaffold storage inspect photos --output yaml    # Print validated inputs
  scaffold storage update photos --file in.json    # Replace inputs`,
		RunE: scaffold_cli.Wrap(func(rc *scaffold_io.RuntimeContext, cmd *cobra.Command, args []string) error {
			otelzap.Ctx(rc.Ctx).Info("No subcommand provided for storage", zap.String("command", cmd.Use))
			return cmd.Help()
		}),
	}

	cmd.AddCommand(newStatusCmd(), newMigrateCmd(), newInspectCmd(), newUpdateCmd())
	return cmd
}

// projectPaths resolves the path manager for the current project and
// checks the resource name argument.
func projectPaths(resourceName string) (*pathmanager.PathManager, error) {
	if err := pathmanager.ValidateResourceName(resourceName); err != nil {
		return nil, scaffold_err.NewExpectedError(err)
	}
	return pathmanager.New(config.Current().ProjectDir)
}
