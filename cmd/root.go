/* cmd/root.go */

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/CodeMonkeyCybersecurity/scaffold/cmd/env"
	"github.com/CodeMonkeyCybersecurity/scaffold/cmd/storage"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/config"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_err"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var shutdownTelemetry telemetry.ShutdownFunc

// NewRootCmd builds the scaffold command tree.
func NewRootCmd() *cobra.Command {
	v := config.NewViper()

	root := &cobra.Command{
		Use:   shared.AppID,
		Short: "Scaffold manages storage resource inputs for cloud application projects",
		Long: `scaffold migrates S3 storage resources from their legacy parameter files to a
single validated cli-inputs.json, and manages per-environment deployment settings.

Examples:
  scaffold storage status photos
  scaffold storage migrate photos
  scaffold storage inspect photos --output yaml
  scaffold env secrets-key`,
		Version:       shared.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.BindFlagsToViper(cmd, v); err != nil {
				return err
			}
			settings, err := config.Load(v)
			if err != nil {
				return err
			}

			logger.Initialize(logger.Config{Level: settings.LogLevel, LogFile: settings.LogFile})
			scaffold_err.SetDebugMode(settings.Debug)

			shutdown, err := telemetry.Init(shared.AppID, settings.TraceFile)
			if err != nil {
				logger.L().Warn("Tracing disabled", zap.Error(err))
				return nil
			}
			shutdownTelemetry = shutdown
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cli.AddPersistentStringFlag(root, config.KeyProjectDir, "p", "", "Project root containing the amplify/ directory (default: working directory)")
	cli.AddPersistentStringFlag(root, config.KeyLogLevel, "", "info", "Log level: debug, info, warn or error")
	cli.AddPersistentStringFlag(root, config.KeyLogFile, "", "", "Write JSON logs to this file")
	cli.AddPersistentStringFlag(root, config.KeyTraceFile, "", "", "Write OpenTelemetry spans to this file")
	root.PersistentFlags().Bool(config.KeyDebug, false, "Print full error chains")

	root.AddCommand(storage.NewStorageCmd(), env.NewEnvCmd())
	return root
}

// Run executes the command tree with args and returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)

	if shutdownTelemetry != nil {
		if serr := shutdownTelemetry(ctx); serr != nil {
			fmt.Fprintf(stderr, "warning: failed to flush traces: %v\n", serr)
		}
		shutdownTelemetry = nil
	}
	return exitCode(stderr, err)
}

func exitCode(stderr io.Writer, err error) int {
	if err == nil {
		return 0
	}
	log := logger.L()
	if scaffold_err.IsExpectedUserError(err) {
		scaffold_err.PrintError(stderr, log, "scaffold stopped", err)
		return 0
	}
	classified := scaffold_err.Classify(err)
	scaffold_err.PrintError(stderr, log, "scaffold failed", classified)
	return scaffold_err.GetExitCode(classified)
}

// Execute initializes and runs the root command.
func Execute() {
	code := Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	if err := logger.Sync(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to flush logs: %v\n", err)
	}
	os.Exit(code)
}
