// pkg/cli/cli.go
//
// Flag helpers shared by the scaffold commands. Flags are declared on cobra
// commands and bound to a viper instance so that every setting can also come
// from a SCAFFOLD_* environment variable or the project's .env file.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AddStringFlag adds a string flag and optionally marks as required.
// Note: Errors marking flag as required are logged but don't fail - Cobra will validate at runtime.
func AddStringFlag(cmd *cobra.Command, name, shorthand, def, help string, required bool) {
	cmd.Flags().StringP(name, shorthand, def, help)
	if required {
		if err := cmd.MarkFlagRequired(name); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to mark flag %s as required: %v\n", name, err)
		}
	}
}

// AddPersistentStringFlag adds a string flag inherited by every subcommand.
func AddPersistentStringFlag(cmd *cobra.Command, name, shorthand, def, help string) {
	cmd.PersistentFlags().StringP(name, shorthand, def, help)
}

// BindFlagsToViper binds all flags on a command to a Viper instance.
// Inherited persistent flags are included once cobra has parsed the command line.
func BindFlagsToViper(cmd *cobra.Command, v *viper.Viper) error {
	var result error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil {
			result = multierror.Append(result, err)
		}
	})
	return result
}

// SetViperEnvPrefix lets Viper read env with prefix, mapping "-" to "_".
func SetViperEnvPrefix(v *viper.Viper, prefix string) {
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// GetRequiredString returns a string flag or an error when it is unset or empty.
func GetRequiredString(cmd *cobra.Command, name string) (string, error) {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return "", fmt.Errorf("flag error for --%s: %w", name, err)
	}
	if val == "" {
		return "", fmt.Errorf("required flag --%s is empty", name)
	}
	return val, nil
}
