// pkg/config/config.go

// Package config resolves scaffold's runtime settings from flags, SCAFFOLD_*
// environment variables and an optional .env file in the project directory.
package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/cli"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/shared"
	cerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Setting keys. Each is also a flag name and, upper-cased with the
// SCAFFOLD_ prefix, an environment variable.
const (
	KeyProjectDir = "project-dir"
	KeyLogLevel   = "log-level"
	KeyLogFile    = "log-file"
	KeyTraceFile  = "trace-file"
	KeyDebug      = "debug"
)

// Settings is the resolved configuration for one invocation.
type Settings struct {
	ProjectDir string `mapstructure:"project-dir" validate:"required"`
	LogLevel   string `mapstructure:"log-level" validate:"omitempty,oneof=debug info warn warning error"`
	LogFile    string `mapstructure:"log-file"`
	TraceFile  string `mapstructure:"trace-file"`
	Debug      bool   `mapstructure:"debug"`
}

var current *Settings

// NewViper returns a viper instance reading SCAFFOLD_* variables.
func NewViper() *viper.Viper {
	v := viper.New()
	cli.SetViperEnvPrefix(v, shared.EnvPrefix)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyProjectDir, "")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyTraceFile, "")
	v.SetDefault(KeyDebug, false)
	return v
}

// LoadDotEnv reads <dir>/.env into the process environment. Variables that
// are already set win. A missing file is not an error.
func LoadDotEnv(dir string) (bool, error) {
	path := filepath.Join(dir, shared.DotEnvFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err := godotenv.Load(path); err != nil {
		return false, cerr.WithHint(cerr.Wrapf(err, "load %s", path), "use KEY=value lines in .env")
	}
	return true, nil
}

// Load resolves the settings and makes them the current ones.
func Load(v *viper.Viper) (*Settings, error) {
	dir := v.GetString(KeyProjectDir)
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, cerr.Wrap(err, "determine working directory")
		}
		dir = wd
	}
	if _, err := LoadDotEnv(dir); err != nil {
		return nil, err
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, cerr.Wrap(err, "decode settings")
	}
	if s.ProjectDir == "" {
		s.ProjectDir = dir
	}
	abs, err := filepath.Abs(s.ProjectDir)
	if err != nil {
		return nil, cerr.Wrapf(err, "resolve project dir %q", s.ProjectDir)
	}
	s.ProjectDir = abs

	if err := validator.New().Struct(s); err != nil {
		return nil, cerr.WithHint(cerr.Wrap(err, "invalid settings"), "log levels are debug, info, warn or error")
	}

	current = &s
	return &s, nil
}

// Current returns the settings of the running command, or defaults rooted in
// the working directory when Load has not run.
func Current() *Settings {
	if current != nil {
		return current
	}
	wd, _ := os.Getwd()
	return &Settings{ProjectDir: wd, LogLevel: "info"}
}
