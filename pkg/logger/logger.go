package logger

import (
	"fmt"
	"os"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// Config selects the level and the optional JSON file sink.
type Config struct {
	Level   string
	LogFile string
}

// ParseLogLevel maps a level name to a zapcore.Level, defaulting to Info.
func ParseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Initialize builds the global logger: console output on stderr and,
// when a log file can be opened, a JSON copy of every entry.
func Initialize(cfg Config) {
	level := ParseLogLevel(cfg.Level)

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()), zapcore.Lock(os.Stderr), level),
	}

	path := cfg.LogFile
	if path == "" {
		path = ResolveLogPath()
	}
	if path != "" {
		writer, err := GetLogFileWriter(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "warning: could not open log file, logging to console only:", err)
		} else {
			cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(DefaultJSONEncoderConfig()), writer, level))
		}
	}

	log = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	zap.ReplaceGlobals(log)
	otelzap.ReplaceGlobals(otelzap.New(log))
	log.Debug("Logger initialized", zap.String("log_level", level.String()), zap.String("log_path", path))
}

// L returns the global logger, falling back to a console logger.
func L() *zap.Logger {
	if log == nil {
		InitializeWithFallback()
	}
	return log
}

// Sync flushes any buffered log entries. Should be called before the application exits.
func Sync() error {
	if log == nil {
		return nil
	}
	err := log.Sync()
	// stderr cannot be synced on most terminals
	if err != nil && strings.Contains(err.Error(), "/dev/stderr") {
		return nil
	}
	return err
}
