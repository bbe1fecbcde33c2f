/* pkg/logger/fallback.go */

package logger

import (
	"os"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/shared"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewFallbackLogger() *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
		zapcore.AddSync(os.Stderr),
		ParseLogLevel(os.Getenv(shared.EnvPrefix+"_LOG_LEVEL")),
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// InitializeWithFallback installs a console-only logger. Used before
// configuration has been read.
func InitializeWithFallback() {
	log = NewFallbackLogger()
	zap.ReplaceGlobals(log)
	otelzap.ReplaceGlobals(otelzap.New(log))
}

func DefaultConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "T"
	cfg.LevelKey = "L"
	cfg.NameKey = "N"
	cfg.CallerKey = "C"
	cfg.MessageKey = "M"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

func DefaultJSONEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return cfg
}
