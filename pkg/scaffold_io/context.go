// pkg/scaffold_io/context.go

package scaffold_io

import (
	"context"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/scaffold_err"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/shared"
	"github.com/CodeMonkeyCybersecurity/scaffold/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RuntimeContext is handed to every command and to the packages it calls.
type RuntimeContext struct {
	Ctx        context.Context
	Log        *zap.Logger
	Timestamp  time.Time
	Span       trace.Span
	Command    string
	Component  string
	Attributes map[string]string
}

// NewContext sets up tracing and a scoped logger for one command invocation.
func NewContext(parent context.Context, cmdName string) *RuntimeContext {
	ctx, span := telemetry.Start(parent, cmdName,
		attribute.String("category", telemetry.CommandCategory(cmdName)))

	comp := resolveComponent(2)
	logger := zap.L().With(
		zap.String("component", comp),
		zap.String("command", cmdName),
	).Named(comp)
	if sc := span.SpanContext(); sc.IsValid() {
		logger = logger.With(zap.String("trace_id", sc.TraceID().String()))
	}

	return &RuntimeContext{
		Ctx:        ctx,
		Span:       span,
		Log:        logger,
		Timestamp:  time.Now(),
		Component:  comp,
		Command:    cmdName,
		Attributes: make(map[string]string),
	}
}

// HandlePanic recovers panics, logs them, and converts to an error.
func (rc *RuntimeContext) HandlePanic(errPtr *error) {
	if r := recover(); r != nil {
		*errPtr = cerr.AssertionFailedf("panic: %v", r)
		rc.Log.Error("panic recovered", zap.Any("panic", r))
	}
}

// End logs the outcome and closes the command span.
func (rc *RuntimeContext) End(errPtr *error) {
	var err error
	if errPtr != nil {
		err = *errPtr
	}
	duration := time.Since(rc.Timestamp)

	if err == nil {
		rc.Log.Info("Command completed", zap.Duration("duration", duration))
	} else if scaffold_err.IsExpectedUserError(err) {
		rc.Log.Warn("Command stopped", zap.Duration("duration", duration), zap.Error(err))
	} else {
		rc.Log.Error("Command failed", zap.Duration("duration", duration), zap.Error(err))
	}

	if rc.Span == nil {
		return
	}
	attrs := []attribute.KeyValue{
		attribute.Bool("success", err == nil),
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.String("os", runtime.GOOS),
		attribute.String("args", strings.Join(os.Args[1:], " ")),
		attribute.String("version", shared.Version),
		attribute.String("error_type", classifyError(err)),
	}
	for k, v := range rc.Attributes {
		attrs = append(attrs, attribute.String(k, v))
	}
	rc.Span.SetAttributes(attrs...)
	if err != nil {
		rc.Span.SetStatus(codes.Error, err.Error())
	}
	rc.Span.End()
}

func classifyError(err error) string {
	if err == nil {
		return ""
	}
	if scaffold_err.IsExpectedUserError(err) {
		return "user"
	}
	return "system"
}

func resolveComponent(skip int) string {
	_, file, _, ok := runtime.Caller(skip)
	if !ok {
		return "unknown"
	}
	parts := strings.Split(file, "/")
	if len(parts) < 2 {
		return "unknown"
	}
	return parts[len(parts)-2]
}
