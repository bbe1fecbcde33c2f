// pkg/scaffold_err/util.go

package scaffold_err

import (
	"errors"
	"fmt"
	"io"

	cerr "github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

var debugMode bool

func SetDebugMode(enabled bool) {
	debugMode = enabled
}

func DebugEnabled() bool {
	return debugMode
}

// NewExpectedError wraps an error for softer UX handling.
func NewExpectedError(err error) error {
	if err == nil {
		return nil
	}
	return &UserError{cause: err}
}

// IsExpectedUserError checks if the error is marked as expected.
func IsExpectedUserError(err error) bool {
	var e *UserError
	return errors.As(err, &e)
}

// Mark wraps cause with a message and tags it with kind so that
// cerr.Is(err, kind) holds while the original cause stays in the chain.
func Mark(cause, kind error, format string, args ...interface{}) error {
	if cause == nil {
		return cerr.Wrapf(kind, format, args...)
	}
	return cerr.Mark(cerr.Wrapf(cause, format, args...), kind)
}

// PrintError writes a human-readable error message to w and logs it.
func PrintError(w io.Writer, log *zap.Logger, userMessage string, err error) {
	if err == nil {
		return
	}
	if IsExpectedUserError(err) {
		log.Warn(userMessage, zap.Error(err))
		fmt.Fprintf(w, "Notice: %s: %v\n", userMessage, err)
	} else {
		log.Error(userMessage, zap.Error(err))
		fmt.Fprintf(w, "Error: %s: %v\n", userMessage, err)
	}
	for _, hint := range cerr.GetAllHints(err) {
		fmt.Fprintf(w, "  hint: %s\n", hint)
	}
	if DebugEnabled() {
		fmt.Fprintf(w, "%+v\n", err)
	}
}
