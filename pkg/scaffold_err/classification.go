// pkg/scaffold_err/classification.go
//
// Error classification with exit codes. Builds on the UserError marker.

package scaffold_err

import (
	"errors"
	"fmt"
	"strings"

	cerr "github.com/cockroachdb/errors"
)

// ErrorCategory classifies errors for appropriate handling
type ErrorCategory int

const (
	// CategorySystem - OS/filesystem issues (exit 1)
	CategorySystem ErrorCategory = iota
	// CategoryValidation - schema or input validation failures (exit 2)
	CategoryValidation
	// CategoryMigration - project files still on the legacy layout (exit 4)
	CategoryMigration
	// CategoryInternal - bugs, including unknown enum values (exit 3)
	CategoryInternal
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryValidation:
		return "validation"
	case CategoryMigration:
		return "migration"
	case CategoryInternal:
		return "internal"
	default:
		return "system"
	}
}

// ClassifiedError wraps an error with category and remediation info
type ClassifiedError struct {
	Category    ErrorCategory
	Message     string
	Cause       error
	Remediation []string
}

// Error implements the error interface
func (e *ClassifiedError) Error() string {
	var sb strings.Builder

	sb.WriteString(e.Message)

	if e.Cause != nil && e.Cause.Error() != e.Message {
		sb.WriteString(fmt.Sprintf("\n\nCause: %v", e.Cause))
	}

	if len(e.Remediation) > 0 {
		sb.WriteString("\n\nHow to fix:")
		for i, step := range e.Remediation {
			sb.WriteString(fmt.Sprintf("\n  %d. %s", i+1, step))
		}
	}

	return sb.String()
}

// Unwrap returns the underlying error
func (e *ClassifiedError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the appropriate exit code for this error category
func (e *ClassifiedError) ExitCode() int {
	switch e.Category {
	case CategoryValidation:
		return 2
	case CategoryInternal:
		return 3
	case CategoryMigration:
		return 4
	default:
		return 1
	}
}

// GetExitCode extracts exit code from any error.
// Returns 0 for nil and for expected user errors, the category code for
// classified errors, 1 for everything else.
func GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.ExitCode()
	}

	if IsExpectedUserError(err) {
		return 0
	}

	return 1
}

// Classify maps the storage sentinels onto a category.
// Errors that are already classified are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return err
	}

	switch {
	case cerr.Is(err, ErrMigrationRequired), cerr.Is(err, ErrMissingLegacyFile):
		return &ClassifiedError{
			Category: CategoryMigration,
			Message:  "storage resource is not on the cli-inputs format",
			Cause:    err,
			Remediation: []string{
				"Run: scaffold storage migrate <resource>",
				"Check that parameters.json and the cloudformation template are still present",
			},
		}
	case cerr.Is(err, ErrSchemaValidation), cerr.Is(err, ErrConfigParse):
		return &ClassifiedError{
			Category:    CategoryValidation,
			Message:     "cli-inputs.json is invalid",
			Cause:       err,
			Remediation: []string{"Fix the reported fields in cli-inputs.json and rerun the command"},
		}
	case cerr.Is(err, ErrUnknownPermissionKind):
		return &ClassifiedError{
			Category:    CategoryInternal,
			Message:     "unrecognised permission value",
			Cause:       err,
			Remediation: []string{"Check the permission lists in the legacy parameters and storage-params files"},
		}
	default:
		return &ClassifiedError{
			Category: CategorySystem,
			Message:  "command failed",
			Cause:    err,
		}
	}
}
