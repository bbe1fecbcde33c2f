// pkg/scaffold_err/types.go

package scaffold_err

import (
	cerr "github.com/cockroachdb/errors"
)

// Sentinels for the failure kinds surfaced by storage input handling and
// secret key resolution. Match them with cerr.Is.
var (
	// ErrUnknownPermissionKind is a programming or data error: a permission
	// value outside its enumerated vocabulary.
	ErrUnknownPermissionKind = cerr.New("unknown permission kind")

	// ErrConfigParse means the unified cli-inputs document is unreadable or not valid JSON.
	ErrConfigParse = cerr.New("cli inputs could not be parsed")

	// ErrMigrationRequired is returned when a resource has no usable cli-inputs document.
	ErrMigrationRequired = cerr.New("resource requires migration")

	// ErrMissingLegacyFile means a required pre-migration file is absent.
	ErrMissingLegacyFile = cerr.New("required legacy file is missing")

	// ErrPersistence wraps write failures of JSON documents.
	ErrPersistence = cerr.New("failed to persist document")

	// ErrSchemaValidation wraps validator rejections.
	ErrSchemaValidation = cerr.New("schema validation failed")

	// ErrEnvironmentNotInitialized means local-env-info.json is missing or has no envName.
	ErrEnvironmentNotInitialized = cerr.New("no active environment")
)

// UserError marks an error as expected and recoverable by the user.
type UserError struct {
	cause error
}

func (e *UserError) Error() string {
	return e.cause.Error()
}

func (e *UserError) Unwrap() error {
	return e.cause
}
