// pkg/scaffold_err/wrap.go

package scaffold_err

import (
	cerr "github.com/cockroachdb/errors"
)

func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return cerr.WithHint(cerr.Mark(cerr.WithStack(err), ErrSchemaValidation), "validation failed")
}

func WrapPersistenceError(err error, path string) error {
	if err == nil {
		return nil
	}
	return cerr.WithHint(Mark(err, ErrPersistence, "write %s", path), "check that the project directory is writable")
}
