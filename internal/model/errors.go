package model

import (
	"errors"
	"fmt"
)

// ErrorKind is a stable identifier for a failure class.
type ErrorKind string

const (
	// KindParse marks a malformed diagnostic line.
	KindParse ErrorKind = "PARSE_ERROR"
	// KindConflict marks overlapping edits or a failing rule.
	KindConflict ErrorKind = "TRANSFORMATION_CONFLICT"
	// KindValidation marks candidate source that does not parse.
	KindValidation ErrorKind = "VALIDATION_FAILURE"
	// KindBackup marks a snapshot that cannot be created or read.
	KindBackup ErrorKind = "BACKUP_FAILURE"
	// KindIO marks a target file that cannot be read or written.
	KindIO ErrorKind = "IO_FAILURE"
)

// ErrNoSnapshot is returned when rollback finds nothing to restore.
var ErrNoSnapshot = errors.New("no snapshot found")

// RunError wraps a failure with its kind and the path involved.
type RunError struct {
	Kind ErrorKind
	Path Path
	Err  error
}

// NewRunError creates a RunError.
func NewRunError(kind ErrorKind, path Path, err error) *RunError {
	return &RunError{Kind: kind, Path: path, Err: err}
}

func (e *RunError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("[%s] %v", e.Kind, e.Err)
	}

	return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *RunError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err carries the given kind anywhere in its chain.
func IsKind(err error, kind ErrorKind) bool {
	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr.Kind == kind
	}

	return false
}
