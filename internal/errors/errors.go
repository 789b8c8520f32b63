package errors

import (
	"fmt"

	crdberrors "github.com/cockroachdb/errors"
)

// Exit codes for CLI applications.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitUser indicates a user-related error (invalid input, configuration, etc.).
	ExitUser = 1

	// ExitSystem indicates a system-related error (I/O, permissions, etc.).
	ExitSystem = 2
)

// Sentinel errors for common failure conditions.
var (
	// ErrConfigNotFound indicates a named configuration document does not exist.
	ErrConfigNotFound = crdberrors.New("config not found")

	// ErrConfigParse indicates a configuration document could not be parsed.
	ErrConfigParse = crdberrors.New("config parse error")

	// ErrProjectRootNotFound indicates no project root marker was found
	// walking up from the starting directory.
	ErrProjectRootNotFound = crdberrors.New("project root not found")

	// ErrUnresolvedPlaceholder indicates a template references a key that is
	// absent from the resolution context.
	ErrUnresolvedPlaceholder = crdberrors.New("unresolved placeholder")

	// ErrKeyNotFound indicates a dotted key walk hit a missing segment.
	ErrKeyNotFound = crdberrors.New("key not found")

	// ErrUnknownFileKey indicates a file-template key is not declared in the
	// files document.
	ErrUnknownFileKey = crdberrors.New("unknown file key")

	// ErrDirectoryCreation indicates a declared directory could not be created.
	ErrDirectoryCreation = crdberrors.New("directory creation failed")

	// ErrRowParse indicates a scanned filename could not be parsed into a
	// manifest row.
	ErrRowParse = crdberrors.New("row parse error")

	// ErrSchemaMismatch indicates manifest rows do not share a uniform column set.
	ErrSchemaMismatch = crdberrors.New("manifest schema mismatch")

	// ErrManifestNotFound indicates the manifest file does not exist.
	ErrManifestNotFound = crdberrors.New("manifest not found")

	// ErrManifestParse indicates the manifest file is malformed.
	ErrManifestParse = crdberrors.New("manifest parse error")

	// ErrTaskNotFound indicates no task is registered under the given name.
	ErrTaskNotFound = crdberrors.New("task not found")
)

// Re-exports so callers depend on a single errors package.
var (
	New    = crdberrors.New
	Newf   = crdberrors.Newf
	Wrap   = crdberrors.Wrap
	Wrapf  = crdberrors.Wrapf
	Is     = crdberrors.Is
	As     = crdberrors.As
	Join   = crdberrors.Join
	Unwrap = crdberrors.Unwrap
)

// ExitError wraps an error with an exit code and optional suggestion for CLI
// applications. It implements the error interface and supports unwrapping via
// errors.Unwrap.
type ExitError struct {
	// Err is the underlying error that caused the exit.
	Err error

	// Code is the exit code to return to the operating system.
	Code int

	// Suggestion is an optional actionable suggestion for the user.
	Suggestion string
}

// NewExitError creates an ExitError with the given underlying error and exit code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{
		Err:  err,
		Code: code,
	}
}

// NewUserError creates an ExitError with ExitUser code and a suggestion.
func NewUserError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: suggestion,
	}
}

// NewSystemError creates an ExitError with ExitSystem code and a suggestion.
func NewSystemError(err error, suggestion string) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitSystem,
		Suggestion: suggestion,
	}
}

// NewConfigError creates an ExitError with ExitUser code and a standard suggestion.
func NewConfigError(err error) *ExitError {
	return &ExitError{
		Err:        err,
		Code:       ExitUser,
		Suggestion: "Run: labkit validate",
	}
}

// Error returns the error message from the underlying error.
// If the underlying error is nil, it returns a generic message with the exit code.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error, enabling errors.Is and errors.As
// to examine the error chain.
func (e *ExitError) Unwrap() error {
	return e.Err
}
