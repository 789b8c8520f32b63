// Package errors provides error handling conventions for the labkit CLI.
//
// This package defines sentinel errors for the failure conditions of the
// configuration, resolution and manifest layers, an ExitError type for CLI
// exit code handling, and exit code constants following standard Unix
// conventions. It also re-exports the wrapping helpers from
// github.com/cockroachdb/errors so the rest of the codebase imports a single
// errors package.
//
// # Sentinel Errors
//
// Sentinel errors allow callers to check for specific error conditions
// using [Is]:
//
//	if errors.Is(err, errors.ErrUnresolvedPlaceholder) {
//	    // the template referenced a key missing from the context
//	}
//
// Sentinels carry no context by themselves; call sites wrap them with the
// offending key or path:
//
//	errors.Wrapf(errors.ErrKeyNotFound, "key %q (stopped at %q)", dotted, part)
//
// # ExitError
//
// [ExitError] wraps an underlying error with an exit code and optional
// suggestion for CLI applications:
//
//	var exitErr *errors.ExitError
//	if errors.As(err, &exitErr) {
//	    if exitErr.Suggestion != "" {
//	        fmt.Println("Suggestion:", exitErr.Suggestion)
//	    }
//	    os.Exit(exitErr.Code)
//	}
package errors
