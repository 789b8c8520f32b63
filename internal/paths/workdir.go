package paths

import (
	"os"

	"github.com/jmorrow/labkit/internal/errors"
)

// WorkingDir changes the process working directory to dir and returns a
// restore function that changes back to the previous directory. The restore
// function must be called on every exit path, typically via defer:
//
//	restore, err := paths.WorkingDir(dir)
//	if err != nil {
//	    return err
//	}
//	defer restore()
//
// Restoration failures are returned by the restore function so deferred
// callers can at least log them.
func WorkingDir(dir string) (restore func() error, err error) {
	prev, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "reading current directory")
	}

	if err := os.Chdir(dir); err != nil {
		return nil, errors.Wrapf(err, "changing directory to %s", dir)
	}

	return func() error {
		if err := os.Chdir(prev); err != nil {
			return errors.Wrapf(err, "restoring working directory to %s", prev)
		}
		return nil
	}, nil
}
