package errors

import "testing"

func TestExitErrorMessage(t *testing.T) {
	err := NewExitError(ErrConfigNotFound, ExitUser)
	if got, want := err.Error(), "config not found"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestExitErrorNilErr(t *testing.T) {
	err := NewExitError(nil, ExitSystem)
	if got, want := err.Error(), "exit code 2"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	err := NewUserError(ErrTaskNotFound, "run: labkit task list")
	if !Is(err, ErrTaskNotFound) {
		t.Error("Is(err, ErrTaskNotFound) = false, want true")
	}

	var exitErr *ExitError
	if !As(err, &exitErr) {
		t.Fatal("As(err, &exitErr) = false, want true")
	}
	if exitErr.Code != ExitUser {
		t.Errorf("Code = %d, want %d", exitErr.Code, ExitUser)
	}
	if exitErr.Suggestion == "" {
		t.Error("Suggestion is empty")
	}
}

func TestWrappedSentinelIs(t *testing.T) {
	err := Wrapf(ErrKeyNotFound, "key %q", "data.products.root")
	if !Is(err, ErrKeyNotFound) {
		t.Error("wrapped sentinel no longer matches with Is")
	}
	if got := err.Error(); got != `key "data.products.root": key not found` {
		t.Errorf("unexpected message: %q", got)
	}
}
