package domain

import "fmt"

// ValidationError reports a missing or malformed required field. It is
// user-correctable and surfaced verbatim; the service never guesses defaults.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: %s", e.Field, e.Reason)
}

// StoreError wraps a persistence failure. Admissions that hit a store error
// have their quota increment rolled back before the error is returned.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
