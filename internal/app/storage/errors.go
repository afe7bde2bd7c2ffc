package storage

import "errors"

// Typed store errors. Callers branch on these with errors.Is instead of
// matching driver message text.
var (
	// ErrNotFound is returned by point lookups that miss.
	ErrNotFound = errors.New("storage: not found")

	// ErrDuplicateEmail is returned by CreateUser when the email is already
	// registered.
	ErrDuplicateEmail = errors.New("storage: email already registered")
)
