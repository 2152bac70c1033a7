package domain

import "errors"

// Shared error kinds. Services wrap or return these; handlers map them to
// HTTP statuses.
var (
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("access denied")
)
