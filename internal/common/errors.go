// Package common defines sentinel errors shared by the feed core and the
// presentation layer. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Account directory errors.
	ErrDuplicateEmail     = errors.New("email already used")
	ErrInvalidName        = errors.New("name must not be empty")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Feed errors.
	ErrEmptyPost = errors.New("post needs text or image")
	ErrNotFound  = errors.New("not found")

	// Session errors (no authenticated account for an operation that needs one).
	ErrUnauthorized = errors.New("unauthorized")
)
