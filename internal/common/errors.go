// Package common defines shared constants and sentinel errors used across
// the client and the mock service. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Session errors.
	ErrNotLoggedIn = errors.New("not logged in")
	ErrForbidden   = errors.New("forbidden")
)
