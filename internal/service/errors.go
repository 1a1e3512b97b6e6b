package service

import "errors"

var (
	// ErrWrongCredentials is returned on a login with an unknown login or
	// a mismatched verifier. Deliberately one error for both cases.
	ErrWrongCredentials = errors.New("wrong login or password")

	// ErrTokenInvalid is returned when a bearer token fails signature or
	// claim validation, including expiry.
	ErrTokenInvalid = errors.New("token is expired or invalid")

	// ErrInvalidDataProvided is returned when a request fails structural
	// validation before touching storage.
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// ErrForeignData is returned when a request targets another user's
	// records.
	ErrForeignData = errors.New("access to another user's data")
)
