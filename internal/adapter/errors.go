package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("access forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("version conflict")
	ErrInternalServerError = errors.New("internal server error")
)
