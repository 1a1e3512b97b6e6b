// Package app holds constants shared between the server handlers and the
// client adapter, so both sides agree on the exact wire messages.
package app

// API error message bodies. The adapter matches on these strings when
// mapping transport errors back to service errors.
const (
	MsgInvalidDataProvided = "invalid data provided"
	MsgWrongCredentials    = "wrong login or password"
	MsgTokenInvalid        = "token is expired or invalid"
	MsgLoginAlreadyExists  = "login already exists"
	MsgVersionConflict     = "version conflict"
	MsgNotFound            = "not found"
	MsgForeignData         = "access to another user's data"
)
