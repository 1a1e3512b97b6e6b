package store

import "errors"

// Sentinel errors returned by repository methods. Callers match with
// [errors.Is].
var (
	// ErrLoginAlreadyExists is returned when registration collides with an
	// existing login.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrUserNotFound is returned when a lookup matches no user record.
	ErrUserNotFound = errors.New("user not found")

	// ErrNoteNotFound is returned when a note id does not exist for the
	// user.
	ErrNoteNotFound = errors.New("note not found")

	// ErrVersionConflict is returned when an optimistic-locking check
	// fails: the version supplied by the client is stale because another
	// device modified the record since the client last fetched it. The
	// client's contract on conflict is to re-fetch and recompute, never to
	// overwrite.
	ErrVersionConflict = errors.New("version conflict")
)

// Low-level database operation errors, wrapped around driver errors.
var (
	ErrBuildingSQLQuery      = errors.New("error building sql query")
	ErrExecutingQuery        = errors.New("error executing sql query")
	ErrBeginningTransaction  = errors.New("failed to begin transaction")
	ErrCommittingTransaction = errors.New("failed to commit transaction")
	ErrScanningRow           = errors.New("failed to scan row")
)
