package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/app"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/store"
)

type errorMapping struct {
	status  int
	message string
}

var errorMap = map[error]errorMapping{
	service.ErrInvalidDataProvided: {http.StatusBadRequest, app.MsgInvalidDataProvided},
	service.ErrWrongCredentials:    {http.StatusUnauthorized, app.MsgWrongCredentials},
	service.ErrTokenInvalid:        {http.StatusUnauthorized, app.MsgTokenInvalid},
	service.ErrForeignData:         {http.StatusForbidden, app.MsgForeignData},

	store.ErrLoginAlreadyExists: {http.StatusConflict, app.MsgLoginAlreadyExists},
	store.ErrUserNotFound:       {http.StatusNotFound, app.MsgNotFound},
	store.ErrNoteNotFound:       {http.StatusNotFound, app.MsgNotFound},
	store.ErrVersionConflict:    {http.StatusConflict, app.MsgVersionConflict},
}

// writeError maps a service/store error onto an HTTP status and the shared
// wire message the client adapter recognizes. Unmapped errors become a
// plain 500 so internal details never leak to the client.
func writeError(w http.ResponseWriter, err error) {
	for target, m := range errorMap {
		if errors.Is(err, target) {
			http.Error(w, m.message, m.status)
			return
		}
	}
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
