package backend

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	cerrors "github.com/jrsteele09/billing-console/internal/errors"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 1 << 20

// errorResponse is the error body the console's gateway reads.
type errorResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Err(err).Msg("[backend writeJSON] encode")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Message: msg})
}

// decodeJSON reads a bounded JSON body into v. An empty body leaves v untouched.
func decodeJSON(r *http.Request, v any) error {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return cerrors.Wrapf(cerrors.ErrInvalidRequest, "%v", err)
	}
	return nil
}

// writeDomainError maps sentinel errors onto HTTP statuses and fixed messages.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case cerrors.Is(err, cerrors.ErrMissingArgument), cerrors.Is(err, cerrors.ErrInvalidRequest):
		writeError(w, http.StatusBadRequest, "Invalid request")
	case cerrors.Is(err, cerrors.ErrNotFound), cerrors.Is(err, cerrors.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "Not found")
	case cerrors.Is(err, cerrors.ErrConflict):
		writeError(w, http.StatusConflict, "Conflict")
	default:
		log.Err(err).Msg("[backend] unhandled error")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
