package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"drawing-bot/internal/raffle"
)

func readJSON(body io.Reader, dest any) error {
	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dest)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeRaffleError translates core errors into HTTP replies. Unknown errors
// and persistence failures both map to 500; the distinction only matters for
// the log line the handler already wrote.
func writeRaffleError(w http.ResponseWriter, err error) {
	var pe *raffle.PersistenceError
	switch {
	case errors.Is(err, raffle.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, raffle.ErrDenied):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, raffle.ErrDuplicateName),
		errors.Is(err, raffle.ErrInvalidState),
		errors.Is(err, raffle.ErrEmptyPool),
		errors.Is(err, raffle.ErrAlreadyDrawn),
		errors.Is(err, raffle.ErrAlreadyEntered):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, raffle.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &pe):
		writeError(w, http.StatusInternalServerError, "storage failure")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
