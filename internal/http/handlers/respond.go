package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yajna-funds/server/internal/domain"
)

// FieldError names the request field a validation failure refers to.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, message string) {
	a.json(w, code, errorResponse{Message: message})
}

func (a *App) validationError(w http.ResponseWriter, message string, errs []FieldError) {
	a.json(w, http.StatusBadRequest, errorResponse{Message: message, Errors: errs})
}

// storeError maps domain sentinel errors onto HTTP statuses; anything
// unanticipated becomes a logged 500.
func (a *App) storeError(w http.ResponseWriter, r *http.Request, err error, notFoundMessage string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, notFoundMessage)
	case errors.Is(err, domain.ErrAlreadyExists):
		a.error(w, http.StatusConflict, "record already exists")
	case errors.Is(err, domain.ErrInvalidAmount):
		a.validationError(w, "Invalid amount", []FieldError{{Field: "amount", Message: err.Error()}})
	default:
		a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("store operation failed")
		a.error(w, http.StatusInternalServerError, "internal server error")
	}
}
