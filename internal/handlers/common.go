package handlers

import (
	"errors"
	"net/http"

	"github.com/selimdilsadercan/ne-yapsak-sub000/internal/services"
)

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// statusForError maps the service error taxonomy onto HTTP statuses.
// Anything outside the taxonomy is treated as a bad request.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrNotMember):
		return http.StatusForbidden
	case errors.Is(err, services.ErrAlreadyMember):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidState):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
