package handler

import (
	"errors"
	"net/http"

	"github.com/juthamas/contacts-server/internal/model"
	"github.com/juthamas/contacts-server/internal/precond"
)

// handleError maps service errors to HTTP status codes. Not-found,
// conflict, and precondition outcomes are expected results of optimistic
// concurrency and are surfaced as their status without error logging.
func (h *Contact) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		http.Error(w, "contact not found", http.StatusNotFound)
	case errors.Is(err, model.ErrConflict):
		http.Error(w, "contact id already in use", http.StatusConflict)
	case errors.Is(err, model.ErrPreconditionFailed):
		http.Error(w, "precondition failed", http.StatusPreconditionFailed)
	case errors.Is(err, model.ErrIDMismatch):
		http.Error(w, "body id does not match path id", http.StatusBadRequest)
	case errors.Is(err, precond.ErrConflictingPreconditions):
		http.Error(w, "conflicting preconditions", http.StatusBadRequest)
	default:
		h.logger.Error("contact handler: request failed", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
