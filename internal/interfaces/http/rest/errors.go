package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/avencia/worldweave/internal/domain/entities"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps domain errors onto HTTP status codes. Self-links and
// validation failures are malformed requests; a dangling reference is a
// well-formed request naming something that isn't there.
func statusFor(err error) int {
	switch {
	case errors.Is(err, entities.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrDanglingReference):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entities.ErrConflictRetryable):
		return http.StatusConflict
	case errors.Is(err, entities.ErrSelfLink), entities.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (a *API) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		a.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		a.respondJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	a.respondJSON(w, status, errorResponse{Error: err.Error()})
}

func (a *API) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		a.logger.Error("encoding response", zap.Error(err))
	}
}
