package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gallery/internal/common"
)

// messageResponse is the body of every non-data reply, errors included.
type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Message: msg})
}

// errorStatus maps a service error to a status code and a client-safe message.
func errorStatus(err error) (int, string) {
	if reason, ok := common.ValidationReason(err); ok {
		return http.StatusBadRequest, reason
	}

	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest, "already exists"
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusBadRequest, "not found"
	case errors.Is(err, common.ErrTokenExpired):
		return http.StatusUnauthorized, "token expired"
	case errors.Is(err, common.ErrTokenRevoked):
		return http.StatusUnauthorized, "token revoked"
	case errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, "unauthorized"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// writeError answers with the mapped status. 5xx details go to the log only.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := errorStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
	}
	writeMessage(w, status, msg)
}
