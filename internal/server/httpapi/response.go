package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stevegmedia/voxceleris/internal/common"
)

// Response is the single envelope every endpoint returns: errors carry a
// message, successes carry data (and sometimes a message as well).
type Response struct {
	Error   bool   `json:"error"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, Response{Error: false, Data: data})
}

func writeMessage(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusOK, Response{Error: false, Message: msg})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Response{Error: true, Message: msg})
}

// statusForError maps the service error taxonomy onto HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, common.ErrorPrivateAccount):
		return http.StatusForbidden
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrorAlreadyFollowing),
		errors.Is(err, common.ErrorNotFollowing),
		errors.Is(err, common.ErrorAlreadyExists),
		errors.Is(err, common.ErrorEmailTaken),
		errors.Is(err, common.ErrorUsernameTaken):
		return http.StatusConflict
	case errors.Is(err, common.ErrorInvalidInput),
		errors.Is(err, common.ErrorInvalidUsernameFormat),
		errors.Is(err, common.ErrorEmptyPost),
		errors.Is(err, common.ErrorPostTooLong),
		errors.Is(err, common.ErrorSelfFollow):
		return http.StatusBadRequest
	case errors.Is(err, common.ErrorUploadFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError surfaces a service error as the JSON envelope. Internal
// errors are masked with a generic message.
func writeServiceError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	writeError(w, status, msg)
}
