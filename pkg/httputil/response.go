package httputil

import (
	"encoding/json"
	"net/http"

	apperrors "classbook/pkg/errors"
)

// MessageResponse is the shape of every human-readable API message,
// including error bodies.
type MessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

func WriteMessage(w http.ResponseWriter, statusCode int, message string) error {
	return WriteJSON(w, statusCode, MessageResponse{Message: message})
}

// WriteError maps an error to its HTTP status and a {message} body.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)
	return WriteJSON(w, appErr.StatusCode(), MessageResponse{Message: appErr.Message})
}
