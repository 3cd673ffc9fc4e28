package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the wire shape of every non-2xx body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON writes payload as a JSON body with the given status. The body is
// marshalled before any header goes out, so a failed encode still yields
// a whole 500 response. A nil payload encodes as JSON null.
func JSON(w http.ResponseWriter, status int, payload any) {
	body := []byte("null")
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// OK and Created cover the two success statuses the API responds with.
func OK(w http.ResponseWriter, payload any)      { JSON(w, http.StatusOK, payload) }
func Created(w http.ResponseWriter, payload any) { JSON(w, http.StatusCreated, payload) }

// JSONError writes an ErrorResponse body with the given status.
func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}
