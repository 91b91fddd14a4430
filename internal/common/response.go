package common

import (
	"encoding/json"
	"log"
	"net/http"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the envelope of the register and update endpoints.
type MessageResponse struct {
	Message string `json:"message"`
	User    any    `json:"user"`
}

const marshalFailureBody = `{"error":"Failed to marshal JSON response"}`

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

// RespondWithJSON writes payload with the given status. Bodies carry bearer
// tokens and profile data, so no response may be cached.
func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ERROR: encode %T response: %v", payload, err)
		code, body = http.StatusInternalServerError, []byte(marshalFailureBody)
	}
	h := w.Header()
	h.Set("Content-Type", "application/json")
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	w.Write(body)
}
