package utils

import (
	"encoding/json"
	"net/http"
)

// Payload is the uniform response envelope: {message, data?} on success,
// {message, error?} on failure.
type Payload struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// JSONResponse sends a JSON response with the given status and payload
func JSONResponse(w http.ResponseWriter, status int, payload Payload) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
