package server

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the JSON error envelope
type errorResponse struct {
	Success       bool     `json:"success"`
	Error         string   `json:"error"`
	MissingFields []string `json:"missingFields,omitempty"`
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// writeError writes a standardized JSON error response
func writeError(w http.ResponseWriter, statusCode int, message string, missingFields ...string) {
	writeJSON(w, statusCode, errorResponse{
		Success:       false,
		Error:         message,
		MissingFields: missingFields,
	})
}
