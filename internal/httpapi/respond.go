package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
)

// newRequestID returns a UUID request ID for log correlation.
func newRequestID() string {
	return uuid.New().String()
}

// respondWithJSON sends a JSON response.
func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeJSONError writes a JSON error envelope. Messages here are for the
// caller; underlying causes stay in the server log.
func writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]any{
		"error": map[string]any{
			"message": message,
			"code":    statusCode,
		},
	})
}
