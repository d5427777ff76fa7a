package httpapi

import "net/http"

type healthResponse struct {
	OK       bool   `json:"ok"`
	Provider string `json:"provider"`
}

// handleHealthz reports liveness and the active provider kind. Configuration
// is resolved before the server starts listening, so a process that answers
// here resolved successfully.
func (d *Dependencies) handleHealthz(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, healthResponse{
		OK:       true,
		Provider: d.Provider.Kind(),
	})
}
