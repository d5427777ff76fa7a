package httpapi

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
)

// handleIndex serves the chat page. The page is maintained separately from
// the proxy; its only coupling is the /chat and /healthz contracts.
func (d *Dependencies) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	page := filepath.Join(d.Config.Static.Dir, "index.html")
	content, err := os.ReadFile(page)
	if err != nil {
		log.Printf("failed to read %s: %v", page, err)
		writeJSONError(w, http.StatusInternalServerError, "chat page unavailable")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
