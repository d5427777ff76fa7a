package httpapi

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"chat_proxy/internal/logging"
	"chat_proxy/internal/providers"
)

// chatRequestBody is the inbound JSON shape for POST /chat. A missing
// messages field decodes to nil and is forwarded as an empty sequence; a
// missing generation_config keeps the sampling defaults.
type chatRequestBody struct {
	Messages         []providers.ChatMessage        `json:"messages"`
	GenerationConfig *providers.GenerationOverrides `json:"generation_config"`
}

// handleChat forwards one chat-completion request to the configured
// provider.
//
// Flow:
//  1. Decode JSON body
//  2. Merge generation_config over the sampling defaults
//  3. Call the provider once
//  4. Relay the upstream status and body verbatim
func (d *Dependencies) handleChat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	reqID := newRequestID()

	if r.Method != http.MethodPost {
		writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var body chatRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSONError(w, http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err))
		return
	}

	req := providers.ChatRequest{
		Messages:  body.Messages,
		GenConfig: body.GenerationConfig.Merge(providers.DefaultGenerationConfig()),
	}

	// r.Context() is canceled when the client disconnects, which cancels
	// the upstream call too.
	resp, err := d.Provider.Chat(r.Context(), req)
	if err != nil {
		log.Printf("request %s: upstream call failed: %v", reqID, err)
		d.Metrics.ObserveChat(d.Provider.Kind(), http.StatusBadGateway, time.Since(start))
		d.RequestLogger.Enqueue(logging.Record{
			Timestamp: time.Now(),
			RequestID: reqID,
			Provider:  d.Provider.Kind(),
			Model:     d.Provider.Model(),
			GatewayMs: time.Since(start).Milliseconds(),
			Error:     err.Error(),
		})
		writeJSONError(w, http.StatusBadGateway, "upstream request failed")
		return
	}

	d.Metrics.ObserveChat(d.Provider.Kind(), resp.StatusCode, resp.UpstreamLatency)
	d.RequestLogger.Enqueue(logging.Record{
		Timestamp:      time.Now(),
		RequestID:      reqID,
		Provider:       d.Provider.Kind(),
		Model:          d.Provider.Model(),
		UpstreamStatus: resp.StatusCode,
		UpstreamMs:     resp.UpstreamLatency.Milliseconds(),
		GatewayMs:      time.Since(start).Milliseconds(),
	})

	// Pass-through relay: the upstream body is the contract, error bodies
	// included.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	_, _ = w.Write(resp.Body)
}
