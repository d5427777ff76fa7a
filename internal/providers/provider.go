package providers

import (
	"context"
	"time"
)

// ChatMessage is a single conversation turn, forwarded to the upstream
// service in the order the caller supplied it.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the normalized internal request handed to a provider.
// GenConfig must already be merged over the sampling defaults.
type ChatRequest struct {
	Messages  []ChatMessage
	GenConfig GenerationConfig
}

// ChatResponse carries the upstream response for verbatim relay. The proxy
// defines no response schema of its own; Body is the contract, error bodies
// included.
type ChatResponse struct {
	StatusCode      int
	Body            []byte
	UpstreamLatency time.Duration
}

// Provider is implemented by each upstream inference service the proxy can
// forward to (HF TGI, RunPod). The set is closed: supporting another
// service means adding one implementation, not growing a conditional.
type Provider interface {
	// Kind returns the provider kind identifier (e.g. HF_TGI).
	Kind() string

	// Model returns the configured model name.
	Model() string

	// Chat sends one chat-completion request upstream. A non-2xx upstream
	// status is not an error: the response is returned so the caller can
	// relay it. An error means the call itself failed (connect, DNS,
	// timeout) before a response was received.
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)

	// Close releases idle connections.
	Close() error
}
