package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"chat_proxy/internal/config"
)

// RunpodProvider forwards chat requests to a RunPod serverless endpoint.
type RunpodProvider struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewRunpodProvider resolves the effective upstream base by trimming any
// trailing slash from the configured base URL. No suffix is appended; the
// configured URL already points at the run endpoint.
func NewRunpodProvider(cfg config.ProviderConfig) (*RunpodProvider, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required for the %s provider", config.ProviderRunpod)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required for the %s provider", config.ProviderRunpod)
	}

	return &RunpodProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		model:   cfg.ModelName,
		client:  newHTTPClient(cfg.RequestTimeout),
	}, nil
}

// Kind returns the provider kind identifier.
func (p *RunpodProvider) Kind() string {
	return string(config.ProviderRunpod)
}

// Model returns the configured model name.
func (p *RunpodProvider) Model() string {
	return p.model
}

// Chat posts one request to the resolved base URL, no retries.
func (p *RunpodProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	return postJSON(ctx, p.client, p.baseURL, p.apiKey, p.payload(req))
}

// payload shapes the RunPod {"input": ...} envelope.
func (p *RunpodProvider) payload(req ChatRequest) upstreamPayload {
	return buildPayload(req)
}

// Close releases idle connections.
func (p *RunpodProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}
