package providers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"chat_proxy/internal/config"
)

// HFTGIProvider forwards chat requests to a Hugging Face TGI endpoint.
type HFTGIProvider struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewHFTGIProvider resolves the effective upstream base by trimming any
// trailing slash from the configured base URL and appending /v1.
func NewHFTGIProvider(cfg config.ProviderConfig) (*HFTGIProvider, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required for the %s provider", config.ProviderHFTGI)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("api key is required for the %s provider", config.ProviderHFTGI)
	}

	return &HFTGIProvider{
		baseURL: strings.TrimRight(cfg.BaseURL, "/") + "/v1",
		apiKey:  cfg.APIKey,
		model:   cfg.ModelName,
		client:  newHTTPClient(cfg.RequestTimeout),
	}, nil
}

// Kind returns the provider kind identifier.
func (p *HFTGIProvider) Kind() string {
	return string(config.ProviderHFTGI)
}

// Model returns the configured model name.
func (p *HFTGIProvider) Model() string {
	return p.model
}

// Chat posts one request to the resolved base URL, no retries.
func (p *HFTGIProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	return postJSON(ctx, p.client, p.baseURL, p.apiKey, p.payload(req))
}

// payload shapes the upstream body. Today this is the same {"input": ...}
// envelope the RunPod provider sends, even though the /v1 base suggests an
// OpenAI-compatible endpoint. Known mismatch; confirm with the endpoint
// owner before switching to the /v1/chat/completions shape. Owning the
// shaping here keeps that change local to this variant.
func (p *HFTGIProvider) payload(req ChatRequest) upstreamPayload {
	return buildPayload(req)
}

// Close releases idle connections.
func (p *HFTGIProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}
