package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type samplingParams struct {
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
}

type upstreamInput struct {
	Messages       []ChatMessage  `json:"messages"`
	SamplingParams samplingParams `json:"sampling_params"`
}

// upstreamPayload is the envelope sent to the inference service.
type upstreamPayload struct {
	Input upstreamInput `json:"input"`
}

// buildPayload shapes the outbound body from a normalized request. A nil
// message slice is sent as an empty array, never null.
func buildPayload(req ChatRequest) upstreamPayload {
	messages := req.Messages
	if messages == nil {
		messages = []ChatMessage{}
	}
	return upstreamPayload{
		Input: upstreamInput{
			Messages: messages,
			SamplingParams: samplingParams{
				MaxTokens:   req.GenConfig.MaxTokens,
				Temperature: req.GenConfig.Temperature,
				TopP:        req.GenConfig.TopP,
			},
		},
	}
}

// newHTTPClient builds the outbound client. The timeout is explicit and
// configurable; long generations can legitimately take minutes, but an
// unbounded call is never acceptable.
func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// postJSON issues the single outbound call and reads the full response body.
// The request carries ctx, so a disconnected client cancels the upstream
// call instead of leaving it running.
func postJSON(ctx context.Context, client *http.Client, url, apiKey string, payload upstreamPayload) (*ChatResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+apiKey)

	start := time.Now()
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &ChatResponse{
		StatusCode:      resp.StatusCode,
		Body:            respBody,
		UpstreamLatency: time.Since(start),
	}, nil
}
