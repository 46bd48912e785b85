// Package advisor provides optional free-form training advice from an
// OpenAI-compatible chat completions endpoint. The capability has two
// variants: Disabled (always silent) and HTTP (network round trip with its
// own timeout). Callers treat an empty reply as "no recommendation
// available" and carry on.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const systemPrompt = "You are a fitness coach analyzing workout progress. " +
	"Provide specific, actionable recommendations."

// Provider produces advisory text for a serialized progress context.
// An empty string with a nil error means no advice is available.
type Provider interface {
	Recommend(ctx context.Context, progressContext string) (string, error)
}

// Select returns the HTTP provider when an API key is configured and the
// Disabled provider otherwise. Absence of credentials is a silent no-op,
// never an error.
func Select(url, model, apiKey string, timeout time.Duration) Provider {
	if apiKey == "" {
		return Disabled{}
	}
	return NewHTTP(url, model, apiKey, timeout)
}

// Disabled is the no-op provider used when no credentials are configured.
type Disabled struct{}

// Recommend always returns nothing.
func (Disabled) Recommend(context.Context, string) (string, error) {
	return "", nil
}

// HTTPProvider calls an OpenAI-compatible chat completions API.
type HTTPProvider struct {
	url        string
	model      string
	apiKey     string
	httpClient *http.Client
}

// NewHTTP creates a provider for the given endpoint. The timeout applies to
// the whole round trip.
func NewHTTP(url, model, apiKey string, timeout time.Duration) *HTTPProvider {
	return &HTTPProvider{
		url:        url,
		model:      model,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Recommend sends the progress context and returns the model's reply.
func (p *HTTPProvider) Recommend(ctx context.Context, progressContext string) (string, error) {
	reqBody := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: progressContext},
		},
		Temperature: 0.7,
		MaxTokens:   500,
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("encoding advisor request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("creating advisor request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("advisor request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading advisor response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advisor returned status %d: %s", resp.StatusCode, body)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("decoding advisor response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("advisor error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", nil
	}
	return chatResp.Choices[0].Message.Content, nil
}
