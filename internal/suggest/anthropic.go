package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	anthropicEndpoint   = "https://api.anthropic.com/v1/messages"
	anthropicAPIVersion = "2023-06-01"
	anthropicModel      = "claude-sonnet-4-20250514"
)

// Anthropic calls the Anthropic Messages API.
type Anthropic struct {
	cfg RemoteConfig
}

// NewAnthropic returns an Anthropic provider.
func NewAnthropic(cfg RemoteConfig) *Anthropic {
	return &Anthropic{cfg: cfg}
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (a *Anthropic) Name() string    { return "anthropic" }
func (a *Anthropic) Available() bool { return a.cfg.APIKey != "" }

func (a *Anthropic) Generate(ctx context.Context, sc Context) ([]string, error) {
	req := anthropicRequest{
		Model:       orDefault(a.cfg.Model, anthropicModel),
		MaxTokens:   remoteMaxTokens,
		Temperature: remoteTemperature,
		System:      systemPrompt,
		Messages:    []anthropicMessage{{Role: "user", Content: contextPrompt(sc)}},
	}
	headers := map[string]string{
		"x-api-key":         a.cfg.APIKey,
		"anthropic-version": anthropicAPIVersion,
	}
	var resp anthropicResponse
	if err := postJSON(ctx, a.cfg.httpClient(), a.Name(), orDefault(a.cfg.Endpoint, anthropicEndpoint), headers, req, &resp); err != nil {
		return nil, fmt.Errorf("calling anthropic: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("anthropic: %s: %s", resp.Error.Type, resp.Error.Message)
	}

	var parts []string
	for _, block := range resp.Content {
		if block.Type == "text" {
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		return nil, errors.New("anthropic: no text content in response")
	}
	return ParseSuggestions(strings.Join(parts, "")), nil
}
