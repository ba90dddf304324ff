package suggest

import (
	"context"
	"errors"
	"fmt"
)

const (
	cohereEndpoint = "https://api.cohere.ai/v1/generate"
	cohereModel    = "command"
)

// Cohere calls the Cohere generate API.
type Cohere struct {
	cfg RemoteConfig
}

// NewCohere returns a Cohere provider.
func NewCohere(cfg RemoteConfig) *Cohere {
	return &Cohere{cfg: cfg}
}

type cohereRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

type cohereResponse struct {
	Generations []struct {
		Text string `json:"text"`
	} `json:"generations"`
	Message string `json:"message,omitempty"`
}

func (c *Cohere) Name() string    { return "cohere" }
func (c *Cohere) Available() bool { return c.cfg.APIKey != "" }

func (c *Cohere) Generate(ctx context.Context, sc Context) ([]string, error) {
	req := cohereRequest{
		Model:       orDefault(c.cfg.Model, cohereModel),
		Prompt:      contextPrompt(sc),
		MaxTokens:   remoteMaxTokens,
		Temperature: remoteTemperature,
	}
	var resp cohereResponse
	err := postJSON(ctx, c.cfg.httpClient(), c.Name(), orDefault(c.cfg.Endpoint, cohereEndpoint),
		map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("calling cohere: %w", err)
	}
	if len(resp.Generations) == 0 {
		if resp.Message != "" {
			return nil, fmt.Errorf("cohere: %s", resp.Message)
		}
		return nil, errors.New("cohere: no generations in response")
	}
	return ParseSuggestions(resp.Generations[0].Text), nil
}
