package suggest

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const huggingFaceEndpoint = "https://api-inference.huggingface.co/models/gpt2"

// HuggingFace calls a Hugging Face inference endpoint. The model is part of
// the endpoint URL; Model is used only when Endpoint is empty.
type HuggingFace struct {
	cfg RemoteConfig
}

// NewHuggingFace returns a Hugging Face provider.
func NewHuggingFace(cfg RemoteConfig) *HuggingFace {
	return &HuggingFace{cfg: cfg}
}

type huggingFaceRequest struct {
	Inputs     string                `json:"inputs"`
	Parameters huggingFaceParameters `json:"parameters"`
}

type huggingFaceParameters struct {
	MaxNewTokens   int     `json:"max_new_tokens"`
	Temperature    float64 `json:"temperature"`
	ReturnFullText bool    `json:"return_full_text"`
}

type huggingFaceGeneration struct {
	GeneratedText string `json:"generated_text"`
}

func (h *HuggingFace) Name() string    { return "huggingface" }
func (h *HuggingFace) Available() bool { return h.cfg.APIKey != "" }

func (h *HuggingFace) endpoint() string {
	if h.cfg.Endpoint != "" {
		return h.cfg.Endpoint
	}
	if h.cfg.Model != "" {
		return strings.TrimSuffix(huggingFaceEndpoint, "gpt2") + h.cfg.Model
	}
	return huggingFaceEndpoint
}

func (h *HuggingFace) Generate(ctx context.Context, sc Context) ([]string, error) {
	req := huggingFaceRequest{
		Inputs: shortPrompt(sc),
		Parameters: huggingFaceParameters{
			MaxNewTokens: remoteMaxTokens,
			Temperature:  remoteTemperature,
		},
	}
	var resp []huggingFaceGeneration
	err := postJSON(ctx, h.cfg.httpClient(), h.Name(), h.endpoint(),
		map[string]string{"Authorization": "Bearer " + h.cfg.APIKey}, req, &resp)
	if err != nil {
		return nil, fmt.Errorf("calling huggingface: %w", err)
	}
	if len(resp) == 0 {
		return nil, errors.New("huggingface: empty response")
	}
	return ParseSuggestions(resp[0].GeneratedText), nil
}
