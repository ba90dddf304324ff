package suggest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCohere_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer co-key", r.Header.Get("Authorization"))

		var req cohereRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "command", req.Model)
		assert.Equal(t, 100, req.MaxTokens)
		assert.Contains(t, req.Prompt, "Current weather: Clear (18°C)")
		assert.Contains(t, req.Prompt, "Recent productivity: 82/100")
		assert.Contains(t, req.Prompt, "Focus duration: 60 minutes")

		_, _ = io.WriteString(w, `{"generations":[{"text":"1. Start with the hardest task\n2. Open a window for fresh air\n3. Take a break every hour"}]}`)
	}))
	defer srv.Close()

	p := NewCohere(RemoteConfig{APIKey: "co-key", Endpoint: srv.URL})
	require.True(t, p.Available())

	got, err := p.Generate(context.Background(), fullContext())
	require.NoError(t, err)
	assert.Equal(t, []string{"Start with the hardest task", "Open a window for fresh air", "Take a break every hour"}, got)
}

func TestCohere_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"invalid api token"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewCohere(RemoteConfig{APIKey: "bad", Endpoint: srv.URL}).Generate(context.Background(), fullContext())
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusUnauthorized, se.Code)
	assert.Equal(t, "cohere", se.Provider)
}

func TestHuggingFace_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer hf-key", r.Header.Get("Authorization"))
		var req huggingFaceRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Provide 3 concise tips for morning work during Clear weather:", req.Inputs)

		_, _ = io.WriteString(w, `[{"generated_text":"- Plan the day before opening email\n- Keep water on your desk"}]`)
	}))
	defer srv.Close()

	got, err := NewHuggingFace(RemoteConfig{APIKey: "hf-key", Endpoint: srv.URL}).Generate(context.Background(), fullContext())
	require.NoError(t, err)
	assert.Equal(t, []string{"Plan the day before opening email", "Keep water on your desk"}, got)
}

func TestHuggingFace_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"error":"Model gpt2 is currently loading"}`)
	}))
	defer srv.Close()

	_, err := NewHuggingFace(RemoteConfig{APIKey: "hf-key", Endpoint: srv.URL}).Generate(context.Background(), fullContext())
	assert.Error(t, err)
}

func TestHuggingFace_ModelEndpoint(t *testing.T) {
	h := NewHuggingFace(RemoteConfig{Model: "distilgpt2"})
	assert.Equal(t, "https://api-inference.huggingface.co/models/distilgpt2", h.endpoint())
	assert.Equal(t, huggingFaceEndpoint, NewHuggingFace(RemoteConfig{}).endpoint())
}

func TestAnthropic_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "an-key", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicAPIVersion, r.Header.Get("anthropic-version"))

		var req anthropicRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, anthropicModel, req.Model)
		if assert.Len(t, req.Messages, 1) {
			assert.Equal(t, "user", req.Messages[0].Role)
		}

		_, _ = io.WriteString(w, `{"content":[{"type":"text","text":"Tackle deep work before lunch\nWalk outside while it is clear"}]}`)
	}))
	defer srv.Close()

	got, err := NewAnthropic(RemoteConfig{APIKey: "an-key", Endpoint: srv.URL}).Generate(context.Background(), fullContext())
	require.NoError(t, err)
	assert.Equal(t, []string{"Tackle deep work before lunch", "Walk outside while it is clear"}, got)
}

func TestAnthropic_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"error":{"type":"overloaded_error","message":"Overloaded"}}`)
	}))
	defer srv.Close()

	_, err := NewAnthropic(RemoteConfig{APIKey: "an-key", Endpoint: srv.URL}).Generate(context.Background(), fullContext())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "overloaded_error"))
}

func TestProvider_TimeoutFallsBack(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	p := NewCohere(RemoteConfig{APIKey: "co-key", Endpoint: srv.URL, Timeout: 50 * time.Millisecond})
	got := NewChain(nil, nil, p).Suggest(context.Background(), fullContext())
	assert.Equal(t, SourceLocal, got.Source)
}

func TestProvider_Unavailable(t *testing.T) {
	assert.False(t, NewCohere(RemoteConfig{}).Available())
	assert.False(t, NewHuggingFace(RemoteConfig{}).Available())
	assert.False(t, NewAnthropic(RemoteConfig{}).Available())
}
