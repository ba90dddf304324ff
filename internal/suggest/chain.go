package suggest

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Chain tries the first available remote provider once and degrades to
// local heuristics on any failure. A failed provider is never retried and
// later providers are not consulted.
type Chain struct {
	providers []Provider
	logger    *slog.Logger
	recorder  Recorder
}

// NewChain returns a chain over providers in priority order. logger and
// recorder may be nil.
func NewChain(logger *slog.Logger, recorder Recorder, providers ...Provider) *Chain {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Chain{providers: providers, logger: logger, recorder: recorder}
}

// Providers returns the configured providers in priority order.
func (c *Chain) Providers() []Provider {
	return c.providers
}

// Active returns the provider Suggest would call, or nil.
func (c *Chain) Active() Provider {
	for _, p := range c.providers {
		if p.Available() {
			return p
		}
	}
	return nil
}

// Suggest always returns a well-formed result.
func (c *Chain) Suggest(ctx context.Context, sc Context) Result {
	start := time.Now()

	p := c.Active()
	if p == nil {
		c.observe("", SourceLocal, "skipped", start)
		return Local(sc)
	}

	if err := sc.Validate(); err != nil {
		c.logger.Warn("suggestion context incomplete, using local heuristics", "provider", p.Name(), "error", err)
		c.observe(p.Name(), SourceLocal, "skipped", start)
		return Local(sc)
	}

	suggestions, err := p.Generate(ctx, sc)
	if err == nil && len(suggestions) == 0 {
		err = errEmptySuggestions
	}
	if err != nil {
		c.logger.Warn("suggestion provider failed, using local heuristics", "provider", p.Name(), "error", err)
		c.observe(p.Name(), SourceLocal, "error", start)
		return Local(sc)
	}

	c.observe(p.Name(), SourceAI, "ok", start)
	return Result{
		Source:      SourceAI,
		Provider:    p.Name(),
		Suggestions: capSuggestions(suggestions),
	}
}

func (c *Chain) observe(provider, source, outcome string, start time.Time) {
	if c.recorder == nil {
		return
	}
	c.recorder.ObserveSuggestion(provider, source, outcome, time.Since(start))
}

func capSuggestions(s []string) []string {
	if len(s) > MaxSuggestions {
		s = s[:MaxSuggestions]
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
