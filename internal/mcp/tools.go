package mcp

import (
	"context"
	"encoding/json"

	"github.com/blackwell-systems/weatherfocus/internal/analyzer"
	"github.com/blackwell-systems/weatherfocus/internal/suggest"
)

// Service is the analysis surface exposed as MCP tools. *engine.Engine
// implements it.
type Service interface {
	Insights(ctx context.Context) analyzer.InsightResult
	Correlations(ctx context.Context) analyzer.CorrelationResult
	Pomodoro(ctx context.Context) analyzer.PatternResult
	Suggestions(ctx context.Context) suggest.Result
	Feed(ctx context.Context) analyzer.FeedResult
}

var (
	noArgsSchema   = json.RawMessage(`{"type":"object","properties":{},"additionalProperties":false}`)
	insightsSchema = json.RawMessage(`{"type":"object","properties":{"raw":{"type":"boolean","description":"Return only the correlation statements, without tips"}},"additionalProperties":false}`)
)

func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "get_insights",
		Description: "How productivity varies with temperature, weather conditions, and time of day, with tips.",
		InputSchema: insightsSchema,
		Handler:     s.handleGetInsights,
	})
	s.registerTool(toolDef{
		Name:        "get_pomodoro_patterns",
		Description: "Pomodoro completion rates by weather condition and time of day.",
		InputSchema: noArgsSchema,
		Handler:     s.handleGetPomodoroPatterns,
	})
	s.registerTool(toolDef{
		Name:        "get_suggestions",
		Description: "Up to three productivity suggestions for the current weather and focus level.",
		InputSchema: noArgsSchema,
		Handler:     s.handleGetSuggestions,
	})
	s.registerTool(toolDef{
		Name:        "get_feed",
		Description: "Best and worst focus hours, focus by weather, and tips for right now.",
		InputSchema: noArgsSchema,
		Handler:     s.handleGetFeed,
	})
}

type insightsArgs struct {
	Raw bool `json:"raw"`
}

func (s *Server) handleGetInsights(ctx context.Context, args json.RawMessage) (any, error) {
	var a insightsArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Raw {
		return s.svc.Correlations(ctx), nil
	}
	return s.svc.Insights(ctx), nil
}

func (s *Server) handleGetPomodoroPatterns(ctx context.Context, _ json.RawMessage) (any, error) {
	return s.svc.Pomodoro(ctx), nil
}

func (s *Server) handleGetSuggestions(ctx context.Context, _ json.RawMessage) (any, error) {
	return s.svc.Suggestions(ctx), nil
}

func (s *Server) handleGetFeed(ctx context.Context, _ json.RawMessage) (any, error) {
	return s.svc.Feed(ctx), nil
}
