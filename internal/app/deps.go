package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/blackwell-systems/weatherfocus/internal/activity"
	"github.com/blackwell-systems/weatherfocus/internal/config"
	"github.com/blackwell-systems/weatherfocus/internal/engine"
	"github.com/blackwell-systems/weatherfocus/internal/logging"
	"github.com/blackwell-systems/weatherfocus/internal/metrics"
	"github.com/blackwell-systems/weatherfocus/internal/store"
	"github.com/blackwell-systems/weatherfocus/internal/suggest"
	"github.com/blackwell-systems/weatherfocus/internal/weather"
)

// deps is everything a command needs, built from config.
type deps struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *store.DB
	registry *prometheus.Registry
	metrics  *metrics.Metrics
	chain    *suggest.Chain
	engine   *engine.Engine
}

// loadDeps loads config, opens the database, and wires the engine.
// Callers must call close.
func loadDeps() (*deps, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	level := cfg.Log.Level
	if flagVerbose {
		level = "debug"
	}
	logger := logging.New(os.Stderr, level, cfg.Log.Format)

	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetLimits(store.Limits{
		Weather:      cfg.History.Weather,
		Productivity: cfg.History.Productivity,
		Pomodoro:     cfg.History.Pomodoro,
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	d := &deps{
		cfg:      cfg,
		db:       db,
		registry: reg,
		metrics:  m,
	}
	d.setLogger(logger)
	return d, nil
}

// setLogger rebuilds the suggestion chain and engine around logger.
func (d *deps) setLogger(logger *slog.Logger) {
	d.logger = logger
	d.chain = suggest.NewChain(logger, d.metrics, buildProviders(d.cfg.Providers)...)
	d.engine = engine.New(d.db, d.db, d.chain, logger, d.metrics)
}

func (d *deps) close() {
	_ = d.db.Close()
}

// buildProviders instantiates remote providers in configured order.
func buildProviders(cfg config.Providers) []suggest.Provider {
	var providers []suggest.Provider
	for _, name := range cfg.Order {
		p, ok := cfg.ByName(name)
		if !ok {
			continue
		}
		rc := suggest.RemoteConfig{
			APIKey:   p.APIKey,
			Endpoint: p.Endpoint,
			Model:    p.Model,
			Timeout:  p.Timeout,
		}
		switch name {
		case "cohere":
			providers = append(providers, suggest.NewCohere(rc))
		case "huggingface":
			providers = append(providers, suggest.NewHuggingFace(rc))
		case "anthropic":
			providers = append(providers, suggest.NewAnthropic(rc))
		}
	}
	return providers
}

func newWeatherClient(cfg *config.Config) *weather.Client {
	return weather.NewClient(weather.Options{
		APIKey:   cfg.Weather.APIKey,
		Endpoint: cfg.Weather.Endpoint,
		Units:    cfg.Weather.Units,
		Lat:      cfg.Location.Lat,
		Lon:      cfg.Location.Lon,
		Timeout:  cfg.Weather.Timeout,
	})
}

func newActivityClient(cfg *config.Config) *activity.Client {
	return activity.NewClient(cfg.ActivityWatch.Endpoint, cfg.ActivityWatch.Hostname, cfg.ActivityWatch.Timeout)
}
