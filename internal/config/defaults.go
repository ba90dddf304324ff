// Package config provides configuration loading and defaults for weatherfocus.
package config

import "time"

// DefaultConfigDir is the default location for weatherfocus configuration.
const DefaultConfigDir = "~/.config/weatherfocus"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "weatherfocus.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// EnvPrefix prefixes every environment override, e.g.
// WEATHERFOCUS_SERVE_ADDR.
const EnvPrefix = "WEATHERFOCUS"

// DefaultLocation is used until the user configures coordinates.
var DefaultLocation = Location{Lat: 51.5072, Lon: -0.1276, Name: "London"}

// DefaultWeather holds the OpenWeatherMap defaults.
var DefaultWeather = Weather{
	Endpoint: "https://api.openweathermap.org/data/2.5/weather",
	Units:    "metric",
	Timeout:  10 * time.Second,
}

// DefaultActivityWatch points at a local ActivityWatch server.
var DefaultActivityWatch = ActivityWatch{
	Endpoint: "http://localhost:5600/api/0",
	Timeout:  5 * time.Second,
}

// DefaultProviders lists remote suggestion providers in priority order.
var DefaultProviders = Providers{
	Order: []string{"cohere", "huggingface", "anthropic"},
	Cohere: Provider{
		Endpoint: "https://api.cohere.ai/v1/generate",
		Model:    "command",
		Timeout:  10 * time.Second,
	},
	HuggingFace: Provider{
		Endpoint: "https://api-inference.huggingface.co/models/gpt2",
		Timeout:  10 * time.Second,
	},
	Anthropic: Provider{
		Endpoint: "https://api.anthropic.com/v1/messages",
		Model:    "claude-sonnet-4-20250514",
		Timeout:  15 * time.Second,
	},
}

// DefaultHistory holds per-stream retention limits.
var DefaultHistory = History{Weather: 30, Productivity: 30, Pomodoro: 100}

// DefaultPomodoro is the classic 25/5/15 cycle.
var DefaultPomodoro = Pomodoro{
	Work:       25 * time.Minute,
	ShortBreak: 5 * time.Minute,
	LongBreak:  15 * time.Minute,
	Cycles:     4,
}

// DefaultWatch holds collector intervals.
var DefaultWatch = Watch{
	WeatherInterval:      30 * time.Minute,
	ProductivityInterval: 15 * time.Minute,
	Notify:               true,
}

// DefaultLog holds logging defaults.
var DefaultLog = Log{Level: "info", Format: "text"}

// DefaultServe holds HTTP API defaults.
var DefaultServe = Serve{Addr: "127.0.0.1:8089"}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}
