package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the top-level weatherfocus configuration.
type Config struct {
	DBPath        string        `mapstructure:"db_path"`
	Location      Location      `mapstructure:"location"`
	Weather       Weather       `mapstructure:"weather"`
	ActivityWatch ActivityWatch `mapstructure:"activitywatch"`
	Providers     Providers     `mapstructure:"providers"`
	History       History       `mapstructure:"history"`
	Pomodoro      Pomodoro      `mapstructure:"pomodoro"`
	Watch         Watch         `mapstructure:"watch"`
	Log           Log           `mapstructure:"log"`
	Serve         Serve         `mapstructure:"serve"`
	Output        Output        `mapstructure:"output"`
}

// Location is where weather is sampled.
type Location struct {
	Lat  float64 `mapstructure:"lat"`
	Lon  float64 `mapstructure:"lon"`
	Name string  `mapstructure:"name"`
}

// Weather configures the OpenWeatherMap client.
type Weather struct {
	APIKey   string        `mapstructure:"api_key"`
	Endpoint string        `mapstructure:"endpoint"`
	Units    string        `mapstructure:"units"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ActivityWatch configures the local activity tracker client.
type ActivityWatch struct {
	Endpoint string        `mapstructure:"endpoint"`
	Hostname string        `mapstructure:"hostname"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Providers configures remote suggestion providers.
type Providers struct {
	Order       []string `mapstructure:"order"`
	Cohere      Provider `mapstructure:"cohere"`
	HuggingFace Provider `mapstructure:"huggingface"`
	Anthropic   Provider `mapstructure:"anthropic"`
}

// Provider is a single remote provider. It is enabled when APIKey is set.
type Provider struct {
	APIKey   string        `mapstructure:"api_key"`
	Endpoint string        `mapstructure:"endpoint"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ByName returns the provider config for a name in Order.
func (p Providers) ByName(name string) (Provider, bool) {
	switch name {
	case "cohere":
		return p.Cohere, true
	case "huggingface":
		return p.HuggingFace, true
	case "anthropic":
		return p.Anthropic, true
	}
	return Provider{}, false
}

// History holds per-stream retention limits.
type History struct {
	Weather      int `mapstructure:"weather"`
	Productivity int `mapstructure:"productivity"`
	Pomodoro     int `mapstructure:"pomodoro"`
}

// Pomodoro configures the timer.
type Pomodoro struct {
	Work       time.Duration `mapstructure:"work"`
	ShortBreak time.Duration `mapstructure:"short_break"`
	LongBreak  time.Duration `mapstructure:"long_break"`
	Cycles     int           `mapstructure:"cycles"`
}

// Watch configures the background collector.
type Watch struct {
	WeatherInterval      time.Duration `mapstructure:"weather_interval"`
	ProductivityInterval time.Duration `mapstructure:"productivity_interval"`
	Notify               bool          `mapstructure:"notify"`
}

// Log configures structured logging.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Serve configures the HTTP API.
type Serve struct {
	Addr string `mapstructure:"addr"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// legacyEnv maps config keys to the bare environment variable names users
// commonly already have exported.
var legacyEnv = map[string]string{
	"weather.api_key":               "OPENWEATHER_API_KEY",
	"providers.cohere.api_key":      "COHERE_API_KEY",
	"providers.huggingface.api_key": "HF_API_KEY",
	"providers.anthropic.api_key":   "ANTHROPIC_API_KEY",
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db_path", filepath.Join(DefaultConfigDir, DefaultDBName))
	v.SetDefault("location.lat", DefaultLocation.Lat)
	v.SetDefault("location.lon", DefaultLocation.Lon)
	v.SetDefault("location.name", DefaultLocation.Name)
	v.SetDefault("weather.api_key", "")
	v.SetDefault("weather.endpoint", DefaultWeather.Endpoint)
	v.SetDefault("weather.units", DefaultWeather.Units)
	v.SetDefault("weather.timeout", DefaultWeather.Timeout)
	v.SetDefault("activitywatch.endpoint", DefaultActivityWatch.Endpoint)
	v.SetDefault("activitywatch.hostname", "")
	v.SetDefault("activitywatch.timeout", DefaultActivityWatch.Timeout)
	v.SetDefault("providers.order", DefaultProviders.Order)
	for name, p := range map[string]Provider{
		"cohere":      DefaultProviders.Cohere,
		"huggingface": DefaultProviders.HuggingFace,
		"anthropic":   DefaultProviders.Anthropic,
	} {
		v.SetDefault("providers."+name+".api_key", "")
		v.SetDefault("providers."+name+".endpoint", p.Endpoint)
		v.SetDefault("providers."+name+".model", p.Model)
		v.SetDefault("providers."+name+".timeout", p.Timeout)
	}
	v.SetDefault("history.weather", DefaultHistory.Weather)
	v.SetDefault("history.productivity", DefaultHistory.Productivity)
	v.SetDefault("history.pomodoro", DefaultHistory.Pomodoro)
	v.SetDefault("pomodoro.work", DefaultPomodoro.Work)
	v.SetDefault("pomodoro.short_break", DefaultPomodoro.ShortBreak)
	v.SetDefault("pomodoro.long_break", DefaultPomodoro.LongBreak)
	v.SetDefault("pomodoro.cycles", DefaultPomodoro.Cycles)
	v.SetDefault("watch.weather_interval", DefaultWatch.WeatherInterval)
	v.SetDefault("watch.productivity_interval", DefaultWatch.ProductivityInterval)
	v.SetDefault("watch.notify", DefaultWatch.Notify)
	v.SetDefault("log.level", DefaultLog.Level)
	v.SetDefault("log.format", DefaultLog.Format)
	v.SetDefault("serve.addr", DefaultServe.Addr)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)
}

// loadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func loadDotEnv(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied. Values resolve in order:
// environment, config file, defaults. A .env file in the working directory
// or the config directory seeds the environment first.
func Load(cfgFile string) (*Config, error) {
	if err := loadDotEnv(".env", filepath.Join(ConfigDir(), ".env")); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		v.AddConfigPath(ConfigDir())
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	cfg.DBPath = expandPath(cfg.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.History.Weather < 1 || c.History.Productivity < 1 || c.History.Pomodoro < 1 {
		errs = append(errs, errors.New("history limits must be positive"))
	}
	if c.Pomodoro.Work <= 0 || c.Pomodoro.ShortBreak <= 0 || c.Pomodoro.LongBreak <= 0 {
		errs = append(errs, errors.New("pomodoro durations must be positive"))
	}
	if c.Pomodoro.Cycles < 1 {
		errs = append(errs, errors.New("pomodoro.cycles must be at least 1"))
	}
	if c.Location.Lat < -90 || c.Location.Lat > 90 || c.Location.Lon < -180 || c.Location.Lon > 180 {
		errs = append(errs, fmt.Errorf("location %v,%v out of range", c.Location.Lat, c.Location.Lon))
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, strings.ToLower(c.Log.Level)) {
		errs = append(errs, fmt.Errorf("unknown log.level %q", c.Log.Level))
	}
	if !slices.Contains([]string{"text", "json"}, strings.ToLower(c.Log.Format)) {
		errs = append(errs, fmt.Errorf("unknown log.format %q", c.Log.Format))
	}
	for _, name := range c.Providers.Order {
		if _, ok := c.Providers.ByName(name); !ok {
			errs = append(errs, fmt.Errorf("unknown provider %q in providers.order", name))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// DBPath returns the default path to the SQLite database.
func DBPath() string {
	return filepath.Join(ConfigDir(), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
