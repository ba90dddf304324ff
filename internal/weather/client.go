// Package weather fetches current conditions from OpenWeatherMap.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/blackwell-systems/weatherfocus/internal/tracker"
)

// ErrNoAPIKey is returned by Current when no API key is configured.
var ErrNoAPIKey = errors.New("weather: no API key configured")

// Options configures a Client.
type Options struct {
	APIKey   string
	Endpoint string
	Units    string
	Lat      float64
	Lon      float64
	Timeout  time.Duration
}

// Client fetches current weather for a fixed location.
type Client struct {
	opts       Options
	httpClient *http.Client
	now        func() time.Time
}

// NewClient returns a client. A zero Timeout means 10 seconds.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Units == "" {
		opts.Units = "metric"
	}
	return &Client{
		opts:       opts,
		httpClient: &http.Client{Timeout: opts.Timeout},
		now:        time.Now,
	}
}

// currentResponse is the subset of the OpenWeatherMap current weather
// response that is recorded.
type currentResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Name string `json:"name"`
}

// Configured reports whether Current can be called.
func (c *Client) Configured() bool {
	return c.opts.APIKey != ""
}

// Current fetches the current conditions as a new weather sample.
// Temperatures are rounded to whole degrees.
func (c *Client) Current(ctx context.Context) (tracker.WeatherSample, error) {
	if !c.Configured() {
		return tracker.WeatherSample{}, ErrNoAPIKey
	}

	u, err := url.Parse(c.opts.Endpoint)
	if err != nil {
		return tracker.WeatherSample{}, fmt.Errorf("weather: parsing endpoint: %w", err)
	}
	q := u.Query()
	q.Set("lat", strconv.FormatFloat(c.opts.Lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(c.opts.Lon, 'f', -1, 64))
	q.Set("appid", c.opts.APIKey)
	q.Set("units", c.opts.Units)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return tracker.WeatherSample{}, fmt.Errorf("weather: creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return tracker.WeatherSample{}, fmt.Errorf("weather: sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return tracker.WeatherSample{}, fmt.Errorf("weather: API returned status %d: %s", resp.StatusCode, body)
	}

	var cr currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return tracker.WeatherSample{}, fmt.Errorf("weather: decoding response: %w", err)
	}
	if len(cr.Weather) == 0 || cr.Weather[0].Main == "" {
		return tracker.WeatherSample{}, errors.New("weather: response has no conditions")
	}

	return tracker.WeatherSample{
		ID:         tracker.NewID(),
		Timestamp:  c.now(),
		Temp:       math.Round(cr.Main.Temp),
		FeelsLike:  math.Round(cr.Main.FeelsLike),
		Conditions: cr.Weather[0].Main,
		Humidity:   cr.Main.Humidity,
		WindSpeed:  cr.Wind.Speed,
		Location:   cr.Name,
	}, nil
}
