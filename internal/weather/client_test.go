package weather

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `{
	"weather": [{"id": 500, "main": "Rain", "description": "light rain"}],
	"main": {"temp": 14.6, "feels_like": 13.2, "humidity": 88},
	"wind": {"speed": 4.1},
	"name": "Bergen"
}`

func TestCurrent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "60.39", q.Get("lat"))
		assert.Equal(t, "5.32", q.Get("lon"))
		assert.Equal(t, "key", q.Get("appid"))
		assert.Equal(t, "metric", q.Get("units"))
		_, _ = io.WriteString(w, sampleResponse)
	}))
	defer srv.Close()

	now := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	c := NewClient(Options{APIKey: "key", Endpoint: srv.URL, Lat: 60.39, Lon: 5.32})
	c.now = func() time.Time { return now }

	got, err := c.Current(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, now, got.Timestamp)
	assert.Equal(t, 15.0, got.Temp)
	assert.Equal(t, 13.0, got.FeelsLike)
	assert.Equal(t, "Rain", got.Conditions)
	assert.Equal(t, 88, got.Humidity)
	assert.Equal(t, 4.1, got.WindSpeed)
	assert.Equal(t, "Bergen", got.Location)
}

func TestCurrent_NoAPIKey(t *testing.T) {
	c := NewClient(Options{Endpoint: "http://unused"})
	assert.False(t, c.Configured())
	_, err := c.Current(context.Background())
	assert.True(t, errors.Is(err, ErrNoAPIKey))
}

func TestCurrent_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":401,"message":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := NewClient(Options{APIKey: "bad", Endpoint: srv.URL}).Current(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestCurrent_NoConditions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"weather": [], "main": {"temp": 10}}`)
	}))
	defer srv.Close()

	_, err := NewClient(Options{APIKey: "key", Endpoint: srv.URL}).Current(context.Background())
	assert.Error(t, err)
}
