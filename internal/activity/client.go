// Package activity reads window activity from a local ActivityWatch server
// and summarizes it as a productivity sample.
package activity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/blackwell-systems/weatherfocus/internal/tracker"
)

// ErrNoWindowBucket is returned when the server has no currentwindow bucket.
var ErrNoWindowBucket = errors.New("activity: no window bucket found")

// Window is how far back Current looks.
const Window = 24 * time.Hour

// Client talks to the ActivityWatch REST API.
type Client struct {
	endpoint   string
	hostname   string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient returns a client for endpoint, e.g. http://localhost:5600/api/0.
// When hostname is set, only buckets from that host are considered.
func NewClient(endpoint, hostname string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		hostname:   hostname,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

type bucket struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Hostname string `json:"hostname"`
}

// Current summarizes the last 24 hours of window activity.
func (c *Client) Current(ctx context.Context) (tracker.ProductivitySample, error) {
	id, err := c.windowBucket(ctx)
	if err != nil {
		return tracker.ProductivitySample{}, err
	}

	now := c.now()
	q := url.Values{}
	q.Set("start", now.Add(-Window).UTC().Format(time.RFC3339))
	var events []Event
	if err := c.get(ctx, "/buckets/"+url.PathEscape(id)+"/events?"+q.Encode(), &events); err != nil {
		return tracker.ProductivitySample{}, fmt.Errorf("activity: fetching window events: %w", err)
	}
	return Summarize(events, now), nil
}

func (c *Client) windowBucket(ctx context.Context) (string, error) {
	var buckets map[string]bucket
	if err := c.get(ctx, "/buckets", &buckets); err != nil {
		return "", fmt.Errorf("activity: fetching buckets: %w", err)
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		b := buckets[k]
		if b.Type != "currentwindow" {
			continue
		}
		if c.hostname != "" && b.Hostname != c.hostname {
			continue
		}
		return k, nil
	}
	return "", ErrNoWindowBucket
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
