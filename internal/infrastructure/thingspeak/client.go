// Package thingspeak reads collar telemetry from ThingSpeak channels.
// field1 carries the heart rate, field2 and field3 the GPS position.
package thingspeak

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ntdm/animal-hospital/internal/core/domain"
)

const (
	DefaultBaseURL = "https://api.thingspeak.com"
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 << 10
)

// HTTPError represents a non-2xx response.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("thingspeak: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("thingspeak: status=%d body=%s", e.StatusCode, e.Body)
}

// Client fetches channel feeds. Each animal's device id is a channel id.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func NewClient(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid thingspeak base url: %w", err)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}, nil
}

type feedResponse struct {
	Feeds []feed `json:"feeds"`
}

type feed struct {
	CreatedAt time.Time `json:"created_at"`
	EntryID   int64     `json:"entry_id"`
	Field1    *string   `json:"field1"`
	Field2    *string   `json:"field2"`
	Field3    *string   `json:"field3"`
}

// Feeds returns the last results readings of the channel, oldest first.
func (c *Client) Feeds(ctx context.Context, deviceID string, results int) ([]domain.TelemetryReading, error) {
	if strings.TrimSpace(deviceID) == "" {
		return nil, errors.New("thingspeak: empty channel id")
	}

	q := url.Values{}
	q.Set("results", strconv.Itoa(results))
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}
	endpoint := fmt.Sprintf("%s/channels/%s/feeds.json?%s", c.baseURL, url.PathEscape(deviceID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("thingspeak: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("thingspeak: do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var out feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("thingspeak: decode feeds: %w", err)
	}

	readings := make([]domain.TelemetryReading, 0, len(out.Feeds))
	for _, f := range out.Feeds {
		readings = append(readings, f.toReading())
	}
	return readings, nil
}

func (f feed) toReading() domain.TelemetryReading {
	r := domain.TelemetryReading{EntryID: f.EntryID, Timestamp: f.CreatedAt}
	if bpm, ok := parseField(f.Field1); ok {
		r.BPM = bpm
	}
	lat, okLat := parseField(f.Field2)
	lng, okLng := parseField(f.Field3)
	if okLat && okLng {
		r.Latitude = &lat
		r.Longitude = &lng
		r.HasLocation = true
	}
	return r
}

func parseField(v *string) (float64, bool) {
	if v == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(*v), 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
