package openweather

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
)

// API Docs:
// - https://openweathermap.org/api/geocoding-api
// - https://openweathermap.org/forecast5
// Sample requests:
// - http://api.openweathermap.org/geo/1.0/direct?q=Paris,,&limit=1&appid={key}
// - http://api.openweathermap.org/data/2.5/forecast?lat=48.85&lon=2.35&appid={key}&units=metric
const (
	baseGeocodeURL  = "http://api.openweathermap.org/geo/1.0/direct"
	baseForecastURL = "http://api.openweathermap.org/data/2.5/forecast"
	defaultTimeout  = 10 * time.Second
)

// StatusError reports a non-200 answer from the provider
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("fetch returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("fetch returned status %d: %s", e.StatusCode, e.Body)
}

// IsStatus reports whether err is a StatusError with the given code
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

type Client struct {
	httpClient  *http.Client
	apiKey      string
	geocodeURL  string
	forecastURL string
}

// Option customizes a Client
type Option func(*Client)

// WithGeocodeURL overrides the direct geocoding endpoint
func WithGeocodeURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.geocodeURL = u
		}
	}
}

// WithForecastURL overrides the 5 day forecast endpoint
func WithForecastURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.forecastURL = u
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient:  &http.Client{Timeout: defaultTimeout},
		apiKey:      apiKey,
		geocodeURL:  baseGeocodeURL,
		forecastURL: baseForecastURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Geocode resolves a free-text place name. state and country may be empty.
func (c *Client) Geocode(ctx context.Context, city, state, country string, limit int) ([]GeocodeResult, error) {
	u, err := url.Parse(c.geocodeURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	if limit <= 0 {
		limit = 1
	}

	q := u.Query()
	q.Set("q", strings.Join([]string{city, state, country}, ","))
	q.Set("limit", strconv.Itoa(limit))
	q.Set("appid", c.apiKey)
	u.RawQuery = q.Encode()

	var results []GeocodeResult
	if err := c.getJSON(ctx, u.String(), &results); err != nil {
		return nil, err
	}

	return results, nil
}

// Forecast fetches the 5 day forecast in 3 hour steps, metric units
func (c *Client) Forecast(ctx context.Context, latitude, longitude float64) (*ForecastAPIResponse, error) {
	u, err := url.Parse(c.forecastURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("lat", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(longitude, 'f', -1, 64))
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	u.RawQuery = q.Encode()

	var apiResp ForecastAPIResponse
	if err := c.getJSON(ctx, u.String(), &apiResp); err != nil {
		return nil, err
	}

	return &apiResp, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", redact(err, c.apiKey))
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// redact strips the credential from transport errors, which embed the request URL
func redact(err error, apiKey string) error {
	if apiKey == "" || !strings.Contains(err.Error(), apiKey) {
		return err
	}
	return errors.New(strings.ReplaceAll(err.Error(), apiKey, "REDACTED"))
}
