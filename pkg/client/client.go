package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Client is the GymStack API client. All entity services hang off it and
// share one HTTP core, one bearer token and one rate limiter.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
	limiter    *rate.Limiter
}

// Config holds the client configuration.
type Config struct {
	BaseURL    string        // API base URL (e.g. "https://api.gymstack.io")
	Token      string        // Optional bearer token for authenticated requests
	Timeout    time.Duration // HTTP client timeout (default: 30s)
	HTTPClient *http.Client  // Optional custom HTTP client
}

// NewClient creates a new GymStack API client.
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		token:      cfg.Token,
		limiter:    rate.NewLimiter(rate.Limit(10), 5),
	}
}

// SetToken sets the bearer token for authenticated requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	return c.token
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// doRequest performs an HTTP request and decodes the response into result.
// Status codes >= 400 are mapped to *APIError.
func (c *Client) doRequest(ctx context.Context, method, path string, body, result interface{}) error {
	raw, err := c.doRaw(ctx, method, path, body)
	if err != nil {
		return err
	}
	if result != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

// doRaw performs an HTTP request and returns the raw response body.
func (c *Client) doRaw(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// one performs a request whose response is a single entity, unwrapping a
// {"data": {...}} envelope when the API uses one.
func one[T any](ctx context.Context, c *Client, method, path string, body interface{}) (*T, error) {
	raw, err := c.doRaw(ctx, method, path, body)
	if err != nil {
		return nil, err
	}
	var out T
	if len(raw) == 0 {
		return &out, nil
	}
	if err := json.Unmarshal(unwrapEnvelope(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return &out, nil
}

// listOf performs a GET whose response is a collection, normalizing the
// API's envelope variants before decoding.
func listOf[T any](ctx context.Context, c *Client, path string) ([]T, *PageMeta, error) {
	raw, err := c.doRaw(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, nil, err
	}
	items, meta, err := normalizeList(raw)
	if err != nil {
		return nil, nil, err
	}
	var result []T
	if err := json.Unmarshal(items, &result); err != nil {
		return nil, nil, fmt.Errorf("failed to parse list response: %w", err)
	}
	return result, meta, nil
}

// Members returns the member management service.
func (c *Client) Members() *MembersService {
	return &MembersService{client: c}
}

// Trainers returns the trainer management service.
func (c *Client) Trainers() *TrainersService {
	return &TrainersService{client: c}
}

// Activities returns the activity management service.
func (c *Client) Activities() *ActivitiesService {
	return &ActivitiesService{client: c}
}

// Equipment returns the equipment inventory service.
func (c *Client) Equipment() *EquipmentService {
	return &EquipmentService{client: c}
}

// Memberships returns the plan and subscription service.
func (c *Client) Memberships() *MembershipsService {
	return &MembershipsService{client: c}
}

// Bookings returns the booking service.
func (c *Client) Bookings() *BookingsService {
	return &BookingsService{client: c}
}

// Settings returns the gym settings service.
func (c *Client) Settings() *SettingsService {
	return &SettingsService{client: c}
}
