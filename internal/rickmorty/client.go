// Package rickmorty provides a client for the Rick and Morty character API.
package rickmorty

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var (
	// ErrNetwork is returned when no response was received.
	ErrNetwork = errors.New("network error")
	// ErrNotFound is returned when the API has no characters matching the query.
	ErrNotFound = errors.New("no characters found")
	// ErrServer is returned for any other unsuccessful response.
	ErrServer = errors.New("server error")
)

// StatusError carries the HTTP status of an unexpected response.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return "unexpected status: " + e.Status
}

// Unwrap makes StatusError match ErrServer.
func (e *StatusError) Unwrap() error {
	return ErrServer
}

const (
	// DefaultBaseURL is the public character endpoint.
	DefaultBaseURL = "https://rickandmortyapi.com/api/character/"
	userAgent      = "charpick/1.0 (https://github.com/llehouerou/charpick)"

	defaultTimeout = 10 * time.Second
	maxImageBytes  = 4 << 20
)

// Client is a Rick and Morty API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the character endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// New creates a new client.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    DefaultBaseURL,
		userAgent:  userAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured character endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SearchCharacters returns the first page of characters whose name contains name.
func (c *Client) SearchCharacters(ctx context.Context, name string) (*Page, error) {
	reqURL, err := c.searchURL(name)
	if err != nil {
		return nil, err
	}

	resp, err := c.get(ctx, reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w: %w", ErrServer, err)
	}

	return result.toPage(), nil
}

// FetchImage downloads a character portrait.
func (c *Client) FetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	resp, err := c.get(ctx, imageURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return data, nil
}

func (c *Client) searchURL(name string) (string, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	params := u.Query()
	params.Set("name", name)
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// get performs a GET request. Transport failures are wrapped in ErrNetwork,
// except context cancellation which is returned as-is.
func (c *Client) get(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	return resp, nil
}
