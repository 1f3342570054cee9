// Package api is the HTTP client for the community service.
package api

import (
	"bytes"
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

	"github.com/rs/zerolog"
)

// UserIDHeader carries the caller's local identity
const UserIDHeader = "X-User-Id"

// ErrNotFound is returned for 404 responses
var ErrNotFound = errors.New("not found")

// StatusError is returned for any other non-2xx response
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Message)
}

// Client talks to the chat, news and profile resources
type Client struct {
	baseURL    string
	userID     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new API client. userID is sent with every request
// and may be empty.
func NewClient(baseURL, userID string, timeout time.Duration, logger zerolog.Logger) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		userID:  userID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With().Str("component", "api").Logger(),
	}

	c.logger.Debug().
		Str("base_url", c.baseURL).
		Msg("API client initialized")

	return c
}

// ListMessages returns all chat messages, oldest first
func (c *Client) ListMessages(ctx context.Context) ([]Message, error) {
	var resp messagesResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/chat", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// PostMessage sends a chat message
func (c *Client) PostMessage(ctx context.Context, req PostMessageRequest) (*Message, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/chat", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Message, nil
}

// DeleteMessage deletes a chat message by id
func (c *Client) DeleteMessage(ctx context.Context, id uint) error {
	q := url.Values{"id": {strconv.FormatUint(uint64(id), 10)}}
	return c.do(ctx, http.MethodDelete, "/api/v1/chat", q, nil, nil)
}

// ListNews returns all news posts, newest first
func (c *Client) ListNews(ctx context.Context) ([]NewsPost, error) {
	var resp newsListResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/news", nil, nil, &resp); err != nil {
		return nil, err
	}
	return resp.News, nil
}

// GetNews returns a single post
func (c *Client) GetNews(ctx context.Context, id uint) (*NewsPost, error) {
	q := url.Values{"id": {strconv.FormatUint(uint64(id), 10)}}
	var resp newsResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/news", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.News, nil
}

// CreateNews publishes a post
func (c *Client) CreateNews(ctx context.Context, req CreateNewsRequest) (*NewsPost, error) {
	var resp newsResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/news", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.News, nil
}

// GetProfile returns the profile for userID or ErrNotFound
func (c *Client) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	q := url.Values{"user_id": {userID}}
	var resp profileResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/profile", q, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Profile, nil
}

// SaveProfile creates or updates a profile
func (c *Client) SaveProfile(ctx context.Context, req SaveProfileRequest) (*Profile, error) {
	var resp profileResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/profile", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Profile, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userID != "" {
		req.Header.Set(UserIDHeader, c.userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug().Err(err).
			Str("method", method).
			Str("path", path).
			Msg("Request failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&e)
		c.logger.Warn().
			Int("status_code", resp.StatusCode).
			Str("method", method).
			Str("path", path).
			Str("error", e.Error).
			Msg("Unexpected status code from service")
		return &StatusError{Code: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
