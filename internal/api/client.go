package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/serbanv/pano/internal/logging"
	"github.com/serbanv/pano/internal/models"
)

const requestTimeout = 15 * time.Second

// Client talks to the site backend under <origin>/api. It holds no session
// state; the caller passes the bearer token into each authenticated call.
type Client struct {
	base string
	http *http.Client
	log  logging.Logger
}

// New creates a client for the given API origin (e.g. "http://localhost:3001").
func New(origin string, log logging.Logger) *Client {
	return &Client{
		base: strings.TrimRight(origin, "/") + "/api",
		http: &http.Client{Timeout: requestTimeout},
		log:  log,
	}
}

// Login exchanges the admin password for a bearer token.
func (c *Client) Login(ctx context.Context, password string) (string, error) {
	body := map[string]string{"password": password}

	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", "", body, &out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrAuth, err)
	}
	return out.Token, nil
}

// ListMessages fetches all contact-form messages.
func (c *Client) ListMessages(ctx context.Context, token string) ([]models.Message, error) {
	var out []models.Message
	if err := c.do(ctx, http.MethodGet, "/messages", token, nil, &out); err != nil {
		return nil, fmt.Errorf("%w: messages: %v", ErrFetch, err)
	}
	return out, nil
}

// ListMedia fetches all curated media items.
func (c *Client) ListMedia(ctx context.Context, token string) ([]models.MediaItem, error) {
	var out []models.MediaItem
	if err := c.do(ctx, http.MethodGet, "/media", token, nil, &out); err != nil {
		return nil, fmt.Errorf("%w: media: %v", ErrFetch, err)
	}
	return out, nil
}

// CreateMedia adds a new media item and returns the server's copy.
func (c *Client) CreateMedia(ctx context.Context, token, title, url string) (models.MediaItem, error) {
	body := map[string]string{"title": title, "url": url}

	var out models.MediaItem
	if err := c.do(ctx, http.MethodPost, "/media", token, body, &out); err != nil {
		return models.MediaItem{}, fmt.Errorf("%w: create media: %v", ErrSave, err)
	}
	return out, nil
}

// UpdateMedia replaces the title and URL of an existing media item.
func (c *Client) UpdateMedia(ctx context.Context, token string, id int, title, url string) (models.MediaItem, error) {
	body := map[string]string{"title": title, "url": url}

	var out models.MediaItem
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/media/%d", id), token, body, &out); err != nil {
		return models.MediaItem{}, fmt.Errorf("%w: update media %d: %v", ErrSave, id, err)
	}
	return out, nil
}

// DeleteMedia removes a media item by id.
func (c *Client) DeleteMedia(ctx context.Context, token string, id int) error {
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/media/%d", id), token, nil, nil); err != nil {
		return fmt.Errorf("%w: media %d: %v", ErrDelete, id, err)
	}
	return nil
}

// do runs a single request. No retries: a failed attempt is reported to the
// user, who may re-trigger the action.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", "method", method, "path", path, "request_id", requestID, "err", err)
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		c.log.Warn("unexpected status", "method", method, "path", path, "request_id", requestID, "status", resp.StatusCode)
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	c.log.Debug("request ok", "method", method, "path", path, "request_id", requestID)
	return nil
}
