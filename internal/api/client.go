// Package api is the single point of contact with the tracker backend. All
// requests flow through one primitive that injects the stored bearer token
// and converts authentication failures into a session-invalidation event.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/bugdeck/internal/credstore"
)

// Client talks to the tracker REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	creds      credstore.Store
	logger     *slog.Logger

	mu             sync.Mutex
	onUnauthorized func()
}

// NewClient creates a tracker API client. The credential store is consulted
// before every request; requests go out unauthenticated when it is empty.
func NewClient(baseURL string, creds credstore.Store, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		creds:      creds,
		logger:     logger,
	}
}

// SetUnauthorizedHandler registers the callback invoked whenever the backend
// answers 401. The handler runs after the credential store has been cleared.
func (c *Client) SetUnauthorizedHandler(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = fn
}

func (c *Client) unauthorizedHandler() func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.onUnauthorized
}

// do executes one request against the backend. Non-2xx responses come back
// as *APIError; nothing is retried.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if pair, ok, err := c.creds.Read(ctx); err != nil {
		c.logger.Warn("credential read failed, sending unauthenticated", "error", err)
	} else if ok {
		req.Header.Set("Authorization", "Bearer "+pair.Access)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidate(ctx, method, path)
		return newAPIError(resp.StatusCode, respBody)
	}
	if resp.StatusCode >= 400 {
		return newAPIError(resp.StatusCode, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}
	return nil
}

// invalidate clears stored credentials and notifies the registered handler.
// Runs once per 401 response, whichever endpoint produced it.
func (c *Client) invalidate(ctx context.Context, method, path string) {
	c.logger.Info("authentication expired", "method", method, "path", path)
	if err := c.creds.Clear(ctx); err != nil {
		c.logger.Error("failed to clear credentials", "error", err)
	}
	if fn := c.unauthorizedHandler(); fn != nil {
		fn()
	}
}
