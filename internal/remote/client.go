package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"github.com/sarkaridakiya/dakiya/internal/logger"
	"github.com/sarkaridakiya/dakiya/internal/utils"
)

// TokenSource supplies the current bearer token. An empty string means
// no token is held and the request goes out unauthenticated.
type TokenSource interface {
	AccessToken() string
}

// Client talks to the external government-jobs REST service.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  logger.Logger
}

// New creates a jobs-API client. A cookie jar is always attached so
// cookie-based auth keeps working as a fallback next to bearer tokens.
func New(baseURL string, timeout time.Duration, tokens TokenSource, log logger.Logger) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		tokens: tokens,
		logger: log,
	}
}

// do issues one request and returns the status plus the raw body.
// A non-2xx status is returned as a *StatusError carrying the body
// text; transport failures come back unwrapped.
func (c *Client) do(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode %s %s payload: %w", method, path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer utils.Close(resp.Body)

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("remote call rejected",
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status", resp.StatusCode))
		return resp.StatusCode, data, &StatusError{Status: resp.StatusCode, Body: string(data)}
	}

	return resp.StatusCode, data, nil
}
