package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gorent/pkg/logger"
)

type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the external rental API. It owns no business logic: every
// method is a typed wrapper around one endpoint plus envelope decoding.
type Client struct {
	client *http.Client
	config Config
	log    *logger.Logger
}

func NewClient(cfg Config, log *logger.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		client: &http.Client{
			Transport: &tokenTransport{Base: http.DefaultTransport},
			Timeout:   timeout,
		},
		config: cfg,
		log:    log,
	}
}

type tokenKey struct{}

// WithToken stamps the session's bearer credential onto the context; the
// transport injects it into the Authorization header of every request made
// with that context.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// tokenTransport adds the bearer Authorization header.
type tokenTransport struct {
	Base http.RoundTripper
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token, ok := req.Context().Value(tokenKey{}).(string); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	return t.Base.RoundTrip(req)
}

// envelope is the {success, data|message} wrapper every backend response uses.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

func (e *envelope) errorMessage() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Message
}

// do executes one request and decodes the envelope's data into out (when out
// is non-nil). Failures are classified per the transport/status/envelope/parse
// taxonomy; callers never see a raw *url.Error.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return transportError(err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if c.log != nil {
		c.log.LogBackendCall(method, path, resp.StatusCode, time.Since(started).Milliseconds())
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return statusError(resp.StatusCode, strings.TrimSpace(string(raw)))
		}
		return parseError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError(resp.StatusCode, env.errorMessage())
	}
	if !env.Success {
		return envelopeError(env.errorMessage())
	}

	if out != nil {
		if len(env.Data) == 0 {
			return parseError(fmt.Errorf("missing data field in response"))
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return parseError(err)
		}
	}

	return nil
}
