// Package botapi is the typed client for the remote demo/document/pricing bot
// platform. Every endpoint the widget consumes has one method here and one
// adapter in adapters.go that turns its payload into canonical types.
package botapi

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
)

const maxErrorBody = 512

// Identity is attached to every call that runs on behalf of a visitor.
type Identity struct {
	BotID     string
	SessionID string
	VisitorID string
}

func (id Identity) query() url.Values {
	q := url.Values{}
	if id.BotID != "" {
		q.Set("bot_id", id.BotID)
	}
	if id.SessionID != "" {
		q.Set("session_id", id.SessionID)
	}
	if id.VisitorID != "" {
		q.Set("visitor_id", id.VisitorID)
	}
	return q
}

// DefaultTimeout bounds calls when NewClient gets no timeout.
const DefaultTimeout = 15 * time.Second

// Client talks to the bot platform. The timeout bounds each call through its
// context; /demo-hal is the exception and runs under the caller's context
// only, so the ask timeout decides when a question gives up.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates a platform client with a per-call timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		timeout:    timeout,
	}
}

// NewClientWithHTTP lets callers supply their own transport. No per-call
// timeout is added; the http.Client and the caller's context decide.
func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// BaseURL returns the platform root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope carries the fields shared by the platform's {ok: ...} responses.
type envelope struct {
	OK      *bool  `json:"ok"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, c.timeout, http.MethodGet, path, query, nil, "", out)
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, c.timeout, http.MethodPost, path, nil, body, "", out)
}

// do runs one call. A positive limit caps it on top of ctx.
func (c *Client) do(ctx context.Context, limit time.Duration, method, path string, query url.Values, body any, bearer string, out any) error {
	if limit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, limit)
		defer cancel()
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s request: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("create %s request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s response: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Endpoint: path, StatusCode: resp.StatusCode, Body: truncate(string(raw), maxErrorBody)}
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.OK != nil && !*env.OK {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		return &APIError{Endpoint: path, StatusCode: resp.StatusCode, Body: msg, NotOK: true}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s response: %w", path, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
