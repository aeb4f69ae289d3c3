// Package httpapi is the JSON boundary to the study backend. Every failure
// leaving this package is an *apperrors.APIError.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	apperrors "studyhub/internal/platform/errors"
	"studyhub/internal/platform/id"
)

const maxErrorBody = 64 << 10

// TokenSource returns the bearer token for the active session, or "" when
// signed out.
type TokenSource func() string

// UnauthorizedHook runs after any 401 response, whichever call produced it.
type UnauthorizedHook func(ctx context.Context)

type Client struct {
	baseURL string
	http    *http.Client
	logger  hclog.Logger
	ids     id.Generator

	mu             sync.RWMutex
	token          TokenSource
	onUnauthorized UnauthorizedHook
}

func New(baseURL string, timeout time.Duration, logger hclog.Logger) *Client {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger.Named("http"),
		ids:     id.UUID{},
	}
}

func (c *Client) SetTokenSource(src TokenSource) {
	c.mu.Lock()
	c.token = src
	c.mu.Unlock()
}

func (c *Client) OnUnauthorized(hook UnauthorizedHook) {
	c.mu.Lock()
	c.onUnauthorized = hook
	c.mu.Unlock()
}

func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, body, out)
}

// Do sends one request. body is JSON encoded when non-nil; out receives the
// decoded response when non-nil and the response has a body.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &apperrors.APIError{Kind: apperrors.KindUnexpected, Message: "encode request", Err: err}
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &apperrors.APIError{Kind: apperrors.KindUnexpected, Message: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := c.ids.New()
	req.Header.Set("X-Request-Id", requestID)
	if token := c.currentToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return &apperrors.APIError{Kind: apperrors.KindNetwork, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := decodeError(resp.StatusCode, raw)
		c.logger.Debug("request rejected", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)
		if resp.StatusCode == http.StatusUnauthorized {
			c.unauthorized(ctx)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &apperrors.APIError{Kind: apperrors.KindNetwork, Status: resp.StatusCode, Err: err}
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &apperrors.APIError{Kind: apperrors.KindUnexpected, Status: resp.StatusCode, Message: "decode response", Err: err}
	}
	return nil
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	src := c.token
	c.mu.RUnlock()
	if src == nil {
		return ""
	}
	return src()
}

func (c *Client) unauthorized(ctx context.Context) {
	c.mu.RLock()
	hook := c.onUnauthorized
	c.mu.RUnlock()
	if hook != nil {
		hook(ctx)
	}
}

type errorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		DefaultMessage string `json:"defaultMessage"`
		Message        string `json:"message"`
	} `json:"errors"`
}

func decodeError(status int, raw []byte) *apperrors.APIError {
	apiErr := &apperrors.APIError{Kind: apperrors.KindForStatus(status), Status: status}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return apiErr
	}
	var decoded errorBody
	if err := json.Unmarshal(trimmed, &decoded); err == nil {
		apiErr.Message = strings.TrimSpace(decoded.Message)
		for _, e := range decoded.Errors {
			msg := e.DefaultMessage
			if msg == "" {
				msg = e.Message
			}
			if msg = strings.TrimSpace(msg); msg != "" {
				apiErr.Fields = append(apiErr.Fields, msg)
			}
		}
		return apiErr
	}
	// Plain-text bodies such as "Invalid contentType".
	if trimmed[0] != '{' && trimmed[0] != '[' && trimmed[0] != '<' {
		apiErr.Message = string(trimmed)
	}
	return apiErr
}
