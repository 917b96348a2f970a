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
)

// Client wraps HTTP calls to the tax records REST service.
type Client struct {
	baseURL       string
	recordsPath   string
	countriesPath string
	userAgent     string
	httpClient    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithPaths overrides the resource paths for records and countries.
func WithPaths(recordsPath, countriesPath string) Option {
	return func(c *Client) {
		if recordsPath != "" {
			c.recordsPath = "/" + strings.Trim(recordsPath, "/")
		}
		if countriesPath != "" {
			c.countriesPath = "/" + strings.Trim(countriesPath, "/")
		}
	}
}

// WithTimeout sets the HTTP timeout applied to every request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new API client.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		recordsPath:   DefaultRecordsPath,
		countriesPath: DefaultCountriesPath,
		userAgent:     "taxdesk/" + Version,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service root the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do executes an HTTP request and returns the raw response body.
// Any failure to reach the service or a non-2xx status is a *TransportError.
func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	url := c.baseURL + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, StatusCode: resp.StatusCode, Message: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, ok := errorMessage(respBody)
		if !ok {
			msg = strings.TrimSpace(string(respBody))
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &TransportError{Method: method, URL: url, StatusCode: resp.StatusCode, Message: msg}
	}

	return respBody, nil
}

// get performs a GET request.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// put performs a PUT request.
func (c *Client) put(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

// decodeOne decodes a single JSON object. A null body is a decode failure.
func decodeOne[T any](resource string, data []byte) (*T, error) {
	var out *T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &DecodeError{Resource: resource, Err: err}
	}
	if out == nil {
		return nil, &DecodeError{Resource: resource, Err: fmt.Errorf("empty body")}
	}
	return out, nil
}

// decodeList decodes a JSON array. A null body is a decode failure.
func decodeList[T any](resource string, data []byte) ([]T, error) {
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &DecodeError{Resource: resource, Err: err}
	}
	if out == nil {
		return nil, &DecodeError{Resource: resource, Err: fmt.Errorf("expected array, got null")}
	}
	return out, nil
}

// apiErrorBody covers the error shapes the service and proxies in front of
// it answer with: {"error": "..."}, {"error": {"code", "message"}},
// {"message": "..."} and {"detail": "..."}.
type apiErrorBody struct {
	Error   json.RawMessage `json:"error"`
	Code    string          `json:"code"`
	Message json.RawMessage `json:"message"`
	Detail  json.RawMessage `json:"detail"`
}

// errorMessage extracts a readable message from an error response body.
// mockapi.io answers with a bare JSON string such as "Not found".
func errorMessage(body []byte) (string, bool) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return "", false
	}

	var text string
	if err := json.Unmarshal(body, &text); err == nil {
		text = strings.TrimSpace(text)
		return text, text != ""
	}

	var payload apiErrorBody
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", false
	}
	msg, ok := "", false
	for _, raw := range []json.RawMessage{payload.Error, payload.Message, payload.Detail} {
		if msg, ok = errorMessage(raw); ok {
			break
		}
	}
	code := strings.TrimSpace(payload.Code)
	switch {
	case code != "" && ok:
		return code + ": " + msg, true
	case code != "":
		return code, true
	default:
		return msg, ok
	}
}
