// Package client is the console's only path to the UGC Engine backend.
// Every failure it returns is a *Error carrying a message that can be shown
// to a user as-is.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Error is the single error type surfaced by the client. Callers never see
// HTTP status codes, only Message.
type Error struct {
	Message string
	err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.err }

// Message extracts the user-facing text from any error returned by Client.
func Message(err error) string {
	var cerr *Error
	if errors.As(err, &cerr) {
		return cerr.Message
	}
	return err.Error()
}

// Client issues JSON requests against a configured backend base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// New creates a Client with no client-level timeout. Callers bound
// requests with their context.
func New(baseURL string) *Client {
	return NewWithHTTPClient(baseURL, &http.Client{})
}

func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		httpClient: hc,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Do sends one request to path (relative to the base URL). A non-nil body is
// JSON-encoded; out, when non-nil, receives the decoded 2xx response.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	method = strings.ToUpper(method)

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Message: fmt.Sprintf("could not encode request: %v", err), err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Message: fmt.Sprintf("could not build request: %v", err), err: err}
	}
	if method != http.MethodGet && method != http.MethodDelete {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Message: fmt.Sprintf("request failed: %v", err), err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Message: errorMessage(resp)}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return &Error{Message: fmt.Sprintf("invalid response from %s: %v", path, err), err: err}
	}
	return nil
}

// errorMessage prefers the backend's {"detail": "..."} and falls back to the
// status text when the body is missing, unparsable or has no detail.
func errorMessage(resp *http.Response) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil && len(payload.Detail) > 0 {
		var detail string
		if err := json.Unmarshal(payload.Detail, &detail); err == nil {
			if detail != "" {
				return detail
			}
		} else if string(payload.Detail) != "null" {
			// FastAPI validation errors put a list of objects in detail.
			return string(payload.Detail)
		}
	}
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	return fmt.Sprintf("API error: %d", resp.StatusCode)
}
