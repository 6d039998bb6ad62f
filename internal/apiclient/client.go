// Package apiclient is the single chokepoint for all HTTP calls against the
// GHP-SASCE REST API. Entity service clients never touch the network
// directly; they funnel every request through Client.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"sasce-admin/internal/domain"
)

const defaultTimeout = 30 * time.Second

// Authorizer supplies the bearer token for outgoing requests and is told
// when the server rejects it. The session store implements this; on a 401
// it tears the session down so every surface sees the logout.
type Authorizer interface {
	Token() string
	SessionExpired()
}

// Client performs HTTP requests against the API base URL. One network call
// per logical operation; no automatic retries — the server's transactions
// are not guaranteed idempotent.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Auth       Authorizer
}

// NewClient creates a client for the given base URL. auth may be nil for
// unauthenticated use (the login call itself).
func NewClient(baseURL string, auth Authorizer) *Client {
	return &Client{
		BaseURL:    strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: defaultTimeout},
		Auth:       auth,
	}
}

// WithoutAuth returns a copy of the client that attaches no bearer token.
// The login exchange uses it: a credential rejection must not be confused
// with the expiry of a session the caller may already hold.
func (c *Client) WithoutAuth() *Client {
	return &Client{BaseURL: c.BaseURL, HTTPClient: c.HTTPClient}
}

// Do executes a request and returns the raw response. body is JSON-encoded
// unless it is a *MultipartForm, which is passed through unmodified with
// its own content type (file uploads must not be re-serialized).
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body any) (*http.Response, error) {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	contentType := ""
	switch b := body.(type) {
	case nil:
	case *MultipartForm:
		encoded, ct, err := b.Encode()
		if err != nil {
			return nil, fmt.Errorf("encode multipart body: %w", err)
		}
		reader = encoded
		contentType = ct
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.Auth != nil {
		if token := c.Auth.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

// JSON executes a request and decodes the JSON response into out when out
// is non-nil and the response carries a JSON body. Non-success statuses are
// converted by CheckError before decoding is attempted.
func (c *Client) JSON(ctx context.Context, method, path string, query url.Values, body, out any) error {
	resp, err := c.Do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	if err := c.checkError(resp); err != nil {
		return err
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if !isJSON(resp.Header.Get("Content-Type")) {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Get issues a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.JSON(ctx, http.MethodGet, path, query, nil, out)
}

// Post issues a POST request with the given body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.JSON(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues a PUT request with the given body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.JSON(ctx, http.MethodPut, path, nil, body, out)
}

// Patch issues a PATCH request with the given body (usually nil for the
// activar/desactivar toggles).
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.JSON(ctx, http.MethodPatch, path, nil, body, out)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.JSON(ctx, http.MethodDelete, path, nil, nil, out)
}

// checkError converts non-2xx responses into errors. A 401 on a request
// that carried a bearer token tears down the session through the Authorizer
// so the application forces navigation back to the login entry point; a
// rejected unauthenticated request (the login exchange) has no session to
// expire and surfaces as an ordinary API error. 403, 404 and 409 map onto
// the typed domain errors with the server's message kept verbatim.
func (c *Client) checkError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	msg := errorMessage(resp)

	switch resp.StatusCode {
	case http.StatusUnauthorized:
		if sentBearer(resp.Request) {
			if c.Auth != nil {
				c.Auth.SessionExpired()
			}
			return fmt.Errorf("%s: %w", msg, ErrSessionExpired)
		}
	case http.StatusForbidden:
		return domain.ErrAccessDenied("%s", msg)
	case http.StatusNotFound:
		return domain.ErrNotFound("%s", msg)
	case http.StatusConflict:
		return domain.ErrConflict("%s", msg)
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

func sentBearer(req *http.Request) bool {
	return req != nil && req.Header.Get("Authorization") != ""
}

// errorMessage extracts the user-displayable message from an error body
// ({message} or {error}), falling back to "Error {status}".
func errorMessage(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(data) > 0 {
		var body struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if jsonErr := json.Unmarshal(data, &body); jsonErr == nil {
			if body.Message != "" {
				return body.Message
			}
			if body.Error != "" {
				return body.Error
			}
		}
	}
	return fmt.Sprintf("Error %d", resp.StatusCode)
}

func isJSON(contentType string) bool {
	if contentType == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
