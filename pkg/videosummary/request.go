package videosummary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	transcribePath = "/v1/transcribe"
	summaryPath    = "/v1/summary"
)

func uploadTicketPath(kind Kind) string {
	return "/v1/auto/upload/" + url.PathEscape(string(kind))
}

func jobStatusPath(fileID string) string {
	return fmt.Sprintf("/v1/auto/file/%s?id=%s", url.PathEscape(fileID), url.QueryEscape(fileID))
}

// newRequest builds a request against the API. Paths starting with "/" are
// resolved against the base URL; anything else is used as an absolute URL.
func (c *implClient) newRequest(ctx context.Context, method, path string, body io.Reader, authenticated bool) (*http.Request, error) {
	target := path
	if strings.HasPrefix(path, "/") {
		target = c.baseURL + path
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	if authenticated {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	return req, nil
}

// do executes req, turns non-2xx responses into *HTTPError and decodes the
// body into v when v is non-nil.
func (c *implClient) do(req *http.Request, v interface{}) error {
	c.logger.Debug(req.Context(), "%s %s", req.Method, redact(req.URL))

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &HTTPError{
			Method:     req.Method,
			URL:        redact(req.URL),
			StatusCode: res.StatusCode,
			Body:       string(body),
		}
	}

	if v == nil {
		return nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode response from %s: %w", redact(req.URL), err)
	}
	return nil
}

func (c *implClient) getJSON(ctx context.Context, path string, v interface{}) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, true)
	if err != nil {
		return err
	}
	return c.do(req, v)
}

// Submit posts payload to path with bearer authentication
func (c *implClient) Submit(ctx context.Context, path string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(body), true)
	if err != nil {
		return nil, err
	}

	var out json.RawMessage
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// redact drops the query string, which carries signatures on pre-signed URLs.
func redact(u *url.URL) string {
	cp := *u
	cp.RawQuery = ""
	cp.User = nil
	return cp.String()
}
