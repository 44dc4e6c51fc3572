package videosummary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// FetchSubResource GETs a pre-signed URL without credentials and returns the
// JSON body.
func (c *implClient) FetchSubResource(ctx context.Context, url string) (json.RawMessage, error) {
	if url == "" {
		return nil, nil
	}

	req, err := c.newRequest(ctx, http.MethodGet, url, nil, false)
	if err != nil {
		return nil, err
	}

	var out json.RawMessage
	if err := c.do(req, &out); err != nil {
		return nil, fmt.Errorf("fetch sub-resource: %w", err)
	}
	return out, nil
}
