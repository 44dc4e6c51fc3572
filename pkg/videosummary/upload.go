package videosummary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
)

// UploadLocalFile requests an upload ticket for kind, PUTs the file to the
// ticket's upload URL and returns the ticket. The file handle is closed once
// the request finishes, whatever the outcome.
func (c *implClient) UploadLocalFile(ctx context.Context, path string, kind Kind) (*UploadTicket, error) {
	var ticket ticketResponse
	if err := c.getJSON(ctx, uploadTicketPath(kind), &ticket); err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			return nil, &UploadError{Kind: kind, StatusCode: httpErr.StatusCode, Reason: "request upload ticket", Err: err}
		}
		return nil, &UploadError{Kind: kind, Reason: "request upload ticket", Err: err}
	}

	if present(ticket.Error) {
		return nil, &UploadError{Kind: kind, Reason: rawText(ticket.Error)}
	}
	if ticket.Upload == nil || ticket.Upload.UploadURL == "" {
		return nil, &UploadError{Kind: kind, Reason: "upload ticket has no upload URL"}
	}
	if ticket.Upload.PublicURL == "" {
		return nil, &UploadError{Kind: kind, Reason: "upload ticket has no public URL"}
	}

	if err := c.put(ctx, path, kind, ticket.Upload.UploadURL); err != nil {
		return nil, err
	}

	c.logger.Info(ctx, "Uploaded %s as %s", path, kind)
	return ticket.Upload, nil
}

func (c *implClient) put(ctx context.Context, path string, kind Kind, uploadURL string) error {
	f, err := os.Open(path)
	if err != nil {
		return &UploadError{Kind: kind, Reason: "open file", Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return &UploadError{Kind: kind, Reason: "stat file", Err: err}
	}

	req, err := c.newRequest(ctx, http.MethodPut, uploadURL, f, false)
	if err != nil {
		return &UploadError{Kind: kind, Reason: "build upload request", Err: err}
	}
	req.ContentLength = info.Size()
	req.Header.Set("Content-Type", string(kind))

	res, err := c.httpClient.Do(req)
	if err != nil {
		return &UploadError{Kind: kind, Reason: "send file", Err: err}
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return &UploadError{Kind: kind, StatusCode: res.StatusCode, Reason: fmt.Sprintf("PUT %s", redact(req.URL))}
	}
	return nil
}
