package videosummary

import (
	"context"
	"encoding/json"
)

// Client talks to the video summary service. A Client holds only read-only
// credentials and is safe for concurrent use.
type Client interface {
	// ResolveInput classifies source as an external URL or a local media file.
	// It never touches the network.
	ResolveInput(source string) (*Input, error)
	// UploadLocalFile obtains an upload ticket for kind and streams the file to it.
	UploadLocalFile(ctx context.Context, path string, kind Kind) (*UploadTicket, error)
	// Submit POSTs payload as JSON to an API path and returns the raw response.
	Submit(ctx context.Context, path string, payload interface{}) (json.RawMessage, error)
	// PollUntilComplete blocks until the job completes or fails, or ctx is done.
	PollUntilComplete(ctx context.Context, fileID string) (*Job, error)
	// FetchSubResource downloads a pre-signed JSON document. An empty url yields nil.
	FetchSubResource(ctx context.Context, url string) (json.RawMessage, error)

	Transcribe(ctx context.Context, source string, opts ...RequestOption) (*Result, error)
	Chapter(ctx context.Context, source string, opts ...RequestOption) (*Result, error)
	Summarize(ctx context.Context, source string, opts ...RequestOption) (*Result, error)
	SummarizeAndChapter(ctx context.Context, source string, opts ...RequestOption) (*Result, error)
}
