package server

import (
	"context"
	"net/http"
)

// Server exposes pipeline status and receives service callbacks over HTTP.
type Server interface {
	Handler() http.Handler
	// Start serves until ctx is cancelled, then shuts down gracefully.
	Start(ctx context.Context) error
}
