package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/nguyentantai21042004/videosummary/internal/tracker"
	"github.com/nguyentantai21042004/videosummary/pkg/logger"
)

type implServer struct {
	addr     string
	tracker  tracker.Tracker
	logger   logger.Logger
	router   *chi.Mux
	upgrader websocket.Upgrader

	// streams is cancelled on shutdown; hijacked websocket connections are
	// not tracked by http.Server.Shutdown.
	streams     context.Context
	stopStreams context.CancelFunc
}

// New creates a Server listening on addr
func New(addr string, tr tracker.Tracker, log logger.Logger) Server {
	s := &implServer{
		addr:    addr,
		tracker: tr,
		logger:  log,
		router:  chi.NewRouter(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.streams, s.stopStreams = context.WithCancel(context.Background())
	s.registerRoutes()
	return s
}
