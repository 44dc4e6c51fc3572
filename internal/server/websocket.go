package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/nguyentantai21042004/videosummary/internal/tracker"
)

// events streams tracker events to a websocket client until either side goes away.
func (s *implServer) events(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn(r.Context(), "websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events, unsubscribe := s.tracker.Subscribe()
	defer unsubscribe()

	// Oldest first so a client can replay the snapshot in order.
	jobs := s.tracker.List(defaultJobLimit)
	for i := len(jobs) - 1; i >= 0; i-- {
		if err := conn.WriteJSON(snapshotEvent(jobs[i])); err != nil {
			return
		}
	}

	// The read loop only detects a closed connection; clients send nothing.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			return
		case <-s.streams.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			return
		case evt, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(evt); err != nil {
				return
			}
		}
	}
}

func snapshotEvent(job tracker.Job) tracker.Event {
	return tracker.Event{
		ID:      job.ID,
		Status:  job.Status,
		FileID:  job.FileID,
		Error:   job.Error,
		Message: "snapshot",
		Time:    job.UpdatedAt,
	}
}
