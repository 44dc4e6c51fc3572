package tracker

import (
	"encoding/json"
	"time"
)

// Status is the lifecycle state of a submission.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Job is a snapshot of one submission.
type Job struct {
	ID           string          `json:"id"`
	Source       string          `json:"source"`
	Workflow     string          `json:"workflow"`
	Status       Status          `json:"status"`
	FileID       string          `json:"file_id,omitempty"`
	Error        string          `json:"error,omitempty"`
	Outputs      []string        `json:"outputs,omitempty"`
	Callbacks    int             `json:"callbacks"`
	LastCallback json.RawMessage `json:"last_callback,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Event is published whenever a job changes.
type Event struct {
	ID      string    `json:"id"`
	Status  Status    `json:"status"`
	FileID  string    `json:"file_id,omitempty"`
	Error   string    `json:"error,omitempty"`
	Message string    `json:"message,omitempty"`
	Time    time.Time `json:"time"`
}
