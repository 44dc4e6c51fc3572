package processor

import (
	"github.com/nguyentantai21042004/videosummary/internal/config"
	"github.com/nguyentantai21042004/videosummary/internal/report"
	"github.com/nguyentantai21042004/videosummary/internal/tracker"
	"github.com/nguyentantai21042004/videosummary/pkg/logger"
	"github.com/nguyentantai21042004/videosummary/pkg/videosummary"
)

type implProcessor struct {
	cfg     *config.Config
	client  videosummary.Client
	writer  report.Writer
	tracker tracker.Tracker
	logger  logger.Logger
	newID   func() string
}

// New creates a new Processor instance
func New(cfg *config.Config, client videosummary.Client, writer report.Writer, tr tracker.Tracker, log logger.Logger) Processor {
	return &implProcessor{
		cfg:     cfg,
		client:  client,
		writer:  writer,
		tracker: tr,
		logger:  log,
		newID:   newSubmissionID,
	}
}
