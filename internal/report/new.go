package report

import (
	"github.com/nguyentantai21042004/videosummary/pkg/logger"
)

type implWriter struct {
	outputDir string
	formats   []string
	logger    logger.Logger
}

// New creates a Writer producing the given formats ("json", "docx") in outputDir
func New(outputDir string, formats []string, log logger.Logger) Writer {
	return &implWriter{
		outputDir: outputDir,
		formats:   formats,
		logger:    log,
	}
}
