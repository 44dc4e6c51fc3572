package processor

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/videosummary/internal/config"
	"github.com/nguyentantai21042004/videosummary/pkg/videosummary"
)

// RunWorkflow runs the named workflow on source
func RunWorkflow(ctx context.Context, c videosummary.Client, kind, source string, opts ...videosummary.RequestOption) (*videosummary.Result, error) {
	switch kind {
	case config.WorkflowTranscribe:
		return c.Transcribe(ctx, source, opts...)
	case config.WorkflowChapter:
		return c.Chapter(ctx, source, opts...)
	case config.WorkflowSummarize:
		return c.Summarize(ctx, source, opts...)
	case config.WorkflowSummarizeAndChapter:
		return c.SummarizeAndChapter(ctx, source, opts...)
	default:
		return nil, fmt.Errorf("unknown workflow %q", kind)
	}
}

func newSubmissionID() string {
	return uuid.NewString()
}
