package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/videosummary/internal/tracker"
	"github.com/nguyentantai21042004/videosummary/pkg/videosummary"
)

// Process submits one media file to the service, writes the result and
// archives the source
func (p *implProcessor) Process(ctx context.Context, mediaPath string) error {
	startTime := time.Now()
	name := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	id := p.newID()
	kind := p.cfg.Workflow.Kind

	p.tracker.Create(id, mediaPath, kind)
	p.logger.Info(ctx, "Starting %s for %s (submission %s)", kind, mediaPath, id)

	p.tracker.Update(id, func(j *tracker.Job) { j.Status = tracker.StatusProcessing })

	// Step 1: Run the workflow against the service
	res, err := p.run(ctx, id, kind, mediaPath)
	if err != nil {
		p.fail(id, err)
		return fmt.Errorf("%s: %w", kind, err)
	}

	// Step 2: Write outputs
	outputs, err := p.writer.Write(ctx, name, res)
	if err != nil {
		p.fail(id, err)
		return fmt.Errorf("write outputs: %w", err)
	}

	// Step 3: Move original to archived folder
	if err := p.moveToArchived(ctx, mediaPath); err != nil {
		p.logger.Warn(ctx, "Failed to move original to archived folder: %v", err)
	}

	p.tracker.Update(id, func(j *tracker.Job) {
		j.Status = tracker.StatusCompleted
		j.FileID = res.FileID
		j.Outputs = outputs
	})

	p.logger.Info(ctx, "Processing completed: %s (file %s) in %s", mediaPath, res.FileID, time.Since(startTime))
	if res.IsRaw() {
		p.logger.Warn(ctx, "Service returned an unrecognised response for %s; wrote it as-is", mediaPath)
	}
	return nil
}

func (p *implProcessor) run(ctx context.Context, id, kind, mediaPath string) (*videosummary.Result, error) {
	if p.cfg.API.PollTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.API.PollTimeout)
		defer cancel()
	}

	opts := []videosummary.RequestOption{videosummary.WithID(id)}
	if cb := p.cfg.CallbackURL(id); cb != "" {
		opts = append(opts, videosummary.WithCallbackURL(cb))
	}

	return RunWorkflow(ctx, p.client, kind, mediaPath, opts...)
}

func (p *implProcessor) fail(id string, err error) {
	p.tracker.Update(id, func(j *tracker.Job) {
		j.Status = tracker.StatusFailed
		j.Error = err.Error()
	})
}
