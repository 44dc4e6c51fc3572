package videosummary

import (
	"context"
	"fmt"
)

// PollUntilComplete fetches the job status every poll interval until the
// service reports an error, a failure reason, or completion. There is no
// attempt limit; cancel ctx to stop waiting.
func (c *implClient) PollUntilComplete(ctx context.Context, fileID string) (*Job, error) {
	path := jobStatusPath(fileID)

	for attempt := 1; ; attempt++ {
		var env jobEnvelope
		if err := c.getJSON(ctx, path, &env); err != nil {
			return nil, fmt.Errorf("poll job %s: %w", fileID, err)
		}

		var job *Job
		if env.File != nil {
			job = env.File.job()
			if job.ID == "" {
				job.ID = fileID
			}
		}

		if truthy(env.Error) {
			return job, &JobFailedError{FileID: fileID, Reason: rawText(env.Error)}
		}
		if job != nil && job.FailedReason != "" {
			return job, &JobFailedError{FileID: fileID, Reason: job.FailedReason}
		}
		if job != nil && job.Complete {
			c.logger.Debug(ctx, "Job %s complete after %d polls", fileID, attempt)
			return job, nil
		}

		c.logger.Debug(ctx, "Job %s pending (poll %d), retrying in %s", fileID, attempt, c.pollInterval)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-c.clock.After(c.pollInterval):
		}
	}
}
