package videosummary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

type workflow struct {
	name      string
	path      string
	chapter   *bool
	summarize *bool
	// requireTranscript fails the workflow when the finished job has no transcript.
	requireTranscript bool
	// wantChapters and wantSummary select the job fields copied into the Result.
	// The transcript is always included.
	wantChapters bool
	wantSummary  bool
}

var (
	yes = true
	no  = false

	transcribeWorkflow = workflow{
		name:              "transcription",
		path:              transcribePath,
		requireTranscript: true,
	}
	chapterWorkflow = workflow{
		name:         "chapter extraction",
		path:         summaryPath,
		chapter:      &yes,
		summarize:    &no,
		wantChapters: true,
	}
	summarizeWorkflow = workflow{
		name:        "summarization",
		path:        summaryPath,
		chapter:     &no,
		summarize:   &yes,
		wantSummary: true,
	}
	summarizeAndChapterWorkflow = workflow{
		name:         "summarization and chapter extraction",
		path:         summaryPath,
		chapter:      &yes,
		summarize:    &yes,
		wantChapters: true,
		wantSummary:  true,
	}
)

// Transcribe converts the speech in source to text.
func (c *implClient) Transcribe(ctx context.Context, source string, opts ...RequestOption) (*Result, error) {
	return c.run(ctx, transcribeWorkflow, source, opts)
}

// Chapter splits source into chapters.
func (c *implClient) Chapter(ctx context.Context, source string, opts ...RequestOption) (*Result, error) {
	return c.run(ctx, chapterWorkflow, source, opts)
}

// Summarize produces a summary of source.
func (c *implClient) Summarize(ctx context.Context, source string, opts ...RequestOption) (*Result, error) {
	return c.run(ctx, summarizeWorkflow, source, opts)
}

// SummarizeAndChapter produces both a summary and chapters for source.
func (c *implClient) SummarizeAndChapter(ctx context.Context, source string, opts ...RequestOption) (*Result, error) {
	return c.run(ctx, summarizeAndChapterWorkflow, source, opts)
}

type submitResponse struct {
	File *jobRecord `json:"file"`
}

// run resolves and uploads the source, submits the job, waits for it and
// assembles the result from whichever sub-resources the job lists.
func (c *implClient) run(ctx context.Context, w workflow, source string, opts []RequestOption) (*Result, error) {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}

	in, err := c.ResolveInput(source)
	if err != nil {
		return nil, err
	}

	mediaURL := in.URL
	if !in.External {
		ticket, err := c.UploadLocalFile(ctx, in.URL, in.Kind)
		if err != nil {
			return nil, err
		}
		mediaURL = ticket.PublicURL
	}

	payload := submitPayload{
		URL:         mediaURL,
		ExternalURL: in.External,
		Chapter:     w.chapter,
		Summarize:   w.summarize,
		ID:          ro.id,
		Callback:    ro.callbackURL,
		IsYouTube:   in.YouTube,
	}

	raw, err := c.Submit(ctx, w.path, payload)
	if err != nil {
		return nil, fmt.Errorf("submit %s: %w", w.name, err)
	}

	var sub submitResponse
	if err := json.Unmarshal(raw, &sub); err != nil || sub.File == nil {
		c.logger.Warn(ctx, "Submission for %s returned no job record, passing response through", w.name)
		return &Result{Raw: raw}, nil
	}

	fileID := string(sub.File.ID)
	if fileID == "" {
		return nil, fmt.Errorf("submit %s: job record has no id", w.name)
	}
	c.logger.Info(ctx, "Submitted %s job %s", w.name, fileID)

	job, err := c.PollUntilComplete(ctx, fileID)
	if err != nil {
		var failed *JobFailedError
		if errors.As(err, &failed) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", w.name, err)
	}

	return c.assemble(ctx, w, fileID, job)
}

func (c *implClient) assemble(ctx context.Context, w workflow, fileID string, job *Job) (*Result, error) {
	if w.requireTranscript && job.TranscriptURL == "" {
		return nil, fmt.Errorf("unknown error, %s failed: job %s has no transcript", w.name, fileID)
	}

	result := &Result{FileID: fileID}

	transcript, err := c.FetchSubResource(ctx, job.TranscriptURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript: %w", err)
	}
	result.Transcript = transcript

	if w.wantChapters {
		chapters, err := c.FetchSubResource(ctx, job.ChapteringURL)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chapters: %w", err)
		}
		result.Chapters = chapters
	}

	if w.wantSummary {
		result.Summary = job.FinalSummary
	}

	return result, nil
}
