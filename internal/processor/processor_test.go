package processor

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/videosummary/internal/config"
	"github.com/nguyentantai21042004/videosummary/internal/report"
	"github.com/nguyentantai21042004/videosummary/internal/tracker"
	"github.com/nguyentantai21042004/videosummary/pkg/logger"
	"github.com/nguyentantai21042004/videosummary/pkg/videosummary"
)

type call struct {
	workflow string
	source   string
	opts     int
	deadline bool
}

type fakeClient struct {
	mu     sync.Mutex
	calls  []call
	result *videosummary.Result
	err    error
}

func (f *fakeClient) record(ctx context.Context, workflow, source string, opts []videosummary.RequestOption) (*videosummary.Result, error) {
	_, hasDeadline := ctx.Deadline()
	f.mu.Lock()
	f.calls = append(f.calls, call{workflow: workflow, source: source, opts: len(opts), deadline: hasDeadline})
	f.mu.Unlock()
	return f.result, f.err
}

func (f *fakeClient) ResolveInput(string) (*videosummary.Input, error) { return nil, nil }
func (f *fakeClient) UploadLocalFile(context.Context, string, videosummary.Kind) (*videosummary.UploadTicket, error) {
	return nil, nil
}
func (f *fakeClient) Submit(context.Context, string, interface{}) (json.RawMessage, error) {
	return nil, nil
}
func (f *fakeClient) PollUntilComplete(context.Context, string) (*videosummary.Job, error) {
	return nil, nil
}
func (f *fakeClient) FetchSubResource(context.Context, string) (json.RawMessage, error) {
	return nil, nil
}
func (f *fakeClient) Transcribe(ctx context.Context, s string, o ...videosummary.RequestOption) (*videosummary.Result, error) {
	return f.record(ctx, "transcribe", s, o)
}
func (f *fakeClient) Chapter(ctx context.Context, s string, o ...videosummary.RequestOption) (*videosummary.Result, error) {
	return f.record(ctx, "chapter", s, o)
}
func (f *fakeClient) Summarize(ctx context.Context, s string, o ...videosummary.RequestOption) (*videosummary.Result, error) {
	return f.record(ctx, "summarize", s, o)
}
func (f *fakeClient) SummarizeAndChapter(ctx context.Context, s string, o ...videosummary.RequestOption) (*videosummary.Result, error) {
	return f.record(ctx, "summarize_and_chapter", s, o)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg := &config.Config{
		API: config.APIConfig{Key: "sk-test"},
		Paths: config.PathsConfig{
			Input:    filepath.Join(root, "input"),
			Output:   filepath.Join(root, "output"),
			Archived: filepath.Join(root, "archived"),
		},
	}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(cfg.Paths.Input, 0755); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestRunWorkflow(t *testing.T) {
	fc := &fakeClient{result: &videosummary.Result{FileID: "f"}}
	ctx := context.Background()

	for _, kind := range []string{"transcribe", "chapter", "summarize", "summarize_and_chapter"} {
		t.Run(kind, func(t *testing.T) {
			if _, err := RunWorkflow(ctx, fc, kind, "https://example.com/a.mp4"); err != nil {
				t.Fatalf("RunWorkflow() error = %v", err)
			}
			last := fc.calls[len(fc.calls)-1]
			if last.workflow != kind {
				t.Errorf("called %q, want %q", last.workflow, kind)
			}
		})
	}

	if _, err := RunWorkflow(ctx, fc, "translate", "x"); err == nil {
		t.Error("RunWorkflow() should reject unknown workflow")
	}
}

func TestProcess(t *testing.T) {
	cfg := testConfig(t)
	cfg.Workflow.Kind = config.WorkflowSummarize
	cfg.Workflow.CallbackURL = "https://hooks.example.com/vs"
	cfg.API.PollTimeout = time.Minute

	media := filepath.Join(cfg.Paths.Input, "talk.mp4")
	if err := os.WriteFile(media, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}

	fc := &fakeClient{result: &videosummary.Result{FileID: "f1", Summary: json.RawMessage(`"short"`)}}
	tr := tracker.New(nil)
	log := logger.NewNop()
	p := New(cfg, fc, report.New(cfg.Paths.Output, cfg.Output.Formats, log), tr, log).(*implProcessor)
	p.newID = func() string { return "sub-1" }

	if err := p.Process(context.Background(), media); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if len(fc.calls) != 1 {
		t.Fatalf("calls = %d, want 1", len(fc.calls))
	}
	c := fc.calls[0]
	if c.workflow != "summarize" || c.source != media || c.opts != 2 || !c.deadline {
		t.Errorf("call = %+v", c)
	}

	if _, err := os.Stat(filepath.Join(cfg.Paths.Output, "talk.json")); err != nil {
		t.Errorf("output not written: %v", err)
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.Archived, "talk.mp4")); err != nil {
		t.Errorf("source not archived: %v", err)
	}
	if _, err := os.Stat(media); !os.IsNotExist(err) {
		t.Errorf("source still in input dir: %v", err)
	}

	job, ok := tr.Get("sub-1")
	if !ok {
		t.Fatal("job not tracked")
	}
	if job.Status != tracker.StatusCompleted || job.FileID != "f1" || len(job.Outputs) != 1 {
		t.Errorf("job = %+v", job)
	}
}

func TestProcessFailure(t *testing.T) {
	cfg := testConfig(t)
	media := filepath.Join(cfg.Paths.Input, "bad.wav")
	if err := os.WriteFile(media, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	wantErr := &videosummary.JobFailedError{FileID: "f2", Reason: "no audio"}
	fc := &fakeClient{err: wantErr}
	tr := tracker.New(nil)
	log := logger.NewNop()
	p := New(cfg, fc, report.New(cfg.Paths.Output, cfg.Output.Formats, log), tr, log).(*implProcessor)
	p.newID = func() string { return "sub-2" }

	err := p.Process(context.Background(), media)
	var failed *videosummary.JobFailedError
	if !errors.As(err, &failed) {
		t.Fatalf("Process() error = %v, want *JobFailedError", err)
	}

	job, _ := tr.Get("sub-2")
	if job.Status != tracker.StatusFailed || job.Error == "" {
		t.Errorf("job = %+v", job)
	}
	if fc.calls[0].deadline {
		t.Error("no poll timeout configured, context should have no deadline")
	}
	if _, err := os.Stat(media); err != nil {
		t.Errorf("failed source should stay in place: %v", err)
	}
}
