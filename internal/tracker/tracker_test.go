package tracker

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/nguyentantai21042004/videosummary/pkg/clock"
)

func TestCreateAndUpdate(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clk := clock.NewManaged(start)
	tr := New(clk)

	job := tr.Create("a", "talk.mp4", "summarize")
	if job.Status != StatusQueued || !job.CreatedAt.Equal(start) {
		t.Errorf("Create() = %+v", job)
	}

	clk.WarpForward(time.Minute)
	job, ok := tr.Update("a", func(j *Job) {
		j.Status = StatusCompleted
		j.FileID = "f1"
		j.Outputs = []string{"out/talk.json"}
	})
	if !ok {
		t.Fatal("Update() returned false for known job")
	}
	if job.Status != StatusCompleted || job.FileID != "f1" {
		t.Errorf("Update() = %+v", job)
	}
	if !job.UpdatedAt.Equal(start.Add(time.Minute)) {
		t.Errorf("UpdatedAt = %v", job.UpdatedAt)
	}

	job.Outputs[0] = "mutated"
	got, _ := tr.Get("a")
	if got.Outputs[0] != "out/talk.json" {
		t.Error("Get() returned shared slice")
	}

	if _, ok := tr.Update("missing", func(*Job) {}); ok {
		t.Error("Update() on unknown job returned true")
	}
}

func TestList(t *testing.T) {
	tr := New(nil)
	tr.Create("a", "1.mp4", "transcribe")
	tr.Create("b", "2.mp4", "transcribe")
	tr.Create("c", "3.mp4", "transcribe")

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{"all", 0, []string{"c", "b", "a"}},
		{"limited", 2, []string{"c", "b"}},
		{"over limit", 10, []string{"c", "b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := tr.List(tt.limit)
			if len(jobs) != len(tt.want) {
				t.Fatalf("List() returned %d jobs, want %d", len(jobs), len(tt.want))
			}
			for i, id := range tt.want {
				if jobs[i].ID != id {
					t.Errorf("List()[%d] = %q, want %q", i, jobs[i].ID, id)
				}
			}
		})
	}
}

func TestRecordCallback(t *testing.T) {
	tr := New(nil)
	tr.Create("a", "1.mp4", "chapter")

	job, ok := tr.RecordCallback("a", json.RawMessage(`{"complete":true}`))
	if !ok {
		t.Fatal("RecordCallback() returned false")
	}
	if job.Callbacks != 1 || string(job.LastCallback) != `{"complete":true}` {
		t.Errorf("RecordCallback() = %+v", job)
	}

	if _, ok := tr.RecordCallback("nope", nil); ok {
		t.Error("RecordCallback() on unknown job returned true")
	}
}

func TestSubscribe(t *testing.T) {
	tr := New(nil)
	events, cancel := tr.Subscribe()

	tr.Create("a", "1.mp4", "summarize")
	tr.Update("a", func(j *Job) { j.Status = StatusProcessing })

	for _, want := range []Status{StatusQueued, StatusProcessing} {
		select {
		case evt := <-events:
			if evt.ID != "a" || evt.Status != want {
				t.Errorf("event = %+v, want status %s", evt, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s event", want)
		}
	}

	cancel()
	if _, ok := <-events; ok {
		t.Error("channel still open after cancel")
	}
	cancel()
}
