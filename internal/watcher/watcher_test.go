package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/videosummary/pkg/logger"
)

func TestIsMediaFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"in/talk.mp4", true},
		{"in/TALK.MP3", true},
		{"in/memo.wav", true},
		{"in/clip.m4v", true},
		{"in/movie.mkv", false},
		{"in/notes.txt", false},
		{"in/.partial.mp4", false},
		{"in/noext", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := isMediaFile(tt.path); got != tt.want {
				t.Errorf("isMediaFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestSemaphore(t *testing.T) {
	s := newSemaphore(1)
	ctx := context.Background()

	if err := s.acquire(ctx); err != nil {
		t.Fatal(err)
	}
	if s.inUse() != 1 {
		t.Errorf("inUse() = %d, want 1", s.inUse())
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := s.acquire(cancelled); !errors.Is(err, context.Canceled) {
		t.Errorf("acquire() on full semaphore = %v, want context.Canceled", err)
	}

	s.release()
	if s.inUse() != 0 {
		t.Errorf("inUse() = %d, want 0", s.inUse())
	}
}

func TestStartHandlesExistingAndNewFiles(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "old.mp3")
	if err := os.WriteFile(existing, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	var mu sync.Mutex
	handled := make(map[string]int)
	done := make(chan string, 10)
	handler := func(ctx context.Context, path string) error {
		mu.Lock()
		handled[path]++
		mu.Unlock()
		done <- path
		return nil
	}

	w, err := New(dir, handler, logger.NewNop(), 2)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()
	w.(*implWatcher).settle = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- w.Start(ctx) }()

	waitFor(t, done, existing)

	created := filepath.Join(dir, "new.mp4")
	if err := os.WriteFile(created, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, done, created)

	cancel()
	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Start() = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Start() did not return after cancel")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(handled) != 2 || handled[existing] != 1 || handled[created] != 1 {
		t.Errorf("handled = %v", handled)
	}
}

func TestStartHandlesSameNameDroppedAgain(t *testing.T) {
	dir := t.TempDir()
	archived := t.TempDir()

	var mu sync.Mutex
	handled := 0
	done := make(chan string, 10)
	handler := func(ctx context.Context, path string) error {
		if err := os.Rename(path, filepath.Join(archived, filepath.Base(path))); err != nil {
			t.Errorf("archive %s: %v", path, err)
		}
		mu.Lock()
		handled++
		mu.Unlock()
		done <- path
		return nil
	}

	w, err := New(dir, handler, logger.NewNop(), 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer w.Stop()
	impl := w.(*implWatcher)
	impl.settle = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	talk := filepath.Join(dir, "talk.mp4")
	for round := 1; round <= 2; round++ {
		if err := os.WriteFile(talk, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		waitFor(t, done, talk)
		waitIdle(t, impl)
	}

	mu.Lock()
	defer mu.Unlock()
	if handled != 2 {
		t.Errorf("handled = %d, want 2", handled)
	}
	if _, err := os.Stat(talk); !os.IsNotExist(err) {
		t.Errorf("talk.mp4 still in input dir: %v", err)
	}
}

// waitIdle waits until no handler holds a slot, which happens after the
// handled path has been released for re-dispatch.
func waitIdle(t *testing.T, w *implWatcher) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for w.semaphore.inUse() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for handlers to finish")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func waitFor(t *testing.T, done <-chan string, want string) {
	t.Helper()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case got := <-done:
			if got == want {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %s", want)
		}
	}
}
