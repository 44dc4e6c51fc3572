package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/videosummary/pkg/logger"
)

var supportedFormats = []string{".mp4", ".m4v", ".mp3", ".wav"}

type implWatcher struct {
	inputDir      string
	handler       EventHandler
	logger        logger.Logger
	watcher       *fsnotify.Watcher
	maxConcurrent int
	semaphore     *semaphore
	settle        time.Duration
	wg            sync.WaitGroup

	mu   sync.Mutex
	seen map[string]struct{}
}

// Start handles media files already in the input directory, then monitors it
// for new ones until ctx is cancelled.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d). Monitoring: %s", w.maxConcurrent, w.inputDir)
	w.logger.Info(ctx, "Supported formats: %s", strings.Join(supportedFormats, ", "))

	existing, err := w.existingFiles()
	if err != nil {
		return fmt.Errorf("scan input dir: %w", err)
	}
	for _, path := range existing {
		w.logger.Info(ctx, "Found existing media: %s", path)
		if err := w.dispatch(ctx, path); err != nil {
			return w.drain(ctx, err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			return w.drain(ctx, ctx.Err())

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Only process CREATE events
			if !event.Has(fsnotify.Create) {
				continue
			}
			if !isMediaFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-media file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New media detected: %s", event.Name)

			// Small delay to ensure file is fully written
			select {
			case <-time.After(w.settle):
			case <-ctx.Done():
				return w.drain(ctx, ctx.Err())
			}

			if err := w.dispatch(ctx, event.Name); err != nil {
				return w.drain(ctx, err)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// dispatch runs the handler in a goroutine once a semaphore slot is free.
// A path already being handled is skipped.
func (w *implWatcher) dispatch(ctx context.Context, filePath string) error {
	w.mu.Lock()
	if _, dup := w.seen[filePath]; dup {
		w.mu.Unlock()
		return nil
	}
	w.seen[filePath] = struct{}{}
	w.mu.Unlock()

	// Acquire semaphore slot (blocks if max concurrent reached)
	if err := w.semaphore.acquire(ctx); err != nil {
		w.forget(filePath)
		return err
	}
	w.logger.Debug(ctx, "Dispatching %s (%d/%d slots in use)", filePath, w.semaphore.inUse(), w.maxConcurrent)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer w.semaphore.release()
		// The source is archived once handled, so the same name can be dropped again.
		defer w.forget(filePath)

		if err := w.handler(ctx, filePath); err != nil {
			w.logger.Error(ctx, "Failed to process %s: %v", filePath, err)
		}
	}()
	return nil
}

func (w *implWatcher) forget(filePath string) {
	w.mu.Lock()
	delete(w.seen, filePath)
	w.mu.Unlock()
}

func (w *implWatcher) drain(ctx context.Context, err error) error {
	w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
	w.wg.Wait()
	w.logger.Info(ctx, "File watcher stopped")
	return err
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) existingFiles() ([]string, error) {
	entries, err := os.ReadDir(w.inputDir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(w.inputDir, e.Name())
		if isMediaFile(path) {
			files = append(files, path)
		}
	}

	sort.Strings(files)
	return files, nil
}

// isMediaFile checks if the file has an extension the service accepts
func isMediaFile(path string) bool {
	if strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	ext := strings.ToLower(filepath.Ext(path))

	for _, format := range supportedFormats {
		if ext == format {
			return true
		}
	}

	return false
}
