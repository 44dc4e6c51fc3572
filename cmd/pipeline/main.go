package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/nguyentantai21042004/videosummary/internal/config"
	"github.com/nguyentantai21042004/videosummary/internal/processor"
	"github.com/nguyentantai21042004/videosummary/internal/report"
	"github.com/nguyentantai21042004/videosummary/internal/server"
	"github.com/nguyentantai21042004/videosummary/internal/tracker"
	"github.com/nguyentantai21042004/videosummary/internal/watcher"
	"github.com/nguyentantai21042004/videosummary/pkg/clock"
	"github.com/nguyentantai21042004/videosummary/pkg/logger"
	"github.com/nguyentantai21042004/videosummary/pkg/videosummary"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Video Summary Pipeline")
	log.Info(ctx, "========================================")
	log.Info(ctx, "System: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Info(ctx, "Workflow: %s", cfg.Workflow.Kind)
	log.Info(ctx, "Max Concurrent Submissions: %d", cfg.Performance.MaxConcurrent)
	log.Info(ctx, "Configuration loaded successfully")

	// Verify required directories exist
	if err := ensureDirectories(cfg); err != nil {
		log.Error(ctx, "Failed to create directories: %v", err)
		os.Exit(1)
	}

	// Initialize dependencies
	client, err := videosummary.New(videosummary.Config{
		APIKey:       cfg.API.Key,
		BaseURL:      cfg.API.BaseURL,
		HTTPClient:   &http.Client{Timeout: cfg.API.Timeout},
		PollInterval: cfg.API.PollInterval,
		Logger:       log,
	})
	if err != nil {
		log.Error(ctx, "Failed to create client: %v", err)
		os.Exit(1)
	}

	tr := tracker.New(clock.New())
	writer := report.New(cfg.Paths.Output, cfg.Output.Formats, log)
	proc := processor.New(cfg, client, writer, tr, log)

	// Create watcher with processor as handler and concurrency control
	w, err := watcher.New(cfg.Paths.Input, proc.Process, log, cfg.Performance.MaxConcurrent)
	if err != nil {
		log.Error(ctx, "Failed to create watcher: %v", err)
		os.Exit(1)
	}
	defer w.Stop()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	errChan := make(chan error, 2)

	// Start watcher in goroutine
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errChan <- fmt.Errorf("watcher: %w", err)
		}
	}()

	// Start status server
	serverDone := make(chan struct{})
	if cfg.Server.Enabled {
		srv := server.New(cfg.Server.Addr, tr, log)
		go func() {
			defer close(serverDone)
			if err := srv.Start(ctx); err != nil {
				errChan <- fmt.Errorf("server: %w", err)
			}
		}()
	} else {
		close(serverDone)
	}

	log.Info(ctx, "========================================")
	log.Info(ctx, "Video Summary Pipeline is ready!")
	log.Info(ctx, "Monitoring: %s", cfg.Paths.Input)
	log.Info(ctx, "Output: %s (%v)", cfg.Paths.Output, cfg.Output.Formats)
	log.Info(ctx, "API: %s", cfg.API.BaseURL)
	if cfg.Server.Enabled {
		log.Info(ctx, "Status server: %s", cfg.Server.Addr)
	}
	log.Info(ctx, "")
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Pipeline error: %v", err)
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()
	<-watchDone
	<-serverDone

	log.Info(ctx, "Video Summary Pipeline stopped")
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
