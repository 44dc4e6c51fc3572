package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/videosummary/internal/config"
	"github.com/nguyentantai21042004/videosummary/internal/processor"
	"github.com/nguyentantai21042004/videosummary/pkg/logger"
	"github.com/nguyentantai21042004/videosummary/pkg/videosummary"
)

const usage = `Usage: videosummary [flags] <file-or-url>

Runs one workflow against the Video Summary API and prints the result as JSON.
The API key is read from the config file or VIDEOSUMMARY_API_KEY.

Flags:
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("videosummary", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	var (
		workflow    = fs.String("workflow", config.WorkflowSummarizeAndChapter, "transcribe, chapter, summarize or summarize_and_chapter")
		id          = fs.String("id", "", "caller-chosen submission id")
		callback    = fs.String("callback", "", "URL the service notifies when the job finishes")
		configPath  = fs.String("config", "", "optional YAML config file")
		baseURL     = fs.String("base-url", "", "override the API endpoint")
		pollTimeout = fs.Duration("poll-timeout", 0, "give up waiting after this long (0 waits forever)")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	if !config.ValidWorkflow(*workflow) {
		fmt.Fprintf(stderr, "unknown workflow %q\n", *workflow)
		return 2
	}

	cfg, err := config.LoadClient(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if *baseURL != "" {
		cfg.API.BaseURL = *baseURL
	}
	if *pollTimeout > 0 {
		cfg.API.PollTimeout = *pollTimeout
	}

	log := logger.NewWithWriter(stderr, cfg.Logging.Level, cfg.Logging.Format)

	client, err := videosummary.New(videosummary.Config{
		APIKey:       cfg.API.Key,
		BaseURL:      cfg.API.BaseURL,
		HTTPClient:   &http.Client{Timeout: cfg.API.Timeout},
		PollInterval: cfg.API.PollInterval,
		Logger:       log,
	})
	if err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	var opts []videosummary.RequestOption
	if *id != "" {
		opts = append(opts, videosummary.WithID(*id))
	}
	if *callback != "" {
		opts = append(opts, videosummary.WithCallbackURL(*callback))
	}

	if cfg.API.PollTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.API.PollTimeout)
		defer cancel()
	}

	start := time.Now()
	res, err := processor.RunWorkflow(ctx, client, *workflow, fs.Arg(0), opts...)
	if err != nil {
		fmt.Fprintf(stderr, "%s failed: %v\n", *workflow, err)
		return exitCode(err)
	}
	log.Debug(ctx, "%s finished in %s", *workflow, time.Since(start))

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "encode result: %v\n", err)
		return 1
	}
	fmt.Fprintln(stdout, string(out))
	return 0
}

// exitCode separates caller mistakes from service failures.
func exitCode(err error) int {
	var (
		notFound    *videosummary.NotFoundError
		unsupported *videosummary.UnsupportedKindError
		failed      *videosummary.JobFailedError
	)
	switch {
	case errors.As(err, &notFound), errors.As(err, &unsupported):
		return 2
	case errors.As(err, &failed):
		return 3
	default:
		return 1
	}
}
