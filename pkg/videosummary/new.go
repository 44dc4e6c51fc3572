package videosummary

import (
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/videosummary/pkg/clock"
	"github.com/nguyentantai21042004/videosummary/pkg/logger"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.videosummary.io"
	// DefaultPollInterval is the fixed delay between job status requests.
	DefaultPollInterval = 3 * time.Second

	placeholderAPIKey = "your_api_key"
)

// Config holds the credentials and collaborators of a Client. Only APIKey is
// required.
type Config struct {
	APIKey string
	// BaseURL defaults to DefaultBaseURL
	BaseURL string
	// HTTPClient is optional and will default to http.DefaultClient
	HTTPClient *http.Client
	// Clock drives the poll loop. Defaults to the wall clock.
	Clock clock.Clock
	// Logger defaults to a no-op logger
	Logger       logger.Logger
	PollInterval time.Duration
}

type implClient struct {
	apiKey       string
	baseURL      string
	httpClient   *http.Client
	clock        clock.Clock
	logger       logger.Logger
	pollInterval time.Duration
}

// New creates a Client. It fails with *ConfigurationError when the API key
// is empty or still the documentation placeholder.
func New(cfg Config) (Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, &ConfigurationError{Reason: "API key is required"}
	}
	if cfg.APIKey == placeholderAPIKey {
		return nil, &ConfigurationError{Reason: "invalid API key, please provide a valid API key"}
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	return &implClient{
		apiKey:       cfg.APIKey,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:   cfg.HTTPClient,
		clock:        cfg.Clock,
		logger:       cfg.Logger,
		pollInterval: cfg.PollInterval,
	}, nil
}
