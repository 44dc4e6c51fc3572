package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	envAPIKey  = "VIDEOSUMMARY_API_KEY"
	envBaseURL = "VIDEOSUMMARY_BASE_URL"
)

type Config struct {
	API         APIConfig         `yaml:"api"`
	Workflow    WorkflowConfig    `yaml:"workflow"`
	Paths       PathsConfig       `yaml:"paths"`
	Output      OutputConfig      `yaml:"output"`
	Logging     LoggingConfig     `yaml:"logging"`
	Performance PerformanceConfig `yaml:"performance"`
	Server      ServerConfig      `yaml:"server"`
}

type APIConfig struct {
	Key          string        `yaml:"key"`
	BaseURL      string        `yaml:"base_url"`
	Timeout      time.Duration `yaml:"timeout"`
	PollInterval time.Duration `yaml:"poll_interval"`
	// PollTimeout bounds a single job wait. Zero waits forever.
	PollTimeout time.Duration `yaml:"poll_timeout"`
}

type WorkflowConfig struct {
	Kind        string `yaml:"kind"`
	CallbackURL string `yaml:"callback_url"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
}

type OutputConfig struct {
	Formats []string `yaml:"formats"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	// PublicURL is how the service reaches this server for callbacks.
	PublicURL string `yaml:"public_url"`
}

// Workflow kinds
const (
	WorkflowTranscribe          = "transcribe"
	WorkflowChapter             = "chapter"
	WorkflowSummarize           = "summarize"
	WorkflowSummarizeAndChapter = "summarize_and_chapter"
)

// Output formats
const (
	FormatJSON = "json"
	FormatDOCX = "docx"
)

// Load reads a YAML config file, expands ${VAR} references, applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg, err := read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// LoadClient is Load for callers that only talk to the API. An empty path
// builds the config from the environment alone.
func LoadClient(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		var err error
		if cfg, err = read(path); err != nil {
			return nil, err
		}
	} else {
		cfg.ApplyEnv()
	}
	if err := cfg.ValidateAPI(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func read(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.ApplyEnv()
	return &cfg, nil
}

// ApplyEnv lets VIDEOSUMMARY_API_KEY and VIDEOSUMMARY_BASE_URL override the file
func (c *Config) ApplyEnv() {
	if v := os.Getenv(envAPIKey); v != "" {
		c.API.Key = v
	}
	if v := os.Getenv(envBaseURL); v != "" {
		c.API.BaseURL = v
	}
}

// ValidateAPI checks only what a one-shot client needs
func (c *Config) ValidateAPI() error {
	if c.API.Key == "" {
		return fmt.Errorf("api.key is required (or set %s)", envAPIKey)
	}
	if c.API.PollInterval < 0 || c.API.PollTimeout < 0 || c.API.Timeout < 0 {
		return fmt.Errorf("api durations must not be negative")
	}

	if c.API.BaseURL == "" {
		c.API.BaseURL = "https://api.videosummary.io"
	}
	if c.API.PollInterval == 0 {
		c.API.PollInterval = 3 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	return nil
}

func (c *Config) Validate() error {
	if err := c.ValidateAPI(); err != nil {
		return err
	}
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Workflow.Kind == "" {
		c.Workflow.Kind = WorkflowSummarizeAndChapter
	}
	if !ValidWorkflow(c.Workflow.Kind) {
		return fmt.Errorf("workflow.kind %q is not one of %s", c.Workflow.Kind,
			strings.Join([]string{WorkflowTranscribe, WorkflowChapter, WorkflowSummarize, WorkflowSummarizeAndChapter}, ", "))
	}

	if len(c.Output.Formats) == 0 {
		c.Output.Formats = []string{FormatJSON}
	}
	for i, f := range c.Output.Formats {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != FormatJSON && f != FormatDOCX {
			return fmt.Errorf("output.formats: unknown format %q", f)
		}
		c.Output.Formats[i] = f
	}

	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}

	return nil
}

// ValidWorkflow reports whether kind names a known workflow
func ValidWorkflow(kind string) bool {
	switch kind {
	case WorkflowTranscribe, WorkflowChapter, WorkflowSummarize, WorkflowSummarizeAndChapter:
		return true
	}
	return false
}

// CallbackURL returns the callback address for a submission, preferring the
// status server's callback endpoint when it is reachable from outside.
func (c *Config) CallbackURL(submissionID string) string {
	if c.Server.Enabled && c.Server.PublicURL != "" {
		return strings.TrimRight(c.Server.PublicURL, "/") + "/callback/" + submissionID
	}
	return c.Workflow.CallbackURL
}
