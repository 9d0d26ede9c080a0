package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/MimeLyc/transcript-downloader/internal/failure"
	"github.com/MimeLyc/transcript-downloader/internal/transcript"
	"github.com/MimeLyc/transcript-downloader/pkg/log"
)

// Config holds all application configuration
// Supports environment variables with sensible defaults
//
// Environment Variables:
// Transcript API:
// - TRANSCRIPT_API_KEY: bearer credential for the transcript service (required)
// - TRANSCRIPT_API_URL: endpoint URL (default: https://transcriptapi.com/api/v2/youtube/transcript)
// - TRANSCRIPT_FORMAT: json or text (default: json)
// - TRANSCRIPT_INCLUDE_TIMESTAMP: request per-segment offsets (default: true)
// - TRANSCRIPT_SEND_METADATA: request title and channel (default: true)
// - TRANSCRIPT_MAX_RETRIES: attempts per reference (default: 3)
// - TRANSCRIPT_TIMEOUT: per-attempt timeout in seconds (default: 30)
//
// Batch:
// - INPUT_FILE: reference list, one per line (default: list.txt)
// - OUTPUT_ROOT: parent of the timestamped output directory (default: .)
// - REQUEST_DELAY_MS: pause between references (default: 500)
// - LANGUAGE_DETECT: guess the language when the service omits it (default: false)
//
// System:
// - LOG_LEVEL: debug, info, warn, error (default: info)
// - CRON_EXPR: re-run the batch on this schedule; empty runs once (default: empty)
type Config struct {
	Transcript TranscriptConfig `json:"transcript"`
	Batch      BatchConfig      `json:"batch"`
	System     SystemConfig     `json:"system"`
}

// TranscriptConfig holds the configuration for the transcript client
type TranscriptConfig struct {
	APIKey           string            `json:"-"`
	APIURL           string            `json:"api_url"`
	Format           transcript.Format `json:"format"`
	IncludeTimestamp bool              `json:"include_timestamp"`
	SendMetadata     bool              `json:"send_metadata"`
	MaxRetries       int               `json:"max_retries"`
	Timeout          int               `json:"timeout"`
}

// BatchConfig holds the configuration for a download run
type BatchConfig struct {
	InputFile      string `json:"input_file"`
	OutputRoot     string `json:"output_root"`
	RequestDelayMS int    `json:"request_delay_ms"`
	DetectLanguage bool   `json:"detect_language"`
}

// SystemConfig holds the system configuration
type SystemConfig struct {
	LogLevel string `json:"log_level"`
	CronExpr string `json:"cron_expr"`
}

// Option is a function type for configuring Config
type Option func(*Config)

// WithInputFile overrides INPUT_FILE, e.g. from a command-line argument.
func WithInputFile(path string) Option {
	return func(c *Config) {
		if strings.TrimSpace(path) != "" {
			c.Batch.InputFile = path
		}
	}
}

// NewFromEnv creates a new Config instance with values from environment variables and options
func NewFromEnv(opts ...Option) (*Config, error) {
	config := &Config{
		Transcript: TranscriptConfig{
			APIKey:           strings.TrimSpace(getEnvString("TRANSCRIPT_API_KEY", "")),
			APIURL:           getEnvString("TRANSCRIPT_API_URL", transcript.DefaultBaseURL),
			Format:           transcript.Format(getEnvString("TRANSCRIPT_FORMAT", string(transcript.FormatJSON))),
			IncludeTimestamp: getEnvBool("TRANSCRIPT_INCLUDE_TIMESTAMP", true),
			SendMetadata:     getEnvBool("TRANSCRIPT_SEND_METADATA", true),
			MaxRetries:       getEnvInt("TRANSCRIPT_MAX_RETRIES", transcript.DefaultMaxRetries),
			Timeout:          getEnvInt("TRANSCRIPT_TIMEOUT", int(transcript.DefaultTimeout/time.Second)),
		},
		Batch: BatchConfig{
			InputFile:      getEnvString("INPUT_FILE", "list.txt"),
			OutputRoot:     getEnvString("OUTPUT_ROOT", "."),
			RequestDelayMS: getEnvInt("REQUEST_DELAY_MS", 500),
			DetectLanguage: getEnvBool("LANGUAGE_DETECT", false),
		},
		System: SystemConfig{
			LogLevel: getEnvString("LOG_LEVEL", "info"),
			CronExpr: getEnvString("CRON_EXPR", ""),
		},
	}

	for _, opt := range opts {
		opt(config)
	}

	log.Debug("Config: %s", config)

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// String renders the config without the API key.
func (c *Config) String() string {
	key := "<unset>"
	if c.Transcript.APIKey != "" {
		key = "<redacted>"
	}
	return fmt.Sprintf("{api_key=%s api_url=%s format=%s include_timestamp=%t send_metadata=%t max_retries=%d timeout=%ds input=%s output_root=%s delay=%dms detect_language=%t cron=%q}",
		key, c.Transcript.APIURL, c.Transcript.Format, c.Transcript.IncludeTimestamp, c.Transcript.SendMetadata,
		c.Transcript.MaxRetries, c.Transcript.Timeout, c.Batch.InputFile, c.Batch.OutputRoot,
		c.Batch.RequestDelayMS, c.Batch.DetectLanguage, c.System.CronExpr)
}

// validate checks if all required configuration is properly set
func (c *Config) validate() error {
	if c.Transcript.APIKey == "" {
		return failure.New(failure.Config, "TRANSCRIPT_API_KEY is required")
	}
	if _, err := transcript.ParseFormat(string(c.Transcript.Format)); err != nil {
		return failure.Wrap(err, failure.Config, "invalid TRANSCRIPT_FORMAT")
	}
	if c.Transcript.MaxRetries < 1 {
		return failure.New(failure.Config, "TRANSCRIPT_MAX_RETRIES must be greater than 0")
	}
	if c.Transcript.Timeout < 1 {
		return failure.New(failure.Config, "TRANSCRIPT_TIMEOUT must be greater than 0")
	}
	if c.Batch.RequestDelayMS < 0 {
		return failure.New(failure.Config, "REQUEST_DELAY_MS must not be negative")
	}
	if strings.TrimSpace(c.Batch.InputFile) == "" {
		return failure.New(failure.Config, "INPUT_FILE is required")
	}
	if c.System.CronExpr != "" {
		if _, err := cron.ParseStandard(c.System.CronExpr); err != nil {
			return failure.Wrap(err, failure.Config, "invalid CRON_EXPR")
		}
	}
	return nil
}

// ClientConfig converts the transcript section for transcript.NewClient.
func (c *Config) ClientConfig() transcript.Config {
	return transcript.Config{
		APIKey:     c.Transcript.APIKey,
		BaseURL:    c.Transcript.APIURL,
		MaxRetries: c.Transcript.MaxRetries,
		Timeout:    time.Duration(c.Transcript.Timeout) * time.Second,
	}
}

// FetchOptions returns the per-request options sent to the service.
func (c *Config) FetchOptions() transcript.Options {
	return transcript.Options{
		Format:           c.Transcript.Format,
		IncludeTimestamp: c.Transcript.IncludeTimestamp,
		SendMetadata:     c.Transcript.SendMetadata,
	}
}

// RequestDelay is the pause inserted between references.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.Batch.RequestDelayMS) * time.Millisecond
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets a boolean value from environment variables with default
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
