package common

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Server      ServerConfig   `toml:"server"`
	Logging     LoggingConfig  `toml:"logging"`
	Storage     StorageConfig  `toml:"storage"`
	Gemini      GeminiConfig   `toml:"gemini"`
	Claude      ClaudeConfig   `toml:"claude"`
	LLM         LLMConfig      `toml:"llm"`
	YouTube     YouTubeConfig  `toml:"youtube"`
	Pipeline    PipelineConfig `toml:"pipeline"`
	Audit       AuditConfig    `toml:"audit"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gt=0,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"`
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// GeminiConfig contains Google Gemini API settings
type GeminiConfig struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	Timeout string `toml:"timeout"` // e.g. "90s" - per-call streaming budget
}

// ClaudeConfig contains Anthropic Claude API settings
type ClaudeConfig struct {
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	Timeout   string `toml:"timeout"`
	MaxTokens int    `toml:"max_tokens"`
}

// LLMConfig contains provider-agnostic generation settings
type LLMConfig struct {
	DefaultProvider string  `toml:"default_provider" validate:"oneof=gemini claude"`
	Temperature     float32 `toml:"temperature" validate:"gte=0,lte=2"`
}

// YouTubeConfig contains YouTube Data API and oEmbed settings
type YouTubeConfig struct {
	APIKey            string  `toml:"api_key"`
	RequestTimeout    string  `toml:"request_timeout"`     // Video API calls are single-digit seconds
	RequestsPerSecond float64 `toml:"requests_per_second"` // Rate limit for outbound API calls
	SearchMaxResults  int     `toml:"search_max_results" validate:"gt=0,lte=50"`
	ValidationWorkers int     `toml:"validation_workers" validate:"gt=0,lte=16"`
}

// PipelineConfig bounds the course synthesis pipeline
type PipelineConfig struct {
	MinInputChars         int      `toml:"min_input_chars" validate:"gt=0"`      // Inputs below this are rejected before any external call
	WindowSize            int      `toml:"window_size" validate:"gte=1000"`      // Character window for chunked generation
	WindowThreshold       int      `toml:"window_threshold" validate:"gte=1000"` // Inputs above this use windowed quiz generation
	MaxWindowsInFlight    int      `toml:"max_windows_in_flight" validate:"gt=0,lte=16"`
	AnalysisBatchSize     int      `toml:"analysis_batch_size" validate:"gt=0,lte=10"`
	GenerateTimeout       string   `toml:"generate_timeout"` // Course structure calls
	AnalysisTimeout       string   `toml:"analysis_timeout"` // Per-chunk semantic calls
	AlignmentTimeout      string   `toml:"alignment_timeout"`
	MaxResourcesPerLesson int      `toml:"max_resources_per_lesson" validate:"gt=0"`
	VerifiedSources       []string `toml:"verified_sources"` // Hosts that earn a scoring bonus
}

// AuditConfig controls the LLM call audit trail
type AuditConfig struct {
	Enabled       bool   `toml:"enabled"`
	LogPrompts    bool   `toml:"log_prompts"` // Include prompt text in audit entries
	Retention     string `toml:"retention"`   // Entries older than this are swept
	SweepSchedule string `toml:"sweep_schedule"`
}

// DefaultConfig returns a Config populated with sensible defaults.
// File values, env overrides and CLI flags are layered on top.
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data/doceo",
			},
		},
		Gemini: GeminiConfig{
			Model:   "gemini-2.0-flash",
			Timeout: "90s",
		},
		Claude: ClaudeConfig{
			Model:     "claude-sonnet-4-20250514",
			Timeout:   "90s",
			MaxTokens: 8192,
		},
		LLM: LLMConfig{
			DefaultProvider: "gemini",
			Temperature:     0.4,
		},
		YouTube: YouTubeConfig{
			RequestTimeout:    "5s",
			RequestsPerSecond: 4,
			SearchMaxResults:  5,
			ValidationWorkers: 4,
		},
		Pipeline: PipelineConfig{
			MinInputChars:         100,
			WindowSize:            8000,
			WindowThreshold:       30000,
			MaxWindowsInFlight:    4,
			AnalysisBatchSize:     3,
			GenerateTimeout:       "120s",
			AnalysisTimeout:       "60s",
			AlignmentTimeout:      "45s",
			MaxResourcesPerLesson: 5,
			VerifiedSources: []string{
				"developer.mozilla.org",
				"docs.python.org",
				"go.dev",
				"khanacademy.org",
				"ocw.mit.edu",
			},
		},
		Audit: AuditConfig{
			Enabled:       true,
			Retention:     "168h",
			SweepSchedule: "0 * * * *",
		},
	}
}

// LoadFromFiles loads configuration by layering: defaults -> file1 -> file2 -> ... -> env.
// Later files override earlier ones. Missing files are an error; an empty path list
// returns defaults with env overrides applied.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := DefaultConfig()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies DOCEO_* environment variables over file values.
// Env vars sit between config files and CLI flags in priority.
func applyEnvOverrides(config *Config) {
	if v := os.Getenv("DOCEO_SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("DOCEO_SERVER_HOST"); v != "" {
		config.Server.Host = v
	}
	if v := os.Getenv("DOCEO_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("DOCEO_GEMINI_API_KEY"); v != "" {
		config.Gemini.APIKey = v
	}
	if v := os.Getenv("DOCEO_CLAUDE_API_KEY"); v != "" {
		config.Claude.APIKey = v
	}
	if v := os.Getenv("DOCEO_YOUTUBE_API_KEY"); v != "" {
		config.YouTube.APIKey = v
	}
	if v := os.Getenv("DOCEO_BADGER_PATH"); v != "" {
		config.Storage.Badger.Path = v
	}
}

// ApplyFlagOverrides applies command-line flag values (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks structural constraints on the configuration
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
