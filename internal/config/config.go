// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

// Defaults applied by Default and MergeWithDefaults.
const (
	DefaultPort          = 8080
	DefaultAITimeout     = 30 * time.Second
	DefaultMaxInputBytes = 1 << 20
	DefaultLogFormat     = "text"
)

// Config is loaded from a JSON or YAML file and overlaid with environment variables.
// All fields are optional.
type Config struct {
	Port           int      `json:"port,omitempty" yaml:"port,omitempty"`
	DatabaseURL    string   `json:"database_url,omitempty" yaml:"database_url,omitempty"`
	APIKey         string   `json:"api_key,omitempty" yaml:"api_key,omitempty"`       // Gemini API key for AI refinement
	Model          string   `json:"model,omitempty" yaml:"model,omitempty"`           // Overrides the default Gemini model
	AITimeout      string   `json:"ai_timeout,omitempty" yaml:"ai_timeout,omitempty"` // Go duration, e.g. "30s"
	MaxInputBytes  int      `json:"max_input_bytes,omitempty" yaml:"max_input_bytes,omitempty"`
	UseBrowser     bool     `json:"use_browser,omitempty" yaml:"use_browser,omitempty"` // Render JavaScript job pages
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty"`
	LogFormat      string   `json:"log_format,omitempty" yaml:"log_format,omitempty"` // "text" or "json"
	Verbose        bool     `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:          DefaultPort,
		AITimeout:     DefaultAITimeout.String(),
		MaxInputBytes: DefaultMaxInputBytes,
		LogFormat:     DefaultLogFormat,
	}
}

// LoadConfig loads configuration from a file. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}
	return &cfg, nil
}

// ApplyEnv overlays environment variables read through getenv onto the config.
// Unset or malformed numeric variables are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("GEMINI_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := getenv("LLM_MODEL"); v != "" {
		c.Model = v
	}
	if v := getenv("AI_TIMEOUT"); v != "" {
		c.AITimeout = v
	}
	if v := getenv("LOG_FORMAT"); v != "" {
		c.LogFormat = strings.ToLower(v)
	}
	if n, err := strconv.Atoi(getenv("PORT")); err == nil {
		c.Port = n
	}
	if n, err := strconv.Atoi(getenv("MAX_INPUT_BYTES")); err == nil {
		c.MaxInputBytes = n
	}
	if origins := getenv("ALLOWED_ORIGINS"); origins != "" {
		c.AllowedOrigins = splitList(origins)
	}
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxInputBytes < 0 {
		return fmt.Errorf("config error: 'max_input_bytes' must be non-negative")
	}
	if c.AITimeout != "" {
		d, err := time.ParseDuration(c.AITimeout)
		if err != nil {
			return fmt.Errorf("config error: invalid 'ai_timeout': %w", err)
		}
		if d <= 0 {
			return fmt.Errorf("config error: 'ai_timeout' must be positive")
		}
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("config error: 'log_format' must be \"text\" or \"json\"")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
// Bool fields are never merged since false cannot be told apart from unset.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.AITimeout == "" {
		result.AITimeout = defaults.AITimeout
	}
	if result.MaxInputBytes == 0 {
		result.MaxInputBytes = defaults.MaxInputBytes
	}
	if len(result.AllowedOrigins) == 0 {
		result.AllowedOrigins = defaults.AllowedOrigins
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	return result
}

// Timeout returns the AI refinement timeout, DefaultAITimeout when unset or invalid.
func (c *Config) Timeout() time.Duration {
	if d, err := time.ParseDuration(c.AITimeout); err == nil && d > 0 {
		return d
	}
	return DefaultAITimeout
}

// Load reads the optional file at path, overlays the environment, fills
// defaults, and validates the result.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv(getenv)

	merged := cfg.MergeWithDefaults(Default())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
