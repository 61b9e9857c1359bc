package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MATH_MCP_"

const (
	DefaultServerName      = "MathAnalysisMCP"
	DefaultServerVersion   = "1.0.0"
	DefaultMaxMessageBytes = 1024 * 1024

	minMessageBytes = 1024
	maxMessageBytes = 64 * 1024 * 1024
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// ServerInfo is reported to clients in the initialize result.
type ServerInfo struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// Config defines runtime settings for the math analysis server.
type Config struct {
	Server           ServerInfo `yaml:"server"`
	LogLevel         string     `yaml:"log_level"`
	LogFormat        string     `yaml:"log_format"`
	MaxMessageBytes  int        `yaml:"max_message_bytes"`
	LegacyToolErrors bool       `yaml:"legacy_tool_errors"`
	DisabledTools    []string   `yaml:"disabled_tools"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerInfo{
			Name:    DefaultServerName,
			Version: DefaultServerVersion,
		},
		LogLevel:        "info",
		LogFormat:       "json",
		MaxMessageBytes: DefaultMaxMessageBytes,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), a .env file in the working directory, and MATH_MCP_*
// environment variables, in that order. Variables already set in the
// environment win over .env entries.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// A missing .env is the common case.
	_ = godotenv.Load()

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfigPath returns MATH_MCP_CONFIG, or "" when unset.
func DefaultConfigPath() string {
	return os.Getenv(EnvPrefix + "CONFIG")
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "SERVER_NAME"); ok && v != "" {
		c.Server.Name = v
	}
	if v, ok := lookup(EnvPrefix + "SERVER_VERSION"); ok && v != "" {
		c.Server.Version = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok && v != "" {
		c.LogLevel = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_FORMAT"); ok && v != "" {
		c.LogFormat = v
	}
	if v, ok := lookup(EnvPrefix + "MAX_MESSAGE_BYTES"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sMAX_MESSAGE_BYTES %q is not an integer: %w", EnvPrefix, v, ErrInvalidConfig)
		}
		c.MaxMessageBytes = n
	}
	if v, ok := lookup(EnvPrefix + "LEGACY_TOOL_ERRORS"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sLEGACY_TOOL_ERRORS %q is not a boolean: %w", EnvPrefix, v, ErrInvalidConfig)
		}
		c.LegacyToolErrors = b
	}
	if v, ok := lookup(EnvPrefix + "DISABLED_TOOLS"); ok {
		c.DisabledTools = splitList(v)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks field values and normalizes case on the enumerations.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Name) == "" {
		return fmt.Errorf("server.name must not be empty: %w", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Server.Version) == "" {
		return fmt.Errorf("server.version must not be empty: %w", ErrInvalidConfig)
	}

	c.LogLevel = strings.ToLower(c.LogLevel)
	if _, ok := levels[c.LogLevel]; !ok {
		return fmt.Errorf("unknown log level %q: %w", c.LogLevel, ErrInvalidConfig)
	}

	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("log format must be json or text, got %q: %w", c.LogFormat, ErrInvalidConfig)
	}

	if c.MaxMessageBytes < minMessageBytes || c.MaxMessageBytes > maxMessageBytes {
		return fmt.Errorf("max_message_bytes %d outside %d..%d: %w",
			c.MaxMessageBytes, minMessageBytes, maxMessageBytes, ErrInvalidConfig)
	}
	return nil
}

// ToolDisabled reports whether name appears in DisabledTools.
func (c *Config) ToolDisabled(name string) bool {
	for _, d := range c.DisabledTools {
		if d == name {
			return true
		}
	}
	return false
}
