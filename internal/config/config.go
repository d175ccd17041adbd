// Package config handles reading and validating hireplan.yaml.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hireplan-ai/hireplan/internal/errors"
)

// Config is the top-level structure for hireplan.yaml.
type Config struct {
	Server   ServerConfig    `yaml:"server"`
	Gateways []GatewayConfig `yaml:"gateways"`
	// DefaultGateway names the gateway used by the pipeline.
	// Defaults to the first enabled gateway.
	DefaultGateway string         `yaml:"default_gateway"`
	Pipeline       PipelineConfig `yaml:"pipeline"`
	Log            LogConfig      `yaml:"log"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Address                string `yaml:"address"`
	Port                   string `yaml:"port"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
	ReadTimeoutSeconds     int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds    int    `yaml:"write_timeout_seconds"`
	IdleTimeoutSeconds     int    `yaml:"idle_timeout_seconds"`
}

// GatewayConfig describes one language-model gateway.
type GatewayConfig struct {
	// Name is the gateway identifier ("gemini", "openai", or a custom name)
	Name string `yaml:"name"`
	// Type selects the client implementation; defaults to Name
	Type string `yaml:"type"`
	// APIKey authenticates requests; falls back to <NAME>_API_KEY env var
	APIKey string `yaml:"api_key"`
	// BaseURL overrides the provider's default endpoint
	BaseURL string `yaml:"base_url"`
	// Model is the default model for this gateway
	Model string `yaml:"model"`
	// MaxTokens caps the response length (0 = provider default)
	MaxTokens int `yaml:"max_tokens"`
	// Enabled controls whether this gateway is registered at startup
	Enabled bool `yaml:"enabled"`
}

// PipelineConfig controls plan-generation policy.
type PipelineConfig struct {
	// StepTimeoutMs bounds each gateway call; 0 means the 120s default.
	StepTimeoutMs int `yaml:"step_timeout_ms"`
	// Temperature for generation steps (0 = provider default of 0.7)
	Temperature float64 `yaml:"temperature"`
}

// LogConfig controls structured logging output.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

const defaultStepTimeout = 120 * time.Second

// StepTimeout returns the configured per-step timeout as a duration.
func (p PipelineConfig) StepTimeout() time.Duration {
	if p.StepTimeoutMs <= 0 {
		return defaultStepTimeout
	}
	return time.Duration(p.StepTimeoutMs) * time.Millisecond
}

// ListenAddr returns the host:port the server should bind to.
func (s ServerConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%s", s.Address, s.Port)
}

// Load reads configuration from a YAML file, applies defaults, and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound,
			fmt.Sprintf("config file not readable: %s", path), err).
			WithSuggestion("Pass --config with the path to hireplan.yaml")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.NewFileUnmarshalError(path, "YAML", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Default returns a configuration built from environment variables alone,
// used when no config file is present. Gateways are enabled when their API
// key is set, Gemini first (matching the service's original provider).
func Default() *Config {
	cfg := &Config{
		Gateways: []GatewayConfig{
			{
				Name:    "gemini",
				APIKey:  os.Getenv("GEMINI_API_KEY"),
				Model:   "gemini-1.5-pro-latest",
				Enabled: os.Getenv("GEMINI_API_KEY") != "",
			},
			{
				Name:    "openai",
				APIKey:  os.Getenv("OPENAI_API_KEY"),
				Model:   "gpt-4o-mini",
				Enabled: os.Getenv("OPENAI_API_KEY") != "",
			},
		},
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = "0.0.0.0"
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.ShutdownTimeoutSeconds == 0 {
		c.Server.ShutdownTimeoutSeconds = 30
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 10
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		// Generation steps stream nothing back until the gateway answers,
		// so response writes must outlive the slowest step.
		c.Server.WriteTimeoutSeconds = 600
	}
	if c.Server.IdleTimeoutSeconds == 0 {
		c.Server.IdleTimeoutSeconds = 60
	}

	for i := range c.Gateways {
		gw := &c.Gateways[i]
		if gw.Type == "" {
			gw.Type = gw.Name
		}
		if gw.APIKey == "" {
			gw.APIKey = os.Getenv(envKeyName(gw.Name))
		}
	}

	if c.DefaultGateway == "" {
		for _, gw := range c.Gateways {
			if gw.Enabled {
				c.DefaultGateway = gw.Name
				break
			}
		}
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	hasEnabled := false
	defaultFound := false

	for _, gw := range c.Gateways {
		if gw.Name == "" {
			return errors.NewConfigInvalidError("gateway entry missing name")
		}
		if gw.Enabled {
			hasEnabled = true
			if gw.APIKey == "" {
				return errors.NewConfigInvalidError(
					fmt.Sprintf("gateway %s is enabled but has no API key", gw.Name)).
					WithSuggestion(fmt.Sprintf("Set the %s environment variable", envKeyName(gw.Name)))
			}
		}
		if gw.Name == c.DefaultGateway {
			defaultFound = true
		}
	}

	if !hasEnabled {
		return errors.NewConfigInvalidError("at least one gateway must be enabled").
			WithSuggestion("Set GEMINI_API_KEY or OPENAI_API_KEY")
	}

	if c.DefaultGateway != "" && !defaultFound {
		return errors.NewConfigInvalidError(
			fmt.Sprintf("default_gateway %q does not match any configured gateway", c.DefaultGateway))
	}

	if c.Pipeline.StepTimeoutMs < 0 {
		return errors.NewConfigInvalidError("pipeline.step_timeout_ms must be non-negative")
	}
	if c.Pipeline.Temperature < 0 || c.Pipeline.Temperature > 2 {
		return errors.NewConfigInvalidError("pipeline.temperature must be between 0 and 2")
	}

	return nil
}

func envKeyName(gateway string) string {
	key := make([]byte, 0, len(gateway))
	for i := 0; i < len(gateway); i++ {
		ch := gateway[i]
		switch {
		case ch >= 'a' && ch <= 'z':
			key = append(key, ch-'a'+'A')
		case ch == '-':
			key = append(key, '_')
		default:
			key = append(key, ch)
		}
	}
	return string(key) + "_API_KEY"
}
