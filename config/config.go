// Package config holds the websearch.yaml configuration types and loaders.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default values used when websearch.yaml omits a field.
const (
	DefaultPort     = 8000
	DefaultEndpoint = "https://api.duckduckgo.com/"
	DefaultLiteURL  = "https://lite.duckduckgo.com/lite/"
	DefaultTimeout  = 10 * time.Second
	DefaultLimit    = 5
)

// Search provider names.
const (
	ProviderInstant = "instant"
	ProviderLite    = "lite"
)

// Config represents the top-level websearch.yaml configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Search SearchConfig `yaml:"search"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the HTTP front end.
type ServerConfig struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port"`

	// ProxyBasePath is injected into the page as window.__PROXY_BASE_PATH__.
	ProxyBasePath string `yaml:"proxy_base_path,omitempty"`
	// BaseHref is injected into the page as <base href>.
	BaseHref string `yaml:"base_href,omitempty"`
	// TrustForwardedPrefix lets an X-Forwarded-Prefix request header set the
	// proxy base path for that request.
	TrustForwardedPrefix bool `yaml:"trust_forwarded_prefix,omitempty"`
	// MaskErrors replaces raw internal error text in 500 responses.
	MaskErrors bool `yaml:"mask_errors,omitempty"`
	// MaxSessions caps live chat sessions; 0 uses the agent default.
	MaxSessions int `yaml:"max_sessions,omitempty"`
}

// SearchConfig configures the upstream search provider.
type SearchConfig struct {
	Provider  string        `yaml:"provider"`
	Endpoint  string        `yaml:"endpoint,omitempty"`
	Timeout   time.Duration `yaml:"timeout"`
	Limit     int           `yaml:"limit"`
	UserAgent string        `yaml:"user_agent,omitempty"`
}

// LogConfig configures logging output.
type LogConfig struct {
	Format  string `yaml:"format"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: DefaultPort},
		Search: SearchConfig{
			Provider: ProviderInstant,
			Endpoint: DefaultEndpoint,
			Timeout:  DefaultTimeout,
			Limit:    DefaultLimit,
		},
		Log: LogConfig{Format: "console"},
	}
}

// Addr returns the listen address for the server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// Parse decodes raw YAML bytes on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing websearch config: %w", err)
	}
	// An explicit lite provider without an endpoint points at the lite page.
	if cfg.Search.Provider == ProviderLite && cfg.Search.Endpoint == DefaultEndpoint {
		cfg.Search.Endpoint = DefaultLiteURL
	}
	return cfg, nil
}

// Load reads a websearch.yaml file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading websearch config %s: %w", path, err)
	}

	errs, err := ValidateSchema(data)
	if err != nil {
		return nil, err
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("websearch config %s: %s", path, strings.Join(errs, "; "))
	}
	return Parse(data)
}
