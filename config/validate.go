package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationResult holds errors and warnings from config validation.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// IsValid returns true if there are no validation errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Validate checks a Config for errors and warnings that the schema cannot
// express, including values that arrived through environment overrides.
func Validate(cfg *Config) *ValidationResult {
	r := &ValidationResult{}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		r.Errors = append(r.Errors, fmt.Sprintf("server.port %d must be between 1 and 65535", cfg.Server.Port))
	}

	if p := cfg.Server.ProxyBasePath; p != "" {
		if !strings.HasPrefix(p, "/") {
			r.Errors = append(r.Errors, fmt.Sprintf("server.proxy_base_path %q must start with /", p))
		}
		// The page concatenates the marker with "search".
		if !strings.HasSuffix(p, "/") {
			r.Warnings = append(r.Warnings, fmt.Sprintf("server.proxy_base_path %q has no trailing slash; requests will go to %q", p, p+"search"))
		}
	}
	if cfg.Server.ProxyBasePath != "" && cfg.Server.BaseHref != "" {
		r.Warnings = append(r.Warnings, "server.base_href is ignored by the page while server.proxy_base_path is set")
	}
	if cfg.Server.TrustForwardedPrefix {
		r.Warnings = append(r.Warnings, "server.trust_forwarded_prefix should only be enabled behind a trusted reverse proxy")
	}

	if cfg.Server.MaxSessions < 0 {
		r.Errors = append(r.Errors, fmt.Sprintf("server.max_sessions %d must not be negative", cfg.Server.MaxSessions))
	}

	switch cfg.Search.Provider {
	case ProviderInstant, ProviderLite:
	default:
		r.Errors = append(r.Errors, fmt.Sprintf("search.provider %q must be one of: instant, lite", cfg.Search.Provider))
	}

	if u, err := url.Parse(cfg.Search.Endpoint); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		r.Errors = append(r.Errors, fmt.Sprintf("search.endpoint %q must be an absolute http(s) URL", cfg.Search.Endpoint))
	} else if u.Scheme == "http" {
		r.Warnings = append(r.Warnings, "search.endpoint uses plain http")
	}

	if cfg.Search.Timeout <= 0 {
		r.Errors = append(r.Errors, "search.timeout must be positive")
	}
	if cfg.Search.Limit < 1 {
		r.Errors = append(r.Errors, fmt.Sprintf("search.limit %d must be at least 1", cfg.Search.Limit))
	}

	switch cfg.Log.Format {
	case "json", "console":
	default:
		r.Errors = append(r.Errors, fmt.Sprintf("log.format %q must be one of: json, console", cfg.Log.Format))
	}

	return r
}
