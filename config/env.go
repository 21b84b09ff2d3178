package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// ParseEnvVars reads KEY=value lines from r. Blank lines, # comments and an
// "export " prefix are ignored; quoted values are taken verbatim and unquoted
// values end at " #".
func ParseEnvVars(r io.Reader) (map[string]string, error) {
	env := make(map[string]string)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if key, val, ok := parseEnvLine(scanner.Text()); ok {
			env[key] = val
		}
	}
	return env, scanner.Err()
}

func parseEnvLine(line string) (key, val string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return "", "", false
	}
	line = strings.TrimSpace(strings.TrimPrefix(line, "export "))

	key, val, ok = strings.Cut(line, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" || strings.ContainsAny(key, " \t") {
		return "", "", false
	}
	val = strings.TrimSpace(val)

	if len(val) >= 2 && (val[0] == '"' || val[0] == '\'') {
		if end := strings.IndexByte(val[1:], val[0]); end >= 0 {
			return key, val[1 : end+1], true
		}
	}
	if i := strings.Index(val, " #"); i >= 0 {
		val = strings.TrimSpace(val[:i])
	}
	return key, val, true
}

// LoadEnvFile reads a .env file and returns key-value pairs.
// Missing files return an empty map and no error.
func LoadEnvFile(path string) (map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return ParseEnvVars(f)
}

// ExportEnv sets each pair in the process environment unless the variable is
// already set.
func ExportEnv(vars map[string]string) {
	for k, v := range vars {
		if os.Getenv(k) == "" {
			_ = os.Setenv(k, v)
		}
	}
}

// ApplyEnv overrides cfg fields from WEBSEARCH_* variables looked up through
// getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv("WEBSEARCH_HOST"); v != "" {
		cfg.Server.Host = v
	}
	if v := getenv("WEBSEARCH_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WEBSEARCH_PORT %q: %w", v, err)
		}
		cfg.Server.Port = port
	}
	if v := getenv("WEBSEARCH_PROXY_BASE_PATH"); v != "" {
		cfg.Server.ProxyBasePath = v
	}
	if v := getenv("WEBSEARCH_BASE_HREF"); v != "" {
		cfg.Server.BaseHref = v
	}
	if v := getenv("WEBSEARCH_PROVIDER"); v != "" {
		cfg.Search.Provider = v
		if v == ProviderLite && cfg.Search.Endpoint == DefaultEndpoint {
			cfg.Search.Endpoint = DefaultLiteURL
		}
	}
	if v := getenv("WEBSEARCH_ENDPOINT"); v != "" {
		cfg.Search.Endpoint = v
	}
	if v := getenv("WEBSEARCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("WEBSEARCH_TIMEOUT %q: %w", v, err)
		}
		cfg.Search.Timeout = d
	}
	if v := getenv("WEBSEARCH_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	return nil
}
