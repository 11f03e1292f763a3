// Package config provides environment-driven configuration for neonpress.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Embedding dimension bounds accepted by pgvector HNSW indexes.
const (
	minEmbeddingDims = 1
	maxEmbeddingDims = 4096
)

// Config holds all application configuration values.
type Config struct {
	DatabaseURL    Secret
	Port           string
	ListenHost     string
	CORSOrigins    []string
	OpenAIBaseURL  string
	OpenAIAPIKey   Secret
	EmbeddingModel string
	EmbeddingDims  int
	LogLevel       string
}

// Load reads configuration from environment variables with sensible defaults.
// An empty OPENAI_API_KEY is not an error: the service runs with semantic
// search disabled.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:    Secret(envOrDefault("DATABASE_URL", "")),
		Port:           envOrDefault("PORT", "3000"),
		ListenHost:     envOrDefault("LISTEN_HOST", "127.0.0.1"),
		OpenAIBaseURL:  normalizeBaseURL(envOrDefault("OPENAI_BASE_URL", "https://api.openai.com")),
		OpenAIAPIKey:   Secret(envOrDefault("OPENAI_API_KEY", "")),
		EmbeddingModel: envOrDefault("OPENAI_EMBED_MODEL", "text-embedding-3-small"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
	}

	dims, err := strconv.Atoi(envOrDefault("EMBEDDING_DIMENSIONS", "1024"))
	if err != nil || dims < minEmbeddingDims || dims > maxEmbeddingDims {
		return nil, fmt.Errorf("EMBEDDING_DIMENSIONS must be an integer between %d and %d", minEmbeddingDims, maxEmbeddingDims)
	}
	cfg.EmbeddingDims = dims

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:5173")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// SemanticEnabled reports whether the embedding provider is configured at all.
// Without an API key the semantic path never leaves the process.
func (c *Config) SemanticEnabled() bool {
	return c.OpenAIAPIKey.Value() != ""
}

// normalizeBaseURL strips trailing slashes and a trailing "/v1" so that both
// "https://host" and "https://host/v1/" configurations resolve to the same
// endpoint when the client appends "/v1/embeddings".
func normalizeBaseURL(raw string) string {
	trimmed := strings.TrimRight(raw, "/")

	return strings.TrimSuffix(trimmed, "/v1")
}

func (c *Config) validate() error {
	if err := c.validateDatabase(); err != nil {
		return err
	}

	if err := c.validateNetwork(); err != nil {
		return err
	}

	if err := c.validateOpenAI(); err != nil {
		return err
	}

	return c.validateCORS()
}

func (c *Config) validateDatabase() error {
	if c.DatabaseURL.Value() == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	dbURL, err := url.Parse(c.DatabaseURL.Value())
	if err != nil {
		return fmt.Errorf("DATABASE_URL is not a valid URL: %w", err)
	}

	if dbURL.Scheme != "postgres" && dbURL.Scheme != "postgresql" {
		return fmt.Errorf("DATABASE_URL scheme must be postgres:// or postgresql://")
	}

	if dbURL.Hostname() == "" {
		return fmt.Errorf("DATABASE_URL must include a host")
	}

	dbHost := dbURL.Hostname()
	if dbHost != "localhost" && dbHost != "127.0.0.1" && dbHost != "::1" {
		sslmode := dbURL.Query().Get("sslmode")
		if sslmode == "disable" {
			return fmt.Errorf("DATABASE_URL sslmode=disable is not allowed for non-local host %q", dbHost)
		}
	}

	return nil
}

func (c *Config) validateNetwork() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return fmt.Errorf("PORT must be a valid integer: %w", err)
	}

	if port < 1 || port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}

	return nil
}

func (c *Config) validateOpenAI() error {
	u, err := url.ParseRequestURI(c.OpenAIBaseURL)
	if err != nil {
		return fmt.Errorf("OPENAI_BASE_URL is not a valid URL: %w", err)
	}

	if u.Scheme != "https" && !isLocalhost(c.OpenAIBaseURL) {
		return fmt.Errorf("OPENAI_BASE_URL must use HTTPS for non-localhost endpoints")
	}

	return nil
}

func (c *Config) validateCORS() error {
	for _, origin := range c.CORSOrigins {
		if origin == "*" {
			return fmt.Errorf("CORS_ORIGINS must not contain wildcard '*'")
		}
		if strings.ContainsAny(origin, "*?[]") {
			return fmt.Errorf("CORS_ORIGINS must not contain glob characters (*?[]), got %q", origin)
		}
		u, err := url.Parse(origin)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("CORS_ORIGINS contains invalid origin %q (must have scheme and host)", origin)
		}
	}

	return nil
}

// isLocalhost returns true if the given address points to a loopback address.
func isLocalhost(addr string) bool {
	u, err := url.Parse(addr)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
