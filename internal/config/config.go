package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrInvalidTimeout  = errors.New("timeouts must be positive")
	ErrInvalidProvider = errors.New("unknown AI provider")
	ErrInvalidPort     = errors.New("invalid port")
)

const (
	ProviderGateway = "gateway"
	ProviderOpenAI  = "openai"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	AI        AIConfig
	Firecrawl FirecrawlConfig
	Upstream  UpstreamConfig
	Log       LogConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
	CORSOrigins    []string
}

// DatabaseConfig is optional. Library endpoints are off without a URL.
type DatabaseConfig struct {
	URL string
}

type AIConfig struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
	Timeout  time.Duration
}

type FirecrawlConfig struct {
	APIKey  string
	BaseURL string
}

type UpstreamConfig struct {
	Timeout         time.Duration
	MirrorTimeout   time.Duration
	PeerTubeTimeout time.Duration
	UserAgent       string
}

type LogConfig struct {
	Level string
}

type RateLimitConfig struct {
	RequestsPerMinute int
}

// Load reads configuration from the environment after merging a .env file
// from the working directory, if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnvOrDefault("PORT", "8080"),
			RequestTimeout: seconds("REQUEST_TIMEOUT_SEC", 45),
			CORSOrigins:    splitList(getEnvOrDefault("CORS_ORIGINS", "*")),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		AI: AIConfig{
			Provider: strings.ToLower(getEnvOrDefault("AI_PROVIDER", ProviderGateway)),
			APIKey:   os.Getenv("AI_API_KEY"),
			BaseURL:  getEnvOrDefault("AI_BASE_URL", "https://ai.gateway.lovable.dev/v1"),
			Model:    getEnvOrDefault("AI_MODEL", "google/gemini-2.5-flash"),
			Timeout:  seconds("AI_TIMEOUT_SEC", 30),
		},
		Firecrawl: FirecrawlConfig{
			APIKey:  os.Getenv("FIRECRAWL_API_KEY"),
			BaseURL: getEnvOrDefault("FIRECRAWL_BASE_URL", "https://api.firecrawl.dev/v1"),
		},
		Upstream: UpstreamConfig{
			Timeout:         seconds("UPSTREAM_TIMEOUT_SEC", 10),
			MirrorTimeout:   seconds("MIRROR_TIMEOUT_SEC", 8),
			PeerTubeTimeout: seconds("PEERTUBE_TIMEOUT_SEC", 5),
			UserAgent:       os.Getenv("USER_AGENT"),
		},
		Log: LogConfig{
			Level: getEnvOrDefault("LOG_LEVEL", "info"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerMinute: getEnvIntOrDefault("RATE_LIMIT_PER_MINUTE", 60),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	for _, d := range []time.Duration{
		c.Server.RequestTimeout,
		c.AI.Timeout,
		c.Upstream.Timeout,
		c.Upstream.MirrorTimeout,
		c.Upstream.PeerTubeTimeout,
	} {
		if d <= 0 {
			return ErrInvalidTimeout
		}
	}
	if c.AI.Provider != ProviderGateway && c.AI.Provider != ProviderOpenAI {
		return ErrInvalidProvider
	}
	if p, err := strconv.Atoi(c.Server.Port); err != nil || p <= 0 || p > 65535 {
		return ErrInvalidPort
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// LibraryEnabled reports whether the record store is configured.
func (c *Config) LibraryEnabled() bool {
	return c.Database.URL != ""
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func seconds(key string, defaultValue int) time.Duration {
	return time.Duration(getEnvIntOrDefault(key, defaultValue)) * time.Second
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
