package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	CacheMemory = "memory"
	CacheRedis  = "redis"

	FetchHTTP    = "http"
	FetchBrowser = "browser"
)

// Config stores all configuration for the application.
type Config struct {
	ServerPort string `mapstructure:"SERVER_PORT"`
	LogLevel   string `mapstructure:"LOG_LEVEL"`

	CacheBackend    string `mapstructure:"CACHE_BACKEND"`
	CacheTTLSeconds int    `mapstructure:"CACHE_TTL_SECONDS"`
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisDB         int    `mapstructure:"REDIS_DB"`
	PostgresURL     string `mapstructure:"POSTGRES_URL"`

	FetchStrategy          string `mapstructure:"FETCH_STRATEGY"`
	FetchTimeoutSeconds    int    `mapstructure:"FETCH_TIMEOUT_SECONDS"`
	FallbackTimeoutSeconds int    `mapstructure:"FALLBACK_TIMEOUT_SECONDS"`
	FetchMaxRedirects      int    `mapstructure:"FETCH_MAX_REDIRECTS"`
	FetchMaxBodyBytes      int64  `mapstructure:"FETCH_MAX_BODY_BYTES"`
	ProxyURLs              string `mapstructure:"PROXY_URLS"`
	BrowserMaxConcurrency  int    `mapstructure:"BROWSER_MAX_CONCURRENCY"`

	BrandDenylist       string `mapstructure:"BRAND_DENYLIST"`
	DescriptionKeywords string `mapstructure:"DESCRIPTION_KEYWORDS"`

	OpenRouterAPIKey  string  `mapstructure:"OPENROUTER_API_KEY"`
	OpenRouterAPIURL  string  `mapstructure:"OPENROUTER_API_URL"`
	OpenRouterModel   string  `mapstructure:"OPENROUTER_MODEL"`
	LLMMaxTokens      int     `mapstructure:"LLM_MAX_TOKENS"`
	LLMTemperature    float64 `mapstructure:"LLM_TEMPERATURE"`
	LLMTimeoutSeconds int     `mapstructure:"LLM_TIMEOUT_SECONDS"`
	LLMRatePerSecond  float64 `mapstructure:"LLM_RATE_PER_SECOND"`
	LLMBurst          int     `mapstructure:"LLM_BURST"`
	AppReferer        string  `mapstructure:"APP_REFERER"`
	AppTitle          string  `mapstructure:"APP_TITLE"`
}

var defaults = map[string]any{
	"SERVER_PORT":              "3000",
	"LOG_LEVEL":                "info",
	"CACHE_BACKEND":            CacheMemory,
	"CACHE_TTL_SECONDS":        3600,
	"REDIS_ADDR":               "localhost:6379",
	"REDIS_PASSWORD":           "",
	"REDIS_DB":                 0,
	"POSTGRES_URL":             "",
	"FETCH_STRATEGY":           FetchHTTP,
	"FETCH_TIMEOUT_SECONDS":    15,
	"FALLBACK_TIMEOUT_SECONDS": 10,
	"FETCH_MAX_REDIRECTS":      5,
	"FETCH_MAX_BODY_BYTES":     5 << 20,
	"PROXY_URLS":               "",
	"BROWSER_MAX_CONCURRENCY":  2,
	"BRAND_DENYLIST":           "Vendd",
	"DESCRIPTION_KEYWORDS":     "Arsenal,Secreto,CEO,Afiliado,Transforme,Descubra,Vendas,Marketing,Estratégia,Resultado",
	"OPENROUTER_API_KEY":       "",
	"OPENROUTER_API_URL":       "https://openrouter.ai/api/v1",
	"OPENROUTER_MODEL":         "microsoft/wizardlm-2-8x22b",
	"LLM_MAX_TOKENS":           500,
	"LLM_TEMPERATURE":          0.7,
	"LLM_TIMEOUT_SECONDS":      20,
	"LLM_RATE_PER_SECOND":      2.0,
	"LLM_BURST":                4,
	"APP_REFERER":              "http://localhost:3000",
	"APP_TITLE":                "Sales Chatbot",
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	return load(".env")
}

func load(file string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("env")
	v.AutomaticEnv()

	// The .env file is optional; production is configured through the environment.
	_ = v.ReadInConfig()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	// PORT is what most hosting platforms inject.
	if err := v.BindEnv("SERVER_PORT", "SERVER_PORT", "PORT"); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the service cannot start with.
func (c *Config) Validate() error {
	switch c.CacheBackend {
	case CacheMemory, CacheRedis:
	default:
		return fmt.Errorf("invalid CACHE_BACKEND %q: want %q or %q", c.CacheBackend, CacheMemory, CacheRedis)
	}
	switch c.FetchStrategy {
	case FetchHTTP, FetchBrowser:
	default:
		return fmt.Errorf("invalid FETCH_STRATEGY %q: want %q or %q", c.FetchStrategy, FetchHTTP, FetchBrowser)
	}
	if c.CacheTTLSeconds <= 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS must be positive, got %d", c.CacheTTLSeconds)
	}
	if c.FetchTimeoutSeconds <= 0 || c.FallbackTimeoutSeconds <= 0 || c.LLMTimeoutSeconds <= 0 {
		return fmt.Errorf("timeouts must be positive")
	}
	if c.FetchMaxRedirects < 0 {
		return fmt.Errorf("FETCH_MAX_REDIRECTS must not be negative, got %d", c.FetchMaxRedirects)
	}
	if c.FetchMaxBodyBytes <= 0 {
		return fmt.Errorf("FETCH_MAX_BODY_BYTES must be positive, got %d", c.FetchMaxBodyBytes)
	}
	if c.BrowserMaxConcurrency <= 0 {
		return fmt.Errorf("BROWSER_MAX_CONCURRENCY must be positive, got %d", c.BrowserMaxConcurrency)
	}
	if c.LLMRatePerSecond <= 0 || c.LLMBurst <= 0 {
		return fmt.Errorf("LLM rate limit must be positive")
	}
	return nil
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

func (c *Config) FallbackTimeout() time.Duration {
	return time.Duration(c.FallbackTimeoutSeconds) * time.Second
}

func (c *Config) LLMTimeout() time.Duration {
	return time.Duration(c.LLMTimeoutSeconds) * time.Second
}

// LLMEnabled reports whether a completion service is configured.
func (c *Config) LLMEnabled() bool {
	return c.OpenRouterAPIKey != ""
}

func (c *Config) Proxies() []string {
	return splitList(c.ProxyURLs)
}

func (c *Config) BrandTerms() []string {
	return splitList(c.BrandDenylist)
}

func (c *Config) Keywords() []string {
	return splitList(c.DescriptionKeywords)
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
