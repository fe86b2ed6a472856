// Package config loads and validates enricher configuration via Viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config captures all configuration knobs loaded via Viper.
type Config struct {
	Cache    CacheConfig    `mapstructure:"cache"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Pacing   PacingConfig   `mapstructure:"pacing"`
	Search   SearchConfig   `mapstructure:"search"`
	Verifier VerifierConfig `mapstructure:"verifier"`
	Scrape   ScrapeConfig   `mapstructure:"scrape"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// CacheConfig selects the cache backend and entry lifetime.
type CacheConfig struct {
	Backend  string `mapstructure:"backend"` // memory, fs, redis
	Dir      string `mapstructure:"dir"`
	RedisURL string `mapstructure:"redis_url"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

// HTTPConfig configures outbound HTTP timeouts and retries.
type HTTPConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxRetries     int    `mapstructure:"max_retries"`
	UserAgent      string `mapstructure:"user_agent"`
}

// PacingConfig bounds the jittered delay applied before outbound calls.
type PacingConfig struct {
	MinDelayMs int `mapstructure:"min_delay_ms"`
	MaxDelayMs int `mapstructure:"max_delay_ms"`
}

// SearchConfig points at the text search endpoint.
type SearchConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	MaxResults int    `mapstructure:"max_results"`
}

// VerifierConfig points at the batch email verification API.
type VerifierConfig struct {
	URL            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// ScrapeConfig governs the bounded website crawl.
type ScrapeConfig struct {
	MaxTeamPages      int `mapstructure:"max_team_pages"`
	MaxTeamMembers    int `mapstructure:"max_team_members"`
	SocialTimeoutSecs int `mapstructure:"social_timeout_seconds"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ENRICHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("cache.backend", "memory")
	v.SetDefault("cache.dir", "cache")
	v.SetDefault("cache.ttl_hours", 24)
	v.SetDefault("http.timeout_seconds", 10)
	v.SetDefault("http.max_retries", 2)
	v.SetDefault("http.user_agent", "Mozilla/5.0 (compatible; leadgrid-enricher/0.1)")
	v.SetDefault("pacing.min_delay_ms", 3000)
	v.SetDefault("pacing.max_delay_ms", 7000)
	v.SetDefault("search.base_url", "https://html.duckduckgo.com/html/")
	v.SetDefault("search.max_results", 5)
	v.SetDefault("verifier.url", "https://rapid-email-verifier.fly.dev/api/validate/batch")
	v.SetDefault("verifier.timeout_seconds", 10)
	v.SetDefault("scrape.max_team_pages", 4)
	v.SetDefault("scrape.max_team_members", 15)
	v.SetDefault("scrape.social_timeout_seconds", 8)
	v.SetDefault("logging.development", true)
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case "memory", "fs", "redis":
	default:
		return fmt.Errorf("cache.backend must be one of memory, fs, redis")
	}
	if c.Cache.Backend == "redis" && c.Cache.RedisURL == "" {
		return fmt.Errorf("cache.redis_url must be set when cache.backend is redis")
	}
	if c.Cache.TTLHours <= 0 {
		return fmt.Errorf("cache.ttl_hours must be > 0")
	}
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("http.timeout_seconds must be > 0")
	}
	if c.Pacing.MinDelayMs < 0 || c.Pacing.MaxDelayMs < c.Pacing.MinDelayMs {
		return fmt.Errorf("pacing delay range is invalid")
	}
	if c.Scrape.MaxTeamMembers <= 0 {
		return fmt.Errorf("scrape.max_team_members must be > 0")
	}
	return nil
}

// CacheTTL returns the configured cache lifetime as a duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLHours) * time.Hour
}

// HTTPTimeout returns the outbound HTTP timeout as a duration.
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutSeconds) * time.Second
}
