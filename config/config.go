package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	RateLimit  RateLimitConfig
	Cache      CacheConfig
	Generation GenerationConfig
	Share      ShareConfig
	LogLevel   slog.Level
}

type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

type CacheBackend string

const (
	CacheMemory CacheBackend = "memory"
	CacheRedis  CacheBackend = "redis"
	CacheSQLite CacheBackend = "sqlite"
)

type CacheConfig struct {
	Backend    CacheBackend
	RedisAddr  string
	SQLitePath string
	TTL        time.Duration
}

type GenerationConfig struct {
	APIKey        string
	BaseURL       string
	Model         string
	FallbackModel string
	Timeout       time.Duration

	Insights          bool
	NormalizeTitle    bool
	NegotiationScript bool
}

type ShareConfig struct {
	BaseURL string
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Requests: 10,
			Window:   time.Minute,
		},
		Cache: CacheConfig{
			Backend:    CacheMemory,
			RedisAddr:  "localhost:6379",
			SQLitePath: "salary-cache.db",
			TTL:        24 * time.Hour,
		},
		Generation: GenerationConfig{
			Model:             "gpt-4o",
			FallbackModel:     "gpt-3.5-turbo",
			Timeout:           30 * time.Second,
			Insights:          true,
			NormalizeTitle:    true,
			NegotiationScript: true,
		},
		Share: ShareConfig{
			BaseURL: "https://salarycompass.xyz",
		},
		LogLevel: slog.LevelInfo,
	}
}

// Load builds the configuration from defaults, then the optional dotenv
// files, then the process environment. Variables already set in the
// environment win over dotenv files. With no files given ".env" is tried.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := defaults()
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type envSpec struct {
	env   string
	apply func(cfg *Config, raw string) error
}

func str(dst func(*Config) *string) func(*Config, string) error {
	return func(cfg *Config, raw string) error {
		*dst(cfg) = raw
		return nil
	}
}

func duration(dst func(*Config) *time.Duration) func(*Config, string) error {
	return func(cfg *Config, raw string) error {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		*dst(cfg) = d
		return nil
	}
}

func integer(dst func(*Config) *int) func(*Config, string) error {
	return func(cfg *Config, raw string) error {
		i, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		*dst(cfg) = i
		return nil
	}
}

func boolean(dst func(*Config) *bool) func(*Config, string) error {
	return func(cfg *Config, raw string) error {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		*dst(cfg) = b
		return nil
	}
}

var specs = []envSpec{
	{"SALARY_ADDR", str(func(c *Config) *string { return &c.Server.Addr })},
	{"SALARY_READ_TIMEOUT", duration(func(c *Config) *time.Duration { return &c.Server.ReadTimeout })},
	{"SALARY_WRITE_TIMEOUT", duration(func(c *Config) *time.Duration { return &c.Server.WriteTimeout })},
	{"SALARY_IDLE_TIMEOUT", duration(func(c *Config) *time.Duration { return &c.Server.IdleTimeout })},

	{"SALARY_RATE_LIMIT", integer(func(c *Config) *int { return &c.RateLimit.Requests })},
	{"SALARY_RATE_WINDOW", duration(func(c *Config) *time.Duration { return &c.RateLimit.Window })},

	{"SALARY_CACHE_BACKEND", func(c *Config, raw string) error {
		c.Cache.Backend = CacheBackend(strings.ToLower(raw))
		return nil
	}},
	{"SALARY_REDIS_ADDR", str(func(c *Config) *string { return &c.Cache.RedisAddr })},
	{"SALARY_SQLITE_PATH", str(func(c *Config) *string { return &c.Cache.SQLitePath })},
	{"SALARY_CACHE_TTL", duration(func(c *Config) *time.Duration { return &c.Cache.TTL })},

	{"OPENAI_API_KEY", str(func(c *Config) *string { return &c.Generation.APIKey })},
	{"SALARY_OPENAI_BASE_URL", str(func(c *Config) *string { return &c.Generation.BaseURL })},
	{"SALARY_MODEL", str(func(c *Config) *string { return &c.Generation.Model })},
	{"SALARY_FALLBACK_MODEL", str(func(c *Config) *string { return &c.Generation.FallbackModel })},
	{"SALARY_GENERATION_TIMEOUT", duration(func(c *Config) *time.Duration { return &c.Generation.Timeout })},
	{"SALARY_FEATURE_INSIGHTS", boolean(func(c *Config) *bool { return &c.Generation.Insights })},
	{"SALARY_FEATURE_NORMALIZE_TITLE", boolean(func(c *Config) *bool { return &c.Generation.NormalizeTitle })},
	{"SALARY_FEATURE_NEGOTIATION_SCRIPT", boolean(func(c *Config) *bool { return &c.Generation.NegotiationScript })},

	{"SALARY_SHARE_BASE_URL", str(func(c *Config) *string { return &c.Share.BaseURL })},

	{"SALARY_LOG_LEVEL", func(c *Config, raw string) error {
		return c.LogLevel.UnmarshalText([]byte(raw))
	}},
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	var errs []error
	for _, s := range specs {
		raw, ok := lookup(s.env)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		if err := s.apply(cfg, strings.TrimSpace(raw)); err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: %w", s.env, raw, err))
		}
	}
	return errors.Join(errs...)
}

func (c Config) validate() error {
	switch c.Cache.Backend {
	case CacheMemory, CacheRedis, CacheSQLite:
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.RateLimit.Requests <= 0 {
		return fmt.Errorf("rate limit must be positive, got %d", c.RateLimit.Requests)
	}
	if c.RateLimit.Window <= 0 {
		return fmt.Errorf("rate window must be positive, got %s", c.RateLimit.Window)
	}
	return nil
}
