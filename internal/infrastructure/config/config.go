package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	EnvProduction = "production"

	devAPIURL  = "http://localhost:5000/api"
	prodAPIURL = "/api"
)

// Session backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	Metrics  bool   `env:"METRICS_ENABLED, default=true"`

	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
}

type APIConfig struct {
	// URL is the backend base address. Empty picks the per-environment default.
	URL string `env:"OPD_API_URL"`
	// AuthURL points the login endpoints somewhere else. Empty means URL.
	AuthURL string `env:"OPD_AUTH_URL"`
	// PublicOrigin is the console's own origin; relative addresses resolve against it.
	PublicOrigin string `env:"OPD_PUBLIC_ORIGIN, default=http://localhost:8080"`
	// ProxyTarget enables the /api/* proxy to the backend when set.
	ProxyTarget string `env:"OPD_PROXY_TARGET"`
	LoginPath   string `env:"OPD_LOGIN_PATH,    default=/login"`
}

type SessionConfig struct {
	Backend string `env:"SESSION_BACKEND, default=file"`
	File    string `env:"SESSION_FILE,    default=.opd-session.json"`
}

type RedisConfig struct {
	Addr   string `env:"REDIS_ADDR,   default=localhost:6379"`
	DB     int    `env:"REDIS_DB,     default=0"`
	Prefix string `env:"REDIS_PREFIX, default=opd:session:"`
}

// Load reads an optional .env file, then the environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l and validates it.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

func (c *Config) Validate() error {
	switch c.Session.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("config: unknown SESSION_BACKEND %q", c.Session.Backend)
	}
	if !strings.HasPrefix(c.API.LoginPath, "/") {
		return fmt.Errorf("config: OPD_LOGIN_PATH must start with /, got %q", c.API.LoginPath)
	}
	if _, err := c.APIBaseURL(); err != nil {
		return err
	}
	if _, err := c.AuthBaseURL(); err != nil {
		return err
	}
	return nil
}

// APIBaseURL is the absolute backend address: OPD_API_URL when set,
// otherwise the development default or "/api" in production. Relative
// addresses are resolved against OPD_PUBLIC_ORIGIN.
func (c *Config) APIBaseURL() (string, error) {
	raw := c.API.URL
	if raw == "" {
		raw = devAPIURL
		if c.IsProduction() {
			raw = prodAPIURL
		}
	}
	return c.resolve(raw)
}

// AuthBaseURL is where the login endpoints live.
func (c *Config) AuthBaseURL() (string, error) {
	if c.API.AuthURL == "" {
		return c.APIBaseURL()
	}
	return c.resolve(c.API.AuthURL)
}

func (c *Config) resolve(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("config: parse %q: %w", raw, err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}
	origin, err := url.Parse(c.API.PublicOrigin)
	if err != nil || !origin.IsAbs() {
		return "", fmt.Errorf("config: OPD_PUBLIC_ORIGIN %q must be an absolute url", c.API.PublicOrigin)
	}
	return origin.ResolveReference(u).String(), nil
}
