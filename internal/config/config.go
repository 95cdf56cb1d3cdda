package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
}

type AppConfig struct {
	AppName         string
	Environment     string
	HTTPPort        string
	AdminRole       string
	ShutdownTimeout time.Duration
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SessionConfig struct {
	CookieName   string
	CookieSecure bool
	IdleTTL      time.Duration
	TokenTTL     time.Duration
	SweepSpec    string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

var (
	errMissingRequiredEnv = errors.New("missing required environment variables")
	errInvalidEnv         = errors.New("invalid environment variables")
)

// Load reads the process environment. A .env file in the working directory is
// applied first when present; variables already set take precedence.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{}

	var missing []string
	var invalid []string
	req := func(key string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, def string) string {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return def
		}
		return v
	}
	dur := func(key string, def time.Duration) time.Duration {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			invalid = append(invalid, key)
			return def
		}
		return d
	}
	flag := func(key string, def bool) bool {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return def
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			invalid = append(invalid, key)
			return def
		}
		return b
	}

	cfg.App = AppConfig{
		AppName:         opt("APP_NAME", "jobalert-web"),
		Environment:     opt("APP_ENV", "development"),
		HTTPPort:        req("HTTP_PORT"),
		AdminRole:       opt("ADMIN_ROLE", "admin"),
		ShutdownTimeout: dur("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	cfg.API = APIConfig{
		BaseURL: strings.TrimRight(req("PORTAL_API_BASE_URL"), "/"),
		Timeout: dur("PORTAL_API_TIMEOUT", 10*time.Second),
	}

	cfg.Session = SessionConfig{
		CookieName:   opt("SESSION_COOKIE_NAME", "jobalert_sid"),
		CookieSecure: flag("SESSION_COOKIE_SECURE", false),
		IdleTTL:      dur("SESSION_IDLE_TTL", 30*time.Minute),
		TokenTTL:     dur("SESSION_TOKEN_TTL", 7*24*time.Hour),
		SweepSpec:    opt("SESSION_SWEEP_SPEC", "@every 5m"),
	}

	cfg.Redis = RedisConfig{
		Enabled:  flag("REDIS_ENABLED", true),
		Host:     opt("REDIS_HOST", "localhost"),
		Port:     opt("REDIS_PORT", "6379"),
		Password: opt("REDIS_PASSWORD", ""),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errInvalidEnv, strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}
