// Package config resolves the link tracker settings. Later sources win:
// defaults, the JSON config file, environment variables (a .env file in the
// working directory is loaded first) and command-line flags.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Options holds the configuration values for the application.
type Options struct {
	// ServerAddress is the HTTP listen address (ip:port).
	ServerAddress string

	// GRPCPort is the gRPC listen port. Zero disables the gRPC server.
	GRPCPort int

	// BaseURL prefixes the shareable view URLs.
	BaseURL string

	// DatabaseDSN selects the Postgres backend when set.
	DatabaseDSN string

	// SQLitePath selects the SQLite backend when set and DatabaseDSN is empty.
	SQLitePath string

	// RedisURL points at the session revocation cache. Empty keeps it in memory.
	RedisURL string

	JWTSecret  string
	SessionTTL time.Duration

	// Timezone names the zone in which dashboard days start.
	Timezone string

	// TrustedSubnet guards the internal stats endpoints (CIDR).
	TrustedSubnet string

	EnableHTTPS bool
	EnablePprof bool

	// AsyncViews hands views to the background batch writer.
	AsyncViews        bool
	ViewFlushInterval time.Duration

	RateLimitRPS   float64
	RateLimitBurst int

	LogLevel string

	// Config is the path of the JSON config file.
	Config string
}

// Default returns the built-in settings.
func Default() *Options {
	return &Options{
		ServerAddress:     "localhost:8080",
		GRPCPort:          3200,
		BaseURL:           "http://localhost:8080",
		SessionTTL:        24 * time.Hour,
		Timezone:          "UTC",
		ViewFlushInterval: 2 * time.Second,
		RateLimitRPS:      5,
		RateLimitBurst:    20,
		LogLevel:          "info",
	}
}

// setting ties one option to its flag, environment variable and JSON key.
type setting struct {
	flag  string
	short string
	env   string
	key   string
	usage string
	apply func(o *Options, raw string) error
}

func str(dst func(o *Options) *string) func(*Options, string) error {
	return func(o *Options, raw string) error {
		*dst(o) = raw
		return nil
	}
}

func boolean(dst func(o *Options) *bool) func(*Options, string) error {
	return func(o *Options, raw string) error {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		*dst(o) = v
		return nil
	}
}

func integer(dst func(o *Options) *int) func(*Options, string) error {
	return func(o *Options, raw string) error {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return err
		}
		*dst(o) = v
		return nil
	}
}

func float(dst func(o *Options) *float64) func(*Options, string) error {
	return func(o *Options, raw string) error {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		*dst(o) = v
		return nil
	}
}

func duration(dst func(o *Options) *time.Duration) func(*Options, string) error {
	return func(o *Options, raw string) error {
		v, err := time.ParseDuration(raw)
		if err != nil {
			return err
		}
		*dst(o) = v
		return nil
	}
}

var settings = []setting{
	{flag: "address", short: "a", env: "SERVER_ADDRESS", key: "server_address", usage: "run on ip:port server",
		apply: str(func(o *Options) *string { return &o.ServerAddress })},
	{flag: "grpc-port", env: "GRPC_PORT", key: "grpc_port", usage: "gRPC port, 0 disables gRPC",
		apply: integer(func(o *Options) *int { return &o.GRPCPort })},
	{flag: "base-url", short: "b", env: "BASE_URL", key: "base_url", usage: "base url of view links",
		apply: str(func(o *Options) *string { return &o.BaseURL })},
	{flag: "database-dsn", short: "d", env: "DATABASE_DSN", key: "database_dsn", usage: "postgres dsn",
		apply: str(func(o *Options) *string { return &o.DatabaseDSN })},
	{flag: "sqlite-path", short: "f", env: "SQLITE_PATH", key: "sqlite_path", usage: "path to sqlite file",
		apply: str(func(o *Options) *string { return &o.SQLitePath })},
	{flag: "redis-url", env: "REDIS_URL", key: "redis_url", usage: "redis url for session revocation",
		apply: str(func(o *Options) *string { return &o.RedisURL })},
	{flag: "jwt-secret", env: "JWT_SECRET", key: "jwt_secret", usage: "session signing secret",
		apply: str(func(o *Options) *string { return &o.JWTSecret })},
	{flag: "session-ttl", env: "SESSION_TTL", key: "session_ttl", usage: "session lifetime",
		apply: duration(func(o *Options) *time.Duration { return &o.SessionTTL })},
	{flag: "timezone", env: "TIMEZONE", key: "timezone", usage: "dashboard timezone",
		apply: str(func(o *Options) *string { return &o.Timezone })},
	{flag: "trusted-subnet", short: "t", env: "TRUSTED_SUBNET", key: "trusted_subnet", usage: "CIDR allowed to read internal stats",
		apply: str(func(o *Options) *string { return &o.TrustedSubnet })},
	{flag: "https", short: "s", env: "ENABLE_HTTPS", key: "enable_https", usage: "enable https",
		apply: boolean(func(o *Options) *bool { return &o.EnableHTTPS })},
	{flag: "pprof", short: "p", env: "ENABLE_PPROF", key: "enable_pprof", usage: "enable pprof",
		apply: boolean(func(o *Options) *bool { return &o.EnablePprof })},
	{flag: "async-views", env: "ASYNC_VIEWS", key: "async_views", usage: "record views in background batches",
		apply: boolean(func(o *Options) *bool { return &o.AsyncViews })},
	{flag: "view-flush-interval", env: "VIEW_FLUSH_INTERVAL", key: "view_flush_interval", usage: "batch flush interval",
		apply: duration(func(o *Options) *time.Duration { return &o.ViewFlushInterval })},
	{flag: "rate-limit-rps", env: "RATE_LIMIT_RPS", key: "rate_limit_rps", usage: "requests per second per client",
		apply: float(func(o *Options) *float64 { return &o.RateLimitRPS })},
	{flag: "rate-limit-burst", env: "RATE_LIMIT_BURST", key: "rate_limit_burst", usage: "burst per client",
		apply: integer(func(o *Options) *int { return &o.RateLimitBurst })},
	{flag: "log-level", short: "l", env: "LOG_LEVEL", key: "log_level", usage: "log level",
		apply: str(func(o *Options) *string { return &o.LogLevel })},
	{flag: "config", short: "c", env: "CONFIG", usage: "path to JSON config file",
		apply: str(func(o *Options) *string { return &o.Config })},
}

// RegisterFlags adds every option to flags. Defaults shown in help come from Default.
func RegisterFlags(flags *pflag.FlagSet) {
	d := Default()

	for _, s := range settings {
		switch s.flag {
		case "https", "pprof", "async-views":
			flags.BoolP(s.flag, s.short, false, s.usage)
		case "grpc-port":
			flags.IntP(s.flag, s.short, d.GRPCPort, s.usage)
		case "rate-limit-burst":
			flags.IntP(s.flag, s.short, d.RateLimitBurst, s.usage)
		case "rate-limit-rps":
			flags.Float64P(s.flag, s.short, d.RateLimitRPS, s.usage)
		case "session-ttl":
			flags.DurationP(s.flag, s.short, d.SessionTTL, s.usage)
		case "view-flush-interval":
			flags.DurationP(s.flag, s.short, d.ViewFlushInterval, s.usage)
		default:
			flags.StringP(s.flag, s.short, "", s.usage)
		}
	}
}

// Load resolves the options. flags may be nil; otherwise only flags the user set
// override the lower layers.
func Load(flags *pflag.FlagSet) (*Options, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	o := Default()

	o.Config = os.Getenv("CONFIG")
	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Changed {
			o.Config = f.Value.String()
		}
	}

	if o.Config != "" {
		if err := applyFile(o, o.Config); err != nil {
			return nil, err
		}
	}

	for _, s := range settings {
		raw, ok := os.LookupEnv(s.env)
		if !ok || raw == "" {
			continue
		}
		if err := s.apply(o, raw); err != nil {
			return nil, fmt.Errorf("env %s: %w", s.env, err)
		}
	}

	if flags != nil {
		for _, s := range settings {
			f := flags.Lookup(s.flag)
			if f == nil || !f.Changed {
				continue
			}
			if err := s.apply(o, f.Value.String()); err != nil {
				return nil, fmt.Errorf("flag --%s: %w", s.flag, err)
			}
		}
	}

	if err := o.validate(); err != nil {
		return nil, err
	}

	return o, nil
}

// applyFile reads a JSON object whose keys are the settings' json names.
// Durations are written as strings ("90s").
func applyFile(o *Options, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file %s not found", path)
		}
		return err
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal(content, &values); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	for _, s := range settings {
		if s.key == "" {
			continue
		}
		raw, ok := values[s.key]
		if !ok {
			continue
		}

		text := string(raw)
		var quoted string
		if err := json.Unmarshal(raw, &quoted); err == nil {
			text = quoted
		}

		if err := s.apply(o, strings.TrimSpace(text)); err != nil {
			return fmt.Errorf("config %s: %s: %w", path, s.key, err)
		}
	}

	return nil
}

func (o *Options) validate() error {
	if _, err := time.LoadLocation(o.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", o.Timezone, err)
	}
	if o.SessionTTL <= 0 {
		return fmt.Errorf("session ttl must be positive, got %s", o.SessionTTL)
	}
	if o.RateLimitRPS <= 0 || o.RateLimitBurst <= 0 {
		return errors.New("rate limit must be positive")
	}
	o.BaseURL = strings.TrimRight(o.BaseURL, "/")
	return nil
}

// Location returns the dashboard timezone. Load rejects unknown zones, so the
// UTC fallback only applies to Options built by hand.
func (o *Options) Location() *time.Location {
	loc, err := time.LoadLocation(o.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
