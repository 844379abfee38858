// Package config holds the picoweb server configuration.
package config

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/jromang/picochess/internal/errors"
)

// Store backends.
const (
	MemoryBackend = "memory"
	RedisBackend  = "redis"
)

// Config holds all program configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Output OutputConfig `mapstructure:"output"`
	Store  StoreConfig  `mapstructure:"store"`
	Log    LogConfig    `mapstructure:"log"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`

	// AllowedOrigins lists the origins accepted on the websocket. "*"
	// accepts any origin; an empty list only accepts same-origin requests.
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// StoreConfig selects where session snapshots are kept.
type StoreConfig struct {
	Backend   string        `mapstructure:"backend"`
	RedisAddr string        `mapstructure:"redis_addr"`
	RedisDB   int           `mapstructure:"redis_db"`
	TTL       time.Duration `mapstructure:"ttl"`
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
		},
		Output: *NewOutputConfig(),
		Store: StoreConfig{
			Backend:   MemoryBackend,
			RedisAddr: "localhost:6379",
			TTL:       24 * time.Hour,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("%w: server address is empty", errors.ErrInvalidConfig)
	}
	if err := c.Output.Validate(); err != nil {
		return err
	}
	switch c.Store.Backend {
	case MemoryBackend:
	case RedisBackend:
		if c.Store.RedisAddr == "" {
			return fmt.Errorf("%w: redis backend needs an address", errors.ErrInvalidConfig)
		}
		if c.Store.RedisDB < 0 {
			return fmt.Errorf("%w: redis db %d", errors.ErrInvalidConfig, c.Store.RedisDB)
		}
	default:
		return fmt.Errorf("%w: unknown store backend %q", errors.ErrInvalidConfig, c.Store.Backend)
	}
	if c.Store.TTL < 0 {
		return fmt.Errorf("%w: negative store ttl %s", errors.ErrInvalidConfig, c.Store.TTL)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level: %v", errors.ErrInvalidConfig, err)
	}
	return nil
}

// OriginAllowed reports whether a websocket origin is accepted. The
// second result is false when no origin list is configured.
func (s ServerConfig) OriginAllowed(origin string) (allowed, configured bool) {
	if len(s.AllowedOrigins) == 0 {
		return false, false
	}
	for _, o := range s.AllowedOrigins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true, true
		}
	}
	return false, true
}
