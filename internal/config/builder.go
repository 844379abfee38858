package config

import "time"

// Builder provides a fluent API for building Config instances.
type Builder struct {
	cfg *Config
}

// NewBuilder creates a new Builder with default values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: NewConfig(),
	}
}

// BuilderFrom starts from an existing Config, e.g. one read by Load.
// The builder modifies cfg in place.
func BuilderFrom(cfg *Config) *Builder {
	return &Builder{cfg: cfg}
}

// Build validates and returns the built Config.
func (b *Builder) Build() (*Config, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}
	return b.cfg, nil
}

// WithAddr sets the listen address.
func (b *Builder) WithAddr(addr string) *Builder {
	b.cfg.Server.Addr = addr
	return b
}

// WithAllowedOrigins sets the accepted websocket origins.
func (b *Builder) WithAllowedOrigins(origins ...string) *Builder {
	b.cfg.Server.AllowedOrigins = origins
	return b
}

// WithColumns sets the maximum line length.
func (b *Builder) WithColumns(columns int) *Builder {
	b.cfg.Output.Columns = columns
	return b
}

// KeepComments controls whether comments are kept.
func (b *Builder) KeepComments(keep bool) *Builder {
	b.cfg.Output.IncludeComments = keep
	return b
}

// KeepVariations controls whether variations are kept.
func (b *Builder) KeepVariations(keep bool) *Builder {
	b.cfg.Output.IncludeVariations = keep
	return b
}

// WithRedis selects the redis snapshot store.
func (b *Builder) WithRedis(addr string, db int) *Builder {
	b.cfg.Store.Backend = RedisBackend
	b.cfg.Store.RedisAddr = addr
	b.cfg.Store.RedisDB = db
	return b
}

// WithTTL sets how long snapshots are kept.
func (b *Builder) WithTTL(ttl time.Duration) *Builder {
	b.cfg.Store.TTL = ttl
	return b
}

// WithLogLevel sets the log level.
func (b *Builder) WithLogLevel(level string) *Builder {
	b.cfg.Log.Level = level
	return b
}
