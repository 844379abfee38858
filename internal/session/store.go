package session

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/jromang/picochess/internal/config"
)

// Store keeps session snapshots between restarts.
type Store interface {
	Save(ctx context.Context, snap Snapshot) error
	// Load fails with ErrSessionNotFound for unknown or expired ids.
	Load(ctx context.Context, id string) (Snapshot, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewStore opens the backend selected by cfg.
func NewStore(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	if cfg.Backend == config.RedisBackend {
		return NewRedisStore(ctx, &redis.Options{
			Addr: cfg.RedisAddr,
			DB:   cfg.RedisDB,
		}, cfg.TTL)
	}
	return NewMemoryStore(0), nil
}
