package session

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"
	"github.com/redis/go-redis/v9"

	"github.com/jromang/picochess/internal/errors"
)

// KeyPrefix namespaces snapshot keys in redis.
const KeyPrefix = "picoweb:session:"

// RedisStore keeps zstd-compressed JSON snapshots in redis.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	codec  *codec
}

// NewRedisStore connects to redis and checks the connection. A zero ttl
// keeps snapshots forever.
func NewRedisStore(ctx context.Context, opts *redis.Options, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(opts)

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctxPing).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis at %s: %w", opts.Addr, err)
	}
	return newRedisStore(client, ttl, newCodec)
}

// newRedisStore takes ownership of client: it is closed when the store
// cannot be built.
func newRedisStore(client *redis.Client, ttl time.Duration, mkCodec func() (*codec, error)) (*RedisStore, error) {
	c, err := mkCodec()
	if err != nil {
		client.Close()
		return nil, err
	}
	return &RedisStore{client: client, ttl: ttl, codec: c}, nil
}

func key(id string) string {
	return KeyPrefix + id
}

// Save stores snap for the configured ttl.
func (r *RedisStore) Save(ctx context.Context, snap Snapshot) error {
	blob, err := r.codec.encode(snap)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key(snap.ID), blob, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", snap.ID, err)
	}
	return nil
}

// Load returns the snapshot stored under id.
func (r *RedisStore) Load(ctx context.Context, id string) (Snapshot, error) {
	blob, err := r.client.Get(ctx, key(id)).Bytes()
	if err != nil {
		if stderrors.Is(err, redis.Nil) {
			return Snapshot{}, fmt.Errorf("%s: %w", id, errors.ErrSessionNotFound)
		}
		return Snapshot{}, fmt.Errorf("load session %s: %w", id, err)
	}
	return r.codec.decode(blob)
}

// Delete removes id.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// Close releases the connection pool and the codec.
func (r *RedisStore) Close() error {
	r.codec.close()
	return r.client.Close()
}

// codec turns snapshots into compressed blobs and back.
type codec struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func newCodec() (*codec, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &codec{encoder: encoder, decoder: decoder}, nil
}

func (c *codec) encode(snap Snapshot) ([]byte, error) {
	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode session %s: %w", snap.ID, err)
	}
	return c.encoder.EncodeAll(raw, nil), nil
}

func (c *codec) decode(blob []byte) (Snapshot, error) {
	raw, err := c.decoder.DecodeAll(blob, nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("decompress session: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode session: %w", err)
	}
	return snap, nil
}

func (c *codec) close() {
	c.encoder.Close()
	c.decoder.Close()
}
