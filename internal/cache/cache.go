package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	applog "wardrobe/internal/log"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Store caches JSON-encoded values. Get reports false on a miss.
type Store interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

type Options struct {
	URL      string
	Addr     string
	Password string
	TTL      time.Duration
}

// New connects to Redis when URL or Addr is set. Without either, or when Redis does
// not answer a ping, it returns a Nop store and the service runs uncached.
func New(ctx context.Context, o Options) Store {
	if o.URL == "" && o.Addr == "" {
		return Nop{}
	}
	var opt *redis.Options
	if o.URL != "" {
		parsed, err := redis.ParseURL(o.URL)
		if err != nil {
			applog.L().Warn("cache.disabled", zap.String("reason", "bad REDIS_URL"), zap.Error(err))
			return Nop{}
		}
		opt = parsed
	} else {
		opt = &redis.Options{Addr: o.Addr, Password: o.Password}
	}

	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		applog.L().Warn("cache.disabled", zap.String("addr", opt.Addr), zap.Error(err))
		_ = client.Close()
		return Nop{}
	}
	applog.L().Info("cache.connected", zap.String("addr", opt.Addr))
	return NewRedis(client, o.TTL)
}

type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) Get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) Set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, raw, r.ttl).Err()
}

func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *Redis) Close() error { return r.client.Close() }

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Nop) Set(context.Context, string, any) error         { return nil }
func (Nop) Delete(context.Context, ...string) error        { return nil }
func (Nop) Close() error                                   { return nil }

func ProductKey(id string) string { return "product:" + id }
