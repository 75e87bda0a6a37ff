package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix  = "suggest"
	defaultMaxSize = 512
	defaultTTL     = 6 * time.Hour
)

// Key hashes the parts of a prompt into a fixed-size cache key.
func Key(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

type Config struct {
	// Prefix namespaces keys as "prefix:namespace:key". Default "suggest".
	Prefix string
	// TTL bounds how long a generated answer is reused. Default 6h.
	TTL time.Duration
	// MaxSize caps the in-process cache. Default 512 entries.
	MaxSize int
}

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.Prefix) == "" {
		c.Prefix = defaultPrefix
	}
	if c.TTL <= 0 {
		c.TTL = defaultTTL
	}
	if c.MaxSize <= 0 {
		c.MaxSize = defaultMaxSize
	}
	return c
}

// RedisCache stores generated content in Redis.
type RedisCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisCache(client redis.UniversalClient, cfg Config) *RedisCache {
	cfg = cfg.withDefaults()
	return &RedisCache{client: client, prefix: cfg.Prefix, ttl: cfg.TTL}
}

func (r *RedisCache) key(namespace, key string) string {
	return fmt.Sprintf("%s:%s:%s", r.prefix, namespace, key)
}

func (r *RedisCache) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.key(namespace, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return val, true, nil
}

func (r *RedisCache) Set(ctx context.Context, namespace, key, value string) error {
	if err := r.client.Set(ctx, r.key(namespace, key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

type entry struct {
	value    string
	storedAt time.Time
}

// LRUCache is the in-process cache used when Redis is not configured.
type LRUCache struct {
	cache *lru.Cache[string, entry]
	ttl   time.Duration
	now   func() time.Time
}

func NewLRUCache(cfg Config) (*LRUCache, error) {
	cfg = cfg.withDefaults()
	c, err := lru.New[string, entry](cfg.MaxSize)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}
	return &LRUCache{cache: c, ttl: cfg.TTL, now: time.Now}, nil
}

func (l *LRUCache) Get(_ context.Context, namespace, key string) (string, bool, error) {
	k := namespace + ":" + key
	e, ok := l.cache.Get(k)
	if !ok {
		return "", false, nil
	}
	if l.now().Sub(e.storedAt) >= l.ttl {
		l.cache.Remove(k)
		return "", false, nil
	}
	return e.value, true, nil
}

func (l *LRUCache) Set(_ context.Context, namespace, key, value string) error {
	l.cache.Add(namespace+":"+key, entry{value: value, storedAt: l.now()})
	return nil
}
