package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenBlacklist remembers revoked refresh tokens by jti until they would have expired anyway.
type TokenBlacklist struct {
	rdb    *redis.Client
	prefix string
}

func NewTokenBlacklist(rdb *redis.Client, prefix string) *TokenBlacklist {
	return &TokenBlacklist{
		rdb:    rdb,
		prefix: prefix,
	}
}

func (b *TokenBlacklist) key(jti string) string {
	return fmt.Sprintf("%s:blacklist:%s", b.prefix, jti)
}

func (b *TokenBlacklist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	if err := b.rdb.Set(ctx, b.key(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("b.rdb.Set -> %w", err)
	}

	return nil
}

func (b *TokenBlacklist) Contains(ctx context.Context, jti string) (bool, error) {
	err := b.rdb.Get(ctx, b.key(jti)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("b.rdb.Get -> %w", err)
	}

	return true, nil
}
