package session

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"welcomehome/models"
)

const redisKeyPrefix = "welcomehome:session:"

// RedisBackend keeps sessions as Redis hashes.
type RedisBackend struct {
	client *redis.Client
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	if client == nil {
		panic("session.NewRedisBackend: client is nil")
	}
	return &RedisBackend{client: client}
}

func (b *RedisBackend) Load(ctx context.Context, lookupKey string) (models.Session, error) {
	vals, err := b.client.HGetAll(ctx, redisKeyPrefix+lookupKey).Result()
	if err != nil {
		return models.Session{}, err
	}
	sealed, ok := vals["sealed_token"]
	if !ok {
		return models.Session{}, ErrNotFound
	}
	sess := models.Session{LookupKey: lookupKey, SealedToken: []byte(sealed)}
	if raw, ok := vals["created_at"]; ok {
		if unix, err := strconv.ParseInt(raw, 10, 64); err == nil {
			sess.CreatedAt = time.Unix(0, unix).UTC()
		}
	}
	return sess, nil
}

func (b *RedisBackend) Save(ctx context.Context, s models.Session) error {
	return b.client.HSet(ctx, redisKeyPrefix+s.LookupKey,
		"sealed_token", s.SealedToken,
		"created_at", strconv.FormatInt(s.CreatedAt.UnixNano(), 10),
	).Err()
}

func (b *RedisBackend) Delete(ctx context.Context, lookupKey string) error {
	return b.client.Del(ctx, redisKeyPrefix+lookupKey).Err()
}
