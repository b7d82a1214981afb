package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	derr "github.com/qamar62/st-booking/internal/domain/errors"
	"github.com/qamar62/st-booking/internal/domain/models"
	"github.com/redis/go-redis/v9"
)

// TokenCacheRepository keeps issued bearer tokens until shortly before their
// expiry. It never stores tour data; tours are always fetched fresh.
type TokenCacheRepository struct {
	redis *redis.Client
}

func NewTokenCacheRepository(redisClient *redis.Client) *TokenCacheRepository {
	return &TokenCacheRepository{redis: redisClient}
}

func (r *TokenCacheRepository) Get(ctx context.Context, username string) (models.Token, error) {
	data, err := r.redis.Get(ctx, tokenKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Token{}, derr.ErrTokenNotCached
		}
		return models.Token{}, fmt.Errorf("redis get token: %w", err)
	}

	var token models.Token
	if err := json.Unmarshal([]byte(data), &token); err != nil {
		return models.Token{}, fmt.Errorf("unmarshal cached token: %w", err)
	}

	return token, nil
}

func (r *TokenCacheRepository) Set(ctx context.Context, username string, token models.Token, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshal token for cache: %w", err)
	}

	if err := r.redis.Set(ctx, tokenKey(username), data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set token: %w", err)
	}

	return nil
}

func tokenKey(username string) string {
	return fmt.Sprintf("tourapi:token:%s", username)
}
