package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

type principalCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewPrincipalCache creates a Redis-backed cache for the per-request user
// lookup. The TTL is a safety net only; deactivation invalidates explicitly.
func NewPrincipalCache(client *redislib.Client, ttl time.Duration) repository.PrincipalCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &principalCache{
		client: client,
		prefix: "principal:",
		ttl:    ttl,
	}
}

func (c *principalCache) Get(ctx context.Context, userID string) (*domain.User, error) {
	result, err := c.client.Get(ctx, c.key(userID)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal([]byte(result), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *principalCache) Put(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(user.ID), payload, c.ttl).Err()
}

func (c *principalCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *principalCache) key(userID string) string {
	return fmt.Sprintf("%s%s", c.prefix, userID)
}
