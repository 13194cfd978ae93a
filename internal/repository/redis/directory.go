package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/medbook/booking-api/internal/config"
	"github.com/medbook/booking-api/internal/model"
	"github.com/medbook/booking-api/internal/repository"
)

// NewClient creates the redis client used by the directory cache.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// CachedDirectory is a read-through cache in front of a UserDirectory.
// Directory records are slow-moving (role, verification flag), so a
// short TTL is the only invalidation. Cache failures fall through to
// the underlying directory; they never fail a request.
type CachedDirectory struct {
	next   repository.UserDirectory
	client *redis.Client
	ttl    time.Duration
}

func NewCachedDirectory(next repository.UserDirectory, client *redis.Client, ttl time.Duration) *CachedDirectory {
	return &CachedDirectory{
		next:   next,
		client: client,
		ttl:    ttl,
	}
}

func (d *CachedDirectory) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	key := fmt.Sprintf("directory:user:%s", id)

	if data, err := d.client.Get(ctx, key).Bytes(); err == nil {
		var user model.User
		if err := json.Unmarshal(data, &user); err == nil {
			return &user, nil
		}
	} else if err != redis.Nil {
		log.Warn().Err(err).Msg("directory cache read failed")
	}

	user, err := d.next.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(user); err == nil {
		if err := d.client.Set(ctx, key, data, d.ttl).Err(); err != nil {
			log.Warn().Err(err).Msg("directory cache write failed")
		}
	}

	return user, nil
}
