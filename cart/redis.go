package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/junaidrashid-git/marketplace-client/models"
)

// Redis persists the cart as one JSON blob per profile key.
type Redis struct {
	rdb *redis.Client
	key string
}

func NewRedis(addr, profileKey string) *Redis {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})
	return &Redis{rdb: rdb, key: "cart:" + profileKey}
}

func (r *Redis) Load() ([]models.CartItem, error) {
	raw, err := r.rdb.Get(context.Background(), r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var items []models.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Redis) Save(items []models.CartItem) error {
	ctx := context.Background()
	if len(items) == 0 {
		return r.rdb.Del(ctx, r.key).Err()
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, r.key, raw, 0).Err()
}
