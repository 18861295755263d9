package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"quote-storefront/internal/model"

	"github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore keeps each cart as a JSON document under cart:<owner>, refreshed
// on every write.
func NewRedisStore(client *redis.Client, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Items(ctx context.Context, ownerID string) ([]model.CartItem, error) {
	return readItems(ctx, s.client, cacheKey(ownerID))
}

// getter is satisfied by both *redis.Client and *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readItems(ctx context.Context, cmd getter, key string) ([]model.CartItem, error) {
	data, err := cmd.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []model.CartItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []model.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return items, nil
}

func (s *redisStore) Add(ctx context.Context, ownerID string, item model.CartItem) error {
	return s.update(ctx, ownerID, func(items []model.CartItem) ([]model.CartItem, error) {
		for _, existing := range items {
			if existing.ProductID == item.ProductID {
				return items, nil
			}
		}
		item.ID = 0
		item.OwnerID = ownerID
		if item.CreatedAt.IsZero() {
			item.CreatedAt = time.Now()
		}
		return append(items, item), nil
	})
}

func (s *redisStore) RemoveItem(ctx context.Context, ownerID, itemID string) error {
	return s.update(ctx, ownerID, func(items []model.CartItem) ([]model.CartItem, error) {
		for i, existing := range items {
			if existing.ProductID == itemID {
				return append(items[:i], items[i+1:]...), nil
			}
		}
		return nil, ErrNotFound
	})
}

func (s *redisStore) ClearCart(ctx context.Context, ownerID string) error {
	if err := s.client.Del(ctx, cacheKey(ownerID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (s *redisStore) ItemCount(ctx context.Context, ownerID string) (int, error) {
	items, err := s.Items(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// update runs a read-modify-write under WATCH so concurrent tabs of one visitor
// do not lose writes.
func (s *redisStore) update(ctx context.Context, ownerID string, fn func([]model.CartItem) ([]model.CartItem, error)) error {
	key := cacheKey(ownerID)

	txf := func(tx *redis.Tx) error {
		items, err := readItems(ctx, tx, key)
		if err != nil {
			return err
		}

		items, err = fn(items)
		if err != nil {
			return err
		}

		data, err := json.Marshal(items)
		if err != nil {
			return fmt.Errorf("marshal cart failed: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < 3; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil && !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("redis update failed: %w", err)
		}
		return err
	}
	return fmt.Errorf("redis update failed: too many concurrent writes")
}

func cacheKey(ownerID string) string {
	return fmt.Sprintf("cart:%s", ownerID)
}
