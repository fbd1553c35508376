package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/entities"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultTTL = 24 * time.Hour
	keyPrefix  = "idempotency:order:"
	// pending значение ключа, пока заказ создается
	pending = "pending"
)

var ErrInProgress = fmt.Errorf("%w: request with this idempotency key is in progress", entities.ErrConflict)

// Store ключ Idempotency-Key -> id созданного заказа.
type Store struct {
	client redisClient
	ttl    time.Duration
}

func New(client redisClient, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Reserve занимает ключ до создания заказа. Пустая строка: ключ теперь наш.
// Иначе id заказа, созданного с этим ключом раньше.
// Пока первый запрос не закончил, возвращается ErrInProgress.
func (s *Store) Reserve(ctx context.Context, key string) (string, error) {
	reserved, err := s.client.SetNX(ctx, keyPrefix+key, pending, s.ttl).Result()
	if err != nil {
		return "", fmt.Errorf("%w: redis setnx: %w", entities.ErrStoreUnavailable, err)
	}
	if reserved {
		return "", nil
	}

	orderID, err := s.client.Get(ctx, keyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		// истек или освобожден между SETNX и GET
		return "", ErrInProgress
	}
	if err != nil {
		return "", fmt.Errorf("%w: redis get: %w", entities.ErrStoreUnavailable, err)
	}
	if orderID == pending {
		return "", ErrInProgress
	}
	return orderID, nil
}

// Complete записывает id созданного заказа поверх резерва.
func (s *Store) Complete(ctx context.Context, key string, orderID string) error {
	if err := s.client.Set(ctx, keyPrefix+key, orderID, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: redis set: %w", entities.ErrStoreUnavailable, err)
	}
	return nil
}

// Release снимает резерв, если заказ так и не создался.
func (s *Store) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("%w: redis del: %w", entities.ErrStoreUnavailable, err)
	}
	return nil
}
