package redis

import (
	"context"
	"errors"
	"fmt"

	"personality-quiz/internal/domain"

	"github.com/redis/go-redis/v9"
)

// maxTxRetries bounds optimistic retries when another writer touches the
// key between WATCH and EXEC.
const maxTxRetries = 50

// ErrTooManyConflicts is returned when an update keeps losing the WATCH race.
var ErrTooManyConflicts = errors.New("redis: too many concurrent updates")

// KV stores history blobs as plain Redis strings:
//
//	SET {prefix}{key} <json>
//
// Updates run as WATCH/MULTI/EXEC so concurrent read-modify-write cycles
// never lose an append.
type KV struct {
	client *redis.Client
	prefix string
}

func NewKV(client *redis.Client, prefix string) *KV {
	return &KV{client: client, prefix: prefix}
}

func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return value, nil
}

func (s *KV) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	k := s.key(key)
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			current = nil
		} else if err != nil {
			return err
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, k, next, 0)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, txf, k)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrTooManyConflicts
}

func (s *KV) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (s *KV) key(key string) string {
	return s.prefix + key
}
