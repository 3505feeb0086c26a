package postgres

import (
	"context"
	"errors"
	"fmt"

	"personality-quiz/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// KV is a history.KV over the kv_store table. Update locks the row with
// SELECT ... FOR UPDATE so concurrent appends serialize.
type KV struct {
	pool *pgxpool.Pool
}

func NewKV(pool *pgxpool.Pool) *KV {
	return &KV{pool: pool}
}

func (s *KV) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM kv_store WHERE key=$1`, key).Scan(&value)
	if isNoRows(err) {
		return nil, domain.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("postgres get: %w", err)
	}
	return value, nil
}

func (s *KV) Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres begin: %w", err)
	}
	defer tx.Rollback(ctx)

	// A placeholder row gives FOR UPDATE something to lock on first write.
	var inserted bool
	err = tx.QueryRow(ctx, `
INSERT INTO kv_store (key, value) VALUES ($1, ''::bytea)
ON CONFLICT (key) DO NOTHING
RETURNING true`, key).Scan(&inserted)
	if err != nil && !isNoRows(err) {
		return fmt.Errorf("postgres reserve: %w", err)
	}

	var current []byte
	if err := tx.QueryRow(ctx, `SELECT value FROM kv_store WHERE key=$1 FOR UPDATE`, key).Scan(&current); err != nil {
		return fmt.Errorf("postgres lock: %w", err)
	}
	if inserted {
		current = nil
	}

	next, err := fn(current)
	if err != nil {
		return err
	}
	if next == nil {
		next = []byte{}
	}
	if _, err := tx.Exec(ctx, `UPDATE kv_store SET value=$2, updated_at=now() WHERE key=$1`, key, next); err != nil {
		return fmt.Errorf("postgres write: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres commit: %w", err)
	}
	return nil
}

func (s *KV) Delete(ctx context.Context, key string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM kv_store WHERE key=$1`, key); err != nil {
		return fmt.Errorf("postgres delete: %w", err)
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
