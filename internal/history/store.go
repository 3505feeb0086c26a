// Package history keeps the log of completed quiz results.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"personality-quiz/internal/domain"
)

// DefaultKey is the storage key the history blob lives under.
const DefaultKey = "quizHistoryKey"

// KV is the key-value storage the history blob is kept in.
type KV interface {
	// Get returns domain.ErrKeyNotFound when key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Update atomically replaces the value of key with fn(current). current
	// is nil when the key is absent.
	Update(ctx context.Context, key string, fn func(current []byte) ([]byte, error)) error
	// Delete removes key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Store is an append-only log of ResultRecords serialized as one JSON array.
type Store struct {
	kv  KV
	key string
}

func NewStore(kv KV, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{kv: kv, key: key}
}

// Load returns the log oldest first. Missing, unreadable or corrupt data
// yields an empty log; the failure is logged rather than returned.
func (s *Store) Load(ctx context.Context) []domain.ResultRecord {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, domain.ErrKeyNotFound) {
		return []domain.ResultRecord{}
	}
	if err != nil {
		log.Printf("history: read %s failed: %v", s.key, err)
		return []domain.ResultRecord{}
	}
	records, err := decode(raw)
	if err != nil {
		log.Printf("history: %s is corrupt, treating as empty: %v", s.key, err)
		return []domain.ResultRecord{}
	}
	return records
}

// Add appends record to the persisted log. A record whose id is already
// logged is not added again.
func (s *Store) Add(ctx context.Context, record domain.ResultRecord) error {
	err := s.kv.Update(ctx, s.key, func(current []byte) ([]byte, error) {
		records, err := decode(current)
		if err != nil {
			log.Printf("history: replacing corrupt %s: %v", s.key, err)
			records = nil
		}
		for _, r := range records {
			if r.ID == record.ID {
				return current, nil
			}
		}
		return encode(append(records, record))
	})
	if err != nil {
		return fmt.Errorf("add result: %w", err)
	}
	return nil
}

// Remove deletes the record with id, keeping the order of the others.
func (s *Store) Remove(ctx context.Context, id string) error {
	err := s.kv.Update(ctx, s.key, func(current []byte) ([]byte, error) {
		records, err := decode(current)
		if err != nil {
			return nil, err
		}
		kept := records[:0]
		found := false
		for _, r := range records {
			if r.ID == id {
				found = true
				continue
			}
			kept = append(kept, r)
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", domain.ErrResultNotFound, id)
		}
		return encode(kept)
	})
	if err != nil {
		return fmt.Errorf("remove result: %w", err)
	}
	return nil
}

// Clear deletes the persisted log.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	log.Printf("history: cleared %s", s.key)
	return nil
}

// MostRecentFirst returns a reversed copy of records.
func MostRecentFirst(records []domain.ResultRecord) []domain.ResultRecord {
	out := make([]domain.ResultRecord, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r
	}
	return out
}

// Recent is MostRecentFirst bounded to limit entries; limit <= 0 keeps all.
func Recent(records []domain.ResultRecord, limit int) []domain.ResultRecord {
	out := MostRecentFirst(records)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func decode(raw []byte) ([]domain.ResultRecord, error) {
	if len(raw) == 0 {
		return []domain.ResultRecord{}, nil
	}
	var records []domain.ResultRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []domain.ResultRecord{}
	}
	return records, nil
}

func encode(records []domain.ResultRecord) ([]byte, error) {
	if records == nil {
		records = []domain.ResultRecord{}
	}
	return json.Marshal(records)
}
