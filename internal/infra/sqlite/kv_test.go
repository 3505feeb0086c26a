package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"personality-quiz/internal/domain"
)

func openTestKV(t *testing.T) (*KV, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	kv, err := Open(path)
	if err != nil {
		t.Fatalf("open test kv: %v", err)
	}
	t.Cleanup(func() { kv.Close() })
	return kv, path
}

func TestKVLifecycle(t *testing.T) {
	kv, _ := openTestKV(t)
	ctx := context.Background()

	if _, err := kv.Get(ctx, "k"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	err := kv.Update(ctx, "k", func(current []byte) ([]byte, error) {
		if current != nil {
			t.Fatalf("expected nil current, got %q", current)
		}
		return []byte("one"), nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	err = kv.Update(ctx, "k", func(current []byte) ([]byte, error) {
		return append(current, []byte(",two")...), nil
	})
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	got, err := kv.Get(ctx, "k")
	if err != nil || string(got) != "one,two" {
		t.Fatalf("expected one,two, got %q err=%v", got, err)
	}

	if err := kv.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := kv.Get(ctx, "k"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected key removed, got %v", err)
	}
}

func TestKVSurvivesReopen(t *testing.T) {
	kv, path := openTestKV(t)
	ctx := context.Background()
	if err := kv.Update(ctx, "k", func([]byte) ([]byte, error) { return []byte("persisted"), nil }); err != nil {
		t.Fatalf("update: %v", err)
	}
	kv.Close()

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get(ctx, "k")
	if err != nil || string(got) != "persisted" {
		t.Fatalf("expected persisted, got %q err=%v", got, err)
	}
}

func TestKVUpdateErrorRollsBack(t *testing.T) {
	kv, _ := openTestKV(t)
	ctx := context.Background()
	_ = kv.Update(ctx, "k", func([]byte) ([]byte, error) { return []byte("keep"), nil })

	boom := errors.New("boom")
	if err := kv.Update(ctx, "k", func([]byte) ([]byte, error) { return nil, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	got, _ := kv.Get(ctx, "k")
	if string(got) != "keep" {
		t.Fatalf("expected value untouched, got %q", got)
	}
}

func TestKVJournalMode(t *testing.T) {
	kv, _ := openTestKV(t)
	var mode string
	if err := kv.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Fatalf("journal_mode = %q, want wal", mode)
	}
}

func TestKVConcurrentUpdates(t *testing.T) {
	kv, _ := openTestKV(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := kv.Update(ctx, "k", func(current []byte) ([]byte, error) {
				return append(current, 'x'), nil
			}); err != nil {
				t.Errorf("update: %v", err)
			}
		}()
	}
	wg.Wait()

	got, _ := kv.Get(ctx, "k")
	if len(got) != 20 {
		t.Fatalf("expected 20 appends, got %d", len(got))
	}
}
