// Package catalog is the registry of playable quizzes.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"personality-quiz/internal/domain"

	"golang.org/x/sync/singleflight"
)

// Loader fetches quiz definitions from a backing source.
type Loader interface {
	LoadQuizzes(ctx context.Context) ([]domain.Quiz, error)
}

// Catalog loads its quizzes once, on first use, and serves them read-only
// afterwards. Concurrent first callers share one load; a failed load is not
// remembered, so the next caller retries.
type Catalog struct {
	loader Loader
	sf     singleflight.Group

	mu      sync.RWMutex
	quizzes []domain.Quiz
	loaded  bool
}

func New(loader Loader) *Catalog {
	return &Catalog{loader: loader}
}

// List returns every quiz in loader order.
func (c *Catalog) List(ctx context.Context) ([]domain.Quiz, error) {
	quizzes, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Quiz, len(quizzes))
	copy(out, quizzes)
	return out, nil
}

// FindByID returns the quiz with the exact id.
func (c *Catalog) FindByID(ctx context.Context, id string) (domain.Quiz, error) {
	quizzes, err := c.all(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}
	for _, q := range quizzes {
		if q.ID == id {
			return q, nil
		}
	}
	return domain.Quiz{}, fmt.Errorf("%w: id %q", domain.ErrQuizNotFound, id)
}

// FindByTitle returns the first quiz whose title contains substr, ignoring case.
func (c *Catalog) FindByTitle(ctx context.Context, substr string) (domain.Quiz, error) {
	quizzes, err := c.all(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}
	needle := strings.ToLower(strings.TrimSpace(substr))
	if needle == "" {
		return domain.Quiz{}, fmt.Errorf("%w: empty title", domain.ErrQuizNotFound)
	}
	for _, q := range quizzes {
		if strings.Contains(strings.ToLower(q.Title), needle) {
			return q, nil
		}
	}
	return domain.Quiz{}, fmt.Errorf("%w: title %q", domain.ErrQuizNotFound, substr)
}

// Find resolves ref as an id first and a title substring second.
func (c *Catalog) Find(ctx context.Context, ref string) (domain.Quiz, error) {
	q, err := c.FindByID(ctx, ref)
	if err == nil {
		return q, nil
	}
	return c.FindByTitle(ctx, ref)
}

func (c *Catalog) all(ctx context.Context) ([]domain.Quiz, error) {
	c.mu.RLock()
	if c.loaded {
		quizzes := c.quizzes
		c.mu.RUnlock()
		return quizzes, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do("catalog", func() (interface{}, error) {
		// Re-check in case another caller finished loading meanwhile.
		c.mu.RLock()
		if c.loaded {
			quizzes := c.quizzes
			c.mu.RUnlock()
			return quizzes, nil
		}
		c.mu.RUnlock()

		quizzes, err := c.loader.LoadQuizzes(ctx)
		if err != nil {
			return nil, fmt.Errorf("load quizzes: %w", err)
		}
		if err := validateAll(quizzes); err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.quizzes = quizzes
		c.loaded = true
		c.mu.Unlock()
		return quizzes, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Quiz), nil
}

func validateAll(quizzes []domain.Quiz) error {
	seen := make(map[string]struct{}, len(quizzes))
	for _, q := range quizzes {
		if err := q.Validate(); err != nil {
			return err
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("%w: duplicate id %q", domain.ErrInvalidQuiz, q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	return nil
}

// StaticLoader serves a fixed list of quizzes (built-ins, tests, demos).
type StaticLoader struct {
	quizzes []domain.Quiz
}

func NewStaticLoader(quizzes ...domain.Quiz) *StaticLoader {
	return &StaticLoader{quizzes: quizzes}
}

func (l *StaticLoader) LoadQuizzes(_ context.Context) ([]domain.Quiz, error) {
	out := make([]domain.Quiz, len(l.quizzes))
	copy(out, l.quizzes)
	return out, nil
}
