// Package app wires the catalog, session engine and history together.
package app

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"personality-quiz/internal/domain"
	"personality-quiz/internal/history"
	"personality-quiz/internal/session"
)

// QuizCatalog supplies quiz definitions.
type QuizCatalog interface {
	List(ctx context.Context) ([]domain.Quiz, error)
	Find(ctx context.Context, ref string) (domain.Quiz, error)
}

// ResultLog persists completed results.
type ResultLog interface {
	Load(ctx context.Context) []domain.ResultRecord
	Add(ctx context.Context, record domain.ResultRecord) error
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

// Options tune how sessions are started.
type Options struct {
	RandomizeQuestions bool
	RandomizeAnswers   bool
	// Now and Rand are for deterministic tests; zero values use the defaults.
	Now  func() time.Time
	Rand *rand.Rand
}

// QuizService contains the quiz use cases.
type QuizService struct {
	catalog QuizCatalog
	results ResultLog
	opts    Options
}

func NewQuizService(catalog QuizCatalog, results ResultLog, opts Options) *QuizService {
	return &QuizService{catalog: catalog, results: results, opts: opts}
}

// Quizzes lists the available quizzes in catalog order.
func (s *QuizService) Quizzes(ctx context.Context) ([]domain.Quiz, error) {
	return s.catalog.List(ctx)
}

// Begin starts a fresh session for the quiz matching ref (id, then title
// substring). An empty ref picks the first quiz in the catalog.
func (s *QuizService) Begin(ctx context.Context, ref string) (*session.Engine, error) {
	quiz, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}

	var engineOpts []session.Option
	if s.opts.Now != nil {
		engineOpts = append(engineOpts, session.WithClock(s.opts.Now))
	}
	if s.opts.Rand != nil {
		engineOpts = append(engineOpts, session.WithRand(s.opts.Rand))
	}
	engine := session.New(engineOpts...)
	if err := engine.Start(quiz, s.opts.RandomizeQuestions, s.opts.RandomizeAnswers); err != nil {
		return nil, fmt.Errorf("start quiz %s: %w", quiz.ID, err)
	}
	return engine, nil
}

// Finish builds the result of a completed session and appends it to the
// history. When only persistence fails the record is still returned along
// with the error.
func (s *QuizService) Finish(ctx context.Context, engine *session.Engine) (domain.ResultRecord, error) {
	record, err := engine.Result()
	if err != nil {
		return domain.ResultRecord{}, err
	}
	if err := s.results.Add(ctx, record); err != nil {
		return record, err
	}
	return record, nil
}

// History returns saved results newest first; limit <= 0 returns all.
func (s *QuizService) History(ctx context.Context, limit int) []domain.ResultRecord {
	return history.Recent(s.results.Load(ctx), limit)
}

func (s *QuizService) ClearHistory(ctx context.Context) error {
	return s.results.Clear(ctx)
}

func (s *QuizService) RemoveResult(ctx context.Context, id string) error {
	return s.results.Remove(ctx, id)
}

func (s *QuizService) resolve(ctx context.Context, ref string) (domain.Quiz, error) {
	if ref != "" {
		return s.catalog.Find(ctx, ref)
	}
	quizzes, err := s.catalog.List(ctx)
	if err != nil {
		return domain.Quiz{}, err
	}
	if len(quizzes) == 0 {
		return domain.Quiz{}, domain.ErrQuizNotFound
	}
	return quizzes[0], nil
}
