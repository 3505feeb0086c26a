// Package postgres holds the Postgres-backed quiz source and history store.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"personality-quiz/internal/domain"

	"github.com/jackc/pgx/v4/pgxpool"
)

// QuizLoader loads quiz JSONB documents from the quizzes table.
type QuizLoader struct {
	pool *pgxpool.Pool
}

func NewQuizLoader(pool *pgxpool.Pool) *QuizLoader {
	return &QuizLoader{pool: pool}
}

// LoadQuizzes returns every stored quiz ordered by position, then id.
func (l *QuizLoader) LoadQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	rows, err := l.pool.Query(ctx, `SELECT id, data FROM quizzes ORDER BY position, id`)
	if err != nil {
		return nil, fmt.Errorf("load quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []domain.Quiz
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		var quiz domain.Quiz
		if err := json.Unmarshal(raw, &quiz); err != nil {
			return nil, fmt.Errorf("unmarshal quiz %s: %w", id, err)
		}
		if quiz.ID == "" {
			quiz.ID = id
		}
		if quiz.Theme == "" {
			quiz.Theme = domain.ThemeAnimal
		}
		quizzes = append(quizzes, quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load quizzes: %w", err)
	}
	return quizzes, nil
}
