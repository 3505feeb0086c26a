package migrations

import (
	"context"
	"encoding/json"
	"fmt"

	"personality-quiz/internal/catalog"

	"github.com/uptrace/bun"
)

// The built-in quizzes are seeded so a fresh database offers the same
// catalog as the builtin source. Existing rows are left alone.
func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			for i, quiz := range catalog.Builtin() {
				data, err := json.Marshal(quiz)
				if err != nil {
					return fmt.Errorf("encode quiz %s: %w", quiz.ID, err)
				}
				_, err = db.ExecContext(ctx,
					`INSERT INTO quizzes (id, position, data) VALUES (?, ?, ?::jsonb) ON CONFLICT (id) DO NOTHING`,
					quiz.ID, i, string(data))
				if err != nil {
					return fmt.Errorf("seed quiz %s: %w", quiz.ID, err)
				}
			}
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			ids := make([]string, 0, 2)
			for _, quiz := range catalog.Builtin() {
				ids = append(ids, quiz.ID)
			}
			_, err := db.ExecContext(ctx, `DELETE FROM quizzes WHERE id IN (?)`, bun.In(ids))
			return err
		},
	)
}
