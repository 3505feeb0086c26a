package cli

import (
	"fmt"

	"personality-quiz/internal/app"

	"github.com/spf13/cobra"
)

// NewQuizzesCmd lists the quizzes the configured source provides.
func NewQuizzesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "quizzes",
		Short: "List available quizzes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps(cmd.Context(), *configPath, app.Options{})
			if err != nil {
				return err
			}
			defer d.close()

			quizzes, err := d.service.Quizzes(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, q := range quizzes {
				fmt.Fprintf(out, "%s  %s %s (%d questions)\n", q.ID, q.Emoji, q.Title, len(q.Questions))
			}
			return nil
		},
	}
}
