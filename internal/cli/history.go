package cli

import (
	"context"
	"fmt"

	"personality-quiz/internal/app"
	"personality-quiz/internal/domain"

	"github.com/spf13/cobra"
)

// NewHistoryCmd shows and manages saved results.
func NewHistoryCmd(configPath *string) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show past results, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps(cmd.Context(), *configPath, app.Options{})
			if err != nil {
				return err
			}
			defer d.close()

			if !cmd.Flags().Changed("limit") {
				limit = d.cfg.History.Limit
			}
			records := d.service.History(cmd.Context(), limit)
			out := cmd.OutOrStdout()
			if len(records) == 0 {
				fmt.Fprintln(out, "No results yet.")
				return nil
			}
			themes := quizThemes(cmd.Context(), d.service)
			for _, r := range records {
				fmt.Fprintf(out, "%s  %s %s  %s  (%s)  %s\n",
					r.FormattedDate(), r.QuizEmoji, r.QuizTitle, r.Headline(themes[r.QuizTitle]), r.FormattedDuration(), r.ID)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many results (0 for all)")
	cmd.AddCommand(newHistoryClearCmd(configPath), newHistoryRemoveCmd(configPath))
	return cmd
}

func newHistoryClearCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all saved results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps(cmd.Context(), *configPath, app.Options{})
			if err != nil {
				return err
			}
			defer d.close()
			if err := d.service.ClearHistory(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
}

func newHistoryRemoveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete one saved result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := loadDeps(cmd.Context(), *configPath, app.Options{})
			if err != nil {
				return err
			}
			defer d.close()
			if err := d.service.RemoveResult(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", args[0])
			return nil
		},
	}
}

// quizThemes maps quiz titles to their theme. Records only carry the title,
// so results from quizzes no longer in the catalog fall back to animal.
func quizThemes(ctx context.Context, service *app.QuizService) map[string]domain.Theme {
	themes := make(map[string]domain.Theme)
	quizzes, err := service.Quizzes(ctx)
	if err != nil {
		return themes
	}
	for _, q := range quizzes {
		themes[q.Title] = q.Theme
	}
	return themes
}
