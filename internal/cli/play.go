package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"personality-quiz/internal/app"
	"personality-quiz/internal/config"
	"personality-quiz/internal/domain"
	"personality-quiz/internal/scoring"
	"personality-quiz/internal/session"

	"github.com/spf13/cobra"
)

var errInputClosed = errors.New("input closed before the quiz finished")

// NewPlayCmd runs one quiz session on stdin/stdout.
func NewPlayCmd(configPath *string) *cobra.Command {
	var (
		timer    string
		shuffleQ bool
		shuffleA bool
	)
	cmd := &cobra.Command{
		Use:   "play [quiz]",
		Short: "Take a quiz (by id or part of its title)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			opts := app.Options{RandomizeQuestions: shuffleQ, RandomizeAnswers: shuffleA}
			return runPlay(cmd.Context(), cmd, *configPath, ref, timer, opts)
		},
	}
	cmd.Flags().StringVar(&timer, "timer", "", "per-question time limit, e.g. 30s (default from config, off when empty)")
	cmd.Flags().BoolVar(&shuffleQ, "shuffle-questions", false, "randomize question order")
	cmd.Flags().BoolVar(&shuffleA, "shuffle-answers", false, "randomize answer order")
	return cmd
}

func runPlay(ctx context.Context, cmd *cobra.Command, configPath, ref, timerFlag string, opts app.Options) error {
	d, err := loadDeps(ctx, configPath, opts)
	if err != nil {
		return err
	}
	defer d.close()

	if timerFlag == "" {
		timerFlag = d.cfg.Quiz.Timer
	}
	limit, err := config.ParseTimer(timerFlag)
	if err != nil {
		return err
	}

	engine, err := d.service.Begin(ctx, ref)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	out := cmd.OutOrStdout()
	p := newPlayer(ctx, cmd.InOrStdin(), out)
	if err := p.play(ctx, engine, limit); err != nil {
		return err
	}

	record, err := d.service.Finish(ctx, engine)
	if errors.Is(err, scoring.ErrNoAnswers) {
		fmt.Fprintln(out, "No answers were given, so there is nothing to score.")
		return nil
	}
	if err != nil && record.ID == "" {
		return err
	}
	printResult(out, engine, record)
	if err != nil {
		log.Printf("result not saved: %v", err)
	}
	return nil
}

type player struct {
	lines <-chan string
	out   io.Writer
}

func newPlayer(ctx context.Context, in io.Reader, out io.Writer) *player {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return &player{lines: lines, out: out}
}

// play drives engine until it completes. With limit > 0 each question gets
// a countdown and unanswered questions are skipped when it runs out.
func (p *player) play(ctx context.Context, engine *session.Engine, limit time.Duration) error {
	submit := engine.Submit
	var (
		timed *session.Timed
		ticks <-chan session.Tick
	)
	if limit > 0 {
		timed = session.NewTimed(engine, session.NewCountdown(limit, tickInterval(limit)))
		defer timed.Stop()
		submit = timed.Submit
		ticks = timed.Events()
		fmt.Fprintf(p.out, "You have %s per question.\n", limit)
		timed.Begin()
	}

	p.prompt(engine)
	for engine.State() == session.StateInProgress {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-p.lines:
			if !ok {
				return errInputClosed
			}
			q, err := engine.CurrentQuestion()
			if err != nil {
				return err
			}
			resp, err := parseResponse(q, line)
			if err == nil {
				err = submit(resp)
			}
			if err != nil {
				fmt.Fprintf(p.out, "Try again: %v\n", err)
				continue
			}
			p.prompt(engine)
		case tick := <-ticks:
			advanced, err := timed.HandleTick(tick)
			if err != nil {
				return err
			}
			if advanced {
				fmt.Fprintln(p.out, "Time's up!")
				p.prompt(engine)
			}
		}
	}
	return nil
}

func (p *player) prompt(engine *session.Engine) {
	q, err := engine.CurrentQuestion()
	if err != nil {
		return
	}
	fmt.Fprintf(p.out, "\nQuestion %d of %d (%.0f%% done)\n%s\n", engine.Index()+1, engine.Total(), engine.ProgressFraction()*100, q.Text)
	for i, a := range q.Answers {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, a.Text)
	}
	switch q.Mode {
	case domain.ModeSingle:
		fmt.Fprintln(p.out, "Pick one number:")
	case domain.ModeMultiple:
		fmt.Fprintln(p.out, "Pick any numbers separated by commas (empty for none):")
	case domain.ModeRanged:
		fmt.Fprintf(p.out, "Slide from 0 (%s) to 100 (%s):\n", q.Answers[0].Text, q.Answers[len(q.Answers)-1].Text)
	}
}

// parseResponse turns one line of input into a response for q. Choices are
// numbered from 1; ranged answers are a percentage.
func parseResponse(q domain.Question, line string) (session.Response, error) {
	line = strings.TrimSpace(line)
	switch q.Mode {
	case domain.ModeSingle:
		n, err := strconv.Atoi(line)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", line)
		}
		return session.SingleChoice{Index: n - 1}, nil
	case domain.ModeMultiple:
		fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ' ' })
		indices := make([]int, 0, len(fields))
		for _, f := range fields {
			n, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%q is not a number", f)
			}
			indices = append(indices, n-1)
		}
		return session.MultipleChoice{Indices: indices}, nil
	case domain.ModeRanged:
		v, err := strconv.ParseFloat(strings.TrimSuffix(line, "%"), 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a number", line)
		}
		return session.RangedChoice{Position: v / 100}, nil
	}
	return nil, fmt.Errorf("%w: unknown mode %q", domain.ErrModeMismatch, q.Mode)
}

func printResult(out io.Writer, engine *session.Engine, record domain.ResultRecord) {
	theme := engine.Quiz().Theme
	fmt.Fprintf(out, "\n%s\n%s\n", record.Headline(theme), record.Category.Description(theme))
	fmt.Fprintf(out, "Finished in %s\n", record.FormattedDuration())
	for _, s := range scoring.Rank(engine.ChosenAnswers()) {
		fmt.Fprintf(out, "  %s %-8s %d\n", s.Category.Emoji(theme), s.Category.Label(theme), s.Votes)
	}
}

func tickInterval(limit time.Duration) time.Duration {
	if limit < time.Second {
		return limit
	}
	return time.Second
}
