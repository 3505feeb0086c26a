package session

import (
	"fmt"
	"math"
	"math/rand"
	"sort"
	"sync"
	"time"

	"personality-quiz/internal/domain"
	"personality-quiz/internal/scoring"

	"github.com/google/uuid"
)

// State is the lifecycle phase of an Engine.
type State int

const (
	StateNotStarted State = iota
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateInProgress:
		return "in-progress"
	case StateCompleted:
		return "completed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now, for deterministic timestamps in tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithRand sets the source used to shuffle questions and answers.
func WithRand(rnd *rand.Rand) Option {
	return func(e *Engine) { e.rnd = rnd }
}

// Engine runs a single attempt at one quiz. It is single-use: once
// Completed it never restarts.
type Engine struct {
	mu  sync.Mutex
	now func() time.Time
	rnd *rand.Rand

	state       State
	quiz        domain.Quiz
	questions   []domain.Question
	index       int
	chosen      []domain.AnswerOption
	startedAt   time.Time
	completedAt time.Time
	result      *domain.ResultRecord
}

func New(opts ...Option) *Engine {
	e := &Engine{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return e
}

// Start copies the quiz's questions into the session, optionally shuffling
// question order and each question's answer order. The quiz itself is never
// modified.
func (e *Engine) Start(quiz domain.Quiz, randomizeQuestions, randomizeAnswers bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateInProgress:
		return domain.ErrSessionInProgress
	case StateCompleted:
		return domain.ErrSessionCompleted
	}
	if err := quiz.Validate(); err != nil {
		return err
	}

	questions := make([]domain.Question, len(quiz.Questions))
	for i, q := range quiz.Questions {
		questions[i] = q.Clone()
	}
	if randomizeQuestions {
		e.rnd.Shuffle(len(questions), func(i, j int) {
			questions[i], questions[j] = questions[j], questions[i]
		})
	}
	if randomizeAnswers {
		for _, q := range questions {
			answers := q.Answers
			e.rnd.Shuffle(len(answers), func(i, j int) {
				answers[i], answers[j] = answers[j], answers[i]
			})
		}
	}

	meta := quiz
	meta.Questions = nil
	e.quiz = meta
	e.questions = questions
	e.index = 0
	e.chosen = nil
	e.startedAt = e.now()
	e.state = StateInProgress
	return nil
}

// State reports the current lifecycle phase.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Quiz returns the identity of the quiz being played, without questions.
func (e *Engine) Quiz() domain.Quiz {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.quiz
}

// Index is the 0-based position of the current question.
func (e *Engine) Index() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.index
}

// Total is the number of questions in the session.
func (e *Engine) Total() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.questions)
}

// CurrentQuestion returns the question awaiting an answer.
func (e *Engine) CurrentQuestion() (domain.Question, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	q, err := e.currentLocked()
	if err != nil {
		return domain.Question{}, err
	}
	return q.Clone(), nil
}

// ProgressFraction is index/total, computed before advancing, so it stays
// below 1 while any question is unanswered. It is 1 once Completed.
func (e *Engine) ProgressFraction() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case StateNotStarted:
		return 0
	case StateCompleted:
		return 1
	}
	return float64(e.index) / float64(len(e.questions))
}

// ChosenAnswers returns every answer recorded so far, in submission order.
func (e *Engine) ChosenAnswers() []domain.AnswerOption {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.AnswerOption, len(e.chosen))
	copy(out, e.chosen)
	return out
}

// Elapsed is the time since Start, frozen at completion.
func (e *Engine) Elapsed() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.state {
	case StateNotStarted:
		return 0
	case StateCompleted:
		return e.completedAt.Sub(e.startedAt)
	}
	return e.now().Sub(e.startedAt)
}

func (e *Engine) SubmitSingle(choiceIndex int) error {
	return e.Submit(SingleChoice{Index: choiceIndex})
}

func (e *Engine) SubmitMultiple(selected []int) error {
	return e.Submit(MultipleChoice{Indices: selected})
}

func (e *Engine) SubmitRanged(position float64) error {
	return e.Submit(RangedChoice{Position: position})
}

// Submit records the response for the current question and advances.
// A rejected response leaves the session untouched.
func (e *Engine) Submit(r Response) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	q, err := e.currentLocked()
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("%w: nil response", domain.ErrModeMismatch)
	}
	if r.mode() != q.Mode {
		return fmt.Errorf("%w: question %d is %s, got %s", domain.ErrModeMismatch, e.index, q.Mode, r.mode())
	}

	var picked []domain.AnswerOption
	switch r := r.(type) {
	case SingleChoice:
		if r.Index < 0 || r.Index >= len(q.Answers) {
			return fmt.Errorf("%w: index %d, question has %d answers", domain.ErrChoiceOutOfRange, r.Index, len(q.Answers))
		}
		picked = append(picked, q.Answers[r.Index])
	case MultipleChoice:
		indices, err := normalizeSelection(r.Indices, len(q.Answers))
		if err != nil {
			return err
		}
		for _, i := range indices {
			picked = append(picked, q.Answers[i])
		}
	case RangedChoice:
		if math.IsNaN(r.Position) || math.IsInf(r.Position, 0) {
			return fmt.Errorf("%w: %v", domain.ErrInvalidPosition, r.Position)
		}
		picked = append(picked, q.Answers[RangedIndex(r.Position, len(q.Answers))])
	}

	e.chosen = append(e.chosen, picked...)
	e.advanceLocked()
	return nil
}

// Skip advances past the current question without recording an answer.
// The countdown uses it when time runs out.
func (e *Engine) Skip() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.currentLocked(); err != nil {
		return err
	}
	e.advanceLocked()
	return nil
}

// Result scores a completed session. The record is built once; later calls
// return the same record.
func (e *Engine) Result() (domain.ResultRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateNotStarted:
		return domain.ResultRecord{}, domain.ErrSessionNotStarted
	case StateInProgress:
		return domain.ResultRecord{}, domain.ErrSessionInProgress
	}
	if e.result != nil {
		return *e.result, nil
	}
	category, err := scoring.Resolve(e.chosen)
	if err != nil {
		return domain.ResultRecord{}, err
	}
	e.result = &domain.ResultRecord{
		ID:              uuid.NewString(),
		QuizTitle:       e.quiz.Title,
		QuizEmoji:       e.quiz.Emoji,
		Category:        category,
		CompletedAt:     e.completedAt,
		DurationSeconds: math.Max(e.completedAt.Sub(e.startedAt).Seconds(), 0),
	}
	return *e.result, nil
}

func (e *Engine) currentLocked() (domain.Question, error) {
	switch e.state {
	case StateNotStarted:
		return domain.Question{}, domain.ErrSessionNotStarted
	case StateCompleted:
		return domain.Question{}, domain.ErrSessionCompleted
	}
	return e.questions[e.index], nil
}

func (e *Engine) advanceLocked() {
	e.index++
	if e.index == len(e.questions) {
		e.state = StateCompleted
		// persisted timestamps must survive a JSON round trip unchanged
		e.completedAt = e.now().UTC().Round(0)
		e.startedAt = e.startedAt.Round(0)
	}
}

// RangedIndex maps a slider position in [0,1] onto one of count options.
func RangedIndex(position float64, count int) int {
	if count <= 1 {
		return 0
	}
	position = math.Min(math.Max(position, 0), 1)
	idx := int(math.Round(position * float64(count-1)))
	if idx < 0 {
		return 0
	}
	if idx >= count {
		return count - 1
	}
	return idx
}

// normalizeSelection deduplicates and sorts indices, rejecting any out of range.
func normalizeSelection(indices []int, count int) ([]int, error) {
	seen := make(map[int]struct{}, len(indices))
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= count {
			return nil, fmt.Errorf("%w: index %d, question has %d answers", domain.ErrChoiceOutOfRange, i, count)
		}
		if _, dup := seen[i]; dup {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	sort.Ints(out)
	return out, nil
}
