package domain

import (
	"fmt"
	"math"
	"time"
)

// ResponseMode is how a question is answered.
type ResponseMode string

const (
	ModeSingle   ResponseMode = "single"
	ModeMultiple ResponseMode = "multiple"
	ModeRanged   ResponseMode = "ranged"
)

// Valid reports whether m is a known response mode.
func (m ResponseMode) Valid() bool {
	switch m {
	case ModeSingle, ModeMultiple, ModeRanged:
		return true
	}
	return false
}

// AnswerOption is one selectable answer and the category it votes for.
type AnswerOption struct {
	Text     string   `json:"text" yaml:"text"`
	Category Category `json:"category" yaml:"category"`
}

// Question models one prompt. Single and ranged layouts usually carry four
// options but any non-empty count is accepted.
type Question struct {
	Text    string         `json:"text" yaml:"text"`
	Mode    ResponseMode   `json:"mode" yaml:"mode"`
	Answers []AnswerOption `json:"answers" yaml:"answers"`
}

// Clone returns a copy that shares no slices with q.
func (q Question) Clone() Question {
	answers := make([]AnswerOption, len(q.Answers))
	copy(answers, q.Answers)
	q.Answers = answers
	return q
}

// Quiz is an immutable quiz definition.
type Quiz struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Emoji     string     `json:"emoji" yaml:"emoji"`
	Theme     Theme      `json:"theme" yaml:"theme"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Validate checks the structural invariants every loaded quiz must hold.
func (q Quiz) Validate() error {
	if q.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidQuiz)
	}
	if q.Title == "" {
		return fmt.Errorf("%w: quiz %s has no title", ErrInvalidQuiz, q.ID)
	}
	if _, err := ParseTheme(string(q.Theme)); err != nil {
		return fmt.Errorf("%w: quiz %s: %v", ErrInvalidQuiz, q.ID, err)
	}
	if len(q.Questions) == 0 {
		return fmt.Errorf("%w: quiz %s has no questions", ErrInvalidQuiz, q.ID)
	}
	for i, question := range q.Questions {
		if !question.Mode.Valid() {
			return fmt.Errorf("%w: quiz %s question %d: unknown mode %q", ErrInvalidQuiz, q.ID, i, question.Mode)
		}
		if len(question.Answers) == 0 {
			return fmt.Errorf("%w: quiz %s question %d has no answers", ErrInvalidQuiz, q.ID, i)
		}
		for j, answer := range question.Answers {
			if !answer.Category.Valid() {
				return fmt.Errorf("%w: quiz %s question %d answer %d: %v", ErrInvalidQuiz, q.ID, i, j, ErrUnknownCategory)
			}
		}
	}
	return nil
}

// ResultRecord is the persisted outcome of one completed session.
type ResultRecord struct {
	ID              string    `json:"id"`
	QuizTitle       string    `json:"quizTitle"`
	QuizEmoji       string    `json:"quizEmoji"`
	Category        Category  `json:"resultCategory"`
	CompletedAt     time.Time `json:"completedAt"`
	DurationSeconds float64   `json:"durationSeconds"`
}

// Duration converts DurationSeconds back into a time.Duration.
func (r ResultRecord) Duration() time.Duration {
	return time.Duration(r.DurationSeconds * float64(time.Second))
}

// FormattedDuration renders the elapsed time as "1m 45s".
func (r ResultRecord) FormattedDuration() string {
	total := int(math.Max(r.DurationSeconds, 0))
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}

// FormattedDate renders the completion time in local time as
// "Jan 15, 2026 2:30 PM".
func (r ResultRecord) FormattedDate() string {
	return r.CompletedAt.Local().Format("Jan 02, 2006 3:04 PM")
}

// Headline is the display line used in history listings.
func (r ResultRecord) Headline(theme Theme) string {
	return r.Category.Headline(theme)
}
