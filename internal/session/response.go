package session

import "personality-quiz/internal/domain"

// Response is a submission for one question. The set of implementations is
// closed: SingleChoice, MultipleChoice and RangedChoice.
type Response interface {
	mode() domain.ResponseMode
}

// SingleChoice picks exactly one option by index.
type SingleChoice struct {
	Index int
}

// MultipleChoice picks any subset of options. An empty set skips the question.
type MultipleChoice struct {
	Indices []int
}

// RangedChoice is a slider position between 0 and 1.
type RangedChoice struct {
	Position float64
}

func (SingleChoice) mode() domain.ResponseMode   { return domain.ModeSingle }
func (MultipleChoice) mode() domain.ResponseMode { return domain.ModeMultiple }
func (RangedChoice) mode() domain.ResponseMode   { return domain.ModeRanged }
