package domain

import "errors"

var (
	// ErrQuizNotFound indicates no quiz matched the lookup.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrInvalidQuiz is returned when a quiz definition breaks a structural rule.
	ErrInvalidQuiz = errors.New("invalid quiz")
	// ErrUnknownCategory indicates a category symbol or value outside the closed set.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrSessionNotStarted is returned when a session is driven before Start.
	ErrSessionNotStarted = errors.New("quiz session not started")
	// ErrSessionInProgress is returned when Start is called twice.
	ErrSessionInProgress = errors.New("quiz session already in progress")
	// ErrSessionCompleted is returned for any submission after the last question.
	ErrSessionCompleted = errors.New("quiz session already completed")
	// ErrChoiceOutOfRange indicates a submitted option index is invalid.
	ErrChoiceOutOfRange = errors.New("answer choice out of range")
	// ErrModeMismatch indicates the submission kind does not match the question.
	ErrModeMismatch = errors.New("response does not match question mode")
	// ErrInvalidPosition indicates a ranged position that is not a finite number.
	ErrInvalidPosition = errors.New("invalid ranged position")

	// ErrKeyNotFound is returned by key-value stores for absent keys.
	ErrKeyNotFound = errors.New("key not found")
	// ErrResultNotFound indicates a history record id is unknown.
	ErrResultNotFound = errors.New("result not found")
)
