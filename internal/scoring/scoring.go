// Package scoring turns chosen answers into a personality category.
package scoring

import (
	"errors"
	"sort"

	"personality-quiz/internal/domain"
)

// ErrNoAnswers is returned when there is nothing to score.
var ErrNoAnswers = errors.New("no answers to score")

// Score is one category's vote count.
type Score struct {
	Category domain.Category `json:"category"`
	Votes    int             `json:"votes"`
}

// Tally counts one vote per answer for its category.
func Tally(answers []domain.AnswerOption) map[domain.Category]int {
	counts := make(map[domain.Category]int, len(domain.Categories()))
	for _, answer := range answers {
		counts[answer.Category]++
	}
	return counts
}

// Rank lists every category that received a vote, highest count first.
// Equal counts keep declaration order (lion, cat, rabbit, turtle).
func Rank(answers []domain.AnswerOption) []Score {
	counts := Tally(answers)
	scores := make([]Score, 0, len(counts))
	for _, c := range domain.Categories() {
		if n := counts[c]; n > 0 {
			scores = append(scores, Score{Category: c, Votes: n})
		}
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Votes > scores[j].Votes
	})
	return scores
}

// Resolve returns the category with the most votes. When several categories
// share the maximum, the one declared first wins.
func Resolve(answers []domain.AnswerOption) (domain.Category, error) {
	if len(answers) == 0 {
		return 0, ErrNoAnswers
	}
	ranked := Rank(answers)
	if len(ranked) == 0 {
		// every answer carried a category outside the closed set
		return 0, domain.ErrUnknownCategory
	}
	return ranked[0].Category, nil
}
