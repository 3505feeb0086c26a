package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"personality-quiz/internal/domain"
)

const seasonQuiz = `
id: season
title: Which Season Are You?
emoji: "🍂"
theme: animal
questions:
  - text: Pick a drink
    mode: single
    answers:
      - {text: Lemonade, category: lion}
      - {text: Cocoa, category: "🐱"}
  - text: How early do you wake up?
    mode: ranged
    answers:
      - {text: Noon, category: cat}
      - {text: Eight, category: rabbit}
      - {text: Dawn, category: turtle}
`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestFileLoaderReadsYAMLDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b-season.yaml", seasonQuiz)
	writeFile(t, dir, "a-mini.yml", `
id: mini
title: Mini
questions:
  - text: Yes?
    mode: multiple
    answers:
      - {text: "yes", category: rabbit}
`)
	writeFile(t, dir, "README.md", "not a quiz")

	quizzes, err := NewFileLoader(dir).LoadQuizzes(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(quizzes) != 2 {
		t.Fatalf("expected 2 quizzes, got %d", len(quizzes))
	}
	if quizzes[0].ID != "mini" || quizzes[0].Theme != domain.ThemeAnimal {
		t.Fatalf("expected mini with default theme first, got %+v", quizzes[0])
	}

	season := quizzes[1]
	if season.Title != "Which Season Are You?" || season.Emoji != "🍂" || len(season.Questions) != 2 {
		t.Fatalf("unexpected season quiz %+v", season)
	}
	if season.Questions[1].Mode != domain.ModeRanged {
		t.Fatalf("expected ranged second question, got %s", season.Questions[1].Mode)
	}
	if season.Questions[0].Answers[1].Category != domain.CategoryCat || season.Questions[1].Answers[2].Category != domain.CategoryTurtle {
		t.Fatalf("categories not decoded from symbol and name")
	}

	c := New(NewFileLoader(dir))
	q, err := c.FindByTitle(context.Background(), "season")
	if err != nil || q.ID != "season" {
		t.Fatalf("expected season quiz, got %s err=%v", q.ID, err)
	}
}

func TestParseQuizYAMLRejectsSchemaViolations(t *testing.T) {
	cases := map[string]string{
		"unknown category": `
id: x
title: X
questions:
  - text: q
    mode: single
    answers: [{text: a, category: dog}]
`,
		"unknown mode": `
id: x
title: X
questions:
  - text: q
    mode: slider
    answers: [{text: a, category: lion}]
`,
		"no questions": `
id: x
title: X
questions: []
`,
		"extra field": `
id: x
title: X
colour: red
questions:
  - text: q
    mode: single
    answers: [{text: a, category: lion}]
`,
		"not yaml": "id: [unterminated",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseQuizYAML([]byte(body))
			expectErr(t, err, domain.ErrInvalidQuiz)
		})
	}
}

func TestFileLoaderMissingDir(t *testing.T) {
	_, err := NewFileLoader(filepath.Join(t.TempDir(), "nope")).LoadQuizzes(context.Background())
	if err == nil {
		t.Fatalf("expected error for missing directory")
	}
}
