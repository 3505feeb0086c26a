package catalog

import "personality-quiz/internal/domain"

const (
	AnimalQuizID = "00000000-0000-0000-0000-000000000001"
	ColorQuizID  = "00000000-0000-0000-0000-000000000002"
)

// Builtin returns the quizzes shipped with the app: animal first, colour second.
func Builtin() []domain.Quiz {
	return []domain.Quiz{animalQuiz(), colorQuiz()}
}

// BuiltinLoader serves Builtin.
func BuiltinLoader() *StaticLoader {
	return NewStaticLoader(Builtin()...)
}

func animalQuiz() domain.Quiz {
	return domain.Quiz{
		ID:    AnimalQuizID,
		Title: "Which Animal Are You?",
		Emoji: "🐾",
		Theme: domain.ThemeAnimal,
		Questions: []domain.Question{
			{
				Text: "Which food do you like the most?",
				Mode: domain.ModeSingle,
				Answers: []domain.AnswerOption{
					{Text: "Steak", Category: domain.CategoryLion},
					{Text: "Fish", Category: domain.CategoryCat},
					{Text: "Carrots", Category: domain.CategoryRabbit},
					{Text: "Corn", Category: domain.CategoryTurtle},
				},
			},
			{
				Text: "Which activities do you enjoy?",
				Mode: domain.ModeMultiple,
				Answers: []domain.AnswerOption{
					{Text: "Swimming", Category: domain.CategoryTurtle},
					{Text: "Sleeping", Category: domain.CategoryCat},
					{Text: "Cuddling", Category: domain.CategoryRabbit},
					{Text: "Eating", Category: domain.CategoryLion},
				},
			},
			{
				Text: "How much do you enjoy car rides?",
				Mode: domain.ModeRanged,
				Answers: []domain.AnswerOption{
					{Text: "I dislike them", Category: domain.CategoryCat},
					{Text: "I get a little nervous", Category: domain.CategoryRabbit},
					{Text: "I barely notice them", Category: domain.CategoryTurtle},
					{Text: "I like them", Category: domain.CategoryLion},
				},
			},
		},
	}
}

func colorQuiz() domain.Quiz {
	return domain.Quiz{
		ID:    ColorQuizID,
		Title: "What Color Are You?",
		Emoji: "🎨",
		Theme: domain.ThemeColor,
		Questions: []domain.Question{
			{
				Text: "How do you handle stress?",
				Mode: domain.ModeSingle,
				Answers: []domain.AnswerOption{
					{Text: "Stay calm and collected", Category: domain.CategoryTurtle},
					{Text: "Take action immediately", Category: domain.CategoryLion},
					{Text: "Seek support from others", Category: domain.CategoryRabbit},
					{Text: "Retreat and reflect", Category: domain.CategoryCat},
				},
			},
			{
				Text: "What environments do you prefer?",
				Mode: domain.ModeMultiple,
				Answers: []domain.AnswerOption{
					{Text: "Peaceful and quiet", Category: domain.CategoryTurtle},
					{Text: "Energetic and lively", Category: domain.CategoryLion},
					{Text: "Warm and welcoming", Category: domain.CategoryRabbit},
					{Text: "Creative and inspiring", Category: domain.CategoryCat},
				},
			},
			{
				Text: "How emotional are you?",
				Mode: domain.ModeRanged,
				Answers: []domain.AnswerOption{
					{Text: "Very logical", Category: domain.CategoryTurtle},
					{Text: "Balanced", Category: domain.CategoryCat},
					{Text: "Quite emotional", Category: domain.CategoryRabbit},
					{Text: "Very passionate", Category: domain.CategoryLion},
				},
			},
		},
	}
}
