package domain

import (
	"fmt"
	"strings"
	"time"
)

// QuestionType is the closed set of question kinds a quiz can contain.
// QuestionTypeMixed is only valid at quiz level.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple-choice"
	QuestionTypeTrueFalse      QuestionType = "true-false"
	QuestionTypeFillBlank      QuestionType = "fill-blank"
	QuestionTypeShortAnswer    QuestionType = "short-answer"
	QuestionTypeMixed          QuestionType = "mixed"
)

// ConcreteQuestionTypes lists every type a persisted Question may carry.
var ConcreteQuestionTypes = []QuestionType{
	QuestionTypeMultipleChoice,
	QuestionTypeTrueFalse,
	QuestionTypeFillBlank,
	QuestionTypeShortAnswer,
}

var questionTypeAliases = map[string]QuestionType{
	"multiple-choice":   QuestionTypeMultipleChoice,
	"multiple_choice":   QuestionTypeMultipleChoice,
	"multiplechoice":    QuestionTypeMultipleChoice,
	"mcq":               QuestionTypeMultipleChoice,
	"true-false":        QuestionTypeTrueFalse,
	"true_false":        QuestionTypeTrueFalse,
	"truefalse":         QuestionTypeTrueFalse,
	"fill-blank":        QuestionTypeFillBlank,
	"fill_blank":        QuestionTypeFillBlank,
	"fill-in-the-blank": QuestionTypeFillBlank,
	"fill-in-blank":     QuestionTypeFillBlank,
	"short-answer":      QuestionTypeShortAnswer,
	"short_answer":      QuestionTypeShortAnswer,
	"mixed":             QuestionTypeMixed,
}

// ParseQuestionType accepts the canonical names plus a few spellings LLMs tend to emit.
func ParseQuestionType(s string) (QuestionType, error) {
	if t, ok := questionTypeAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown question type %q", s)
}

// IsConcrete reports whether t can be graded.
func (t QuestionType) IsConcrete() bool {
	for _, c := range ConcreteQuestionTypes {
		if c == t {
			return true
		}
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyMixed  Difficulty = "mixed"
)

func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyMixed:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Quiz is a generated set of questions derived from one material.
type Quiz struct {
	ID                 string
	UserID             string
	MaterialID         string
	Title              string
	Description        string
	Difficulty         Difficulty
	TotalQuestions     int
	RequestedQuestions int
	QuestionType       QuestionType
	CreatedAt          time.Time
}

// Question belongs to one quiz and is immutable once stored.
// Options is only populated for multiple-choice questions.
type Question struct {
	ID            string
	QuizID        string
	Position      int
	QuestionText  string
	QuestionType  QuestionType
	Options       []string
	CorrectAnswer string
	Explanation   string
}

// GeneratedQuestion is one item as returned by the oracle, before normalization.
type GeneratedQuestion struct {
	QuestionText  string
	QuestionType  string
	Options       []string
	CorrectAnswer string
	Explanation   string
}

// QuestionGenerationRequest carries everything the oracle needs to write questions.
type QuestionGenerationRequest struct {
	Text         string
	Title        string
	QuestionType QuestionType
	Difficulty   Difficulty
	Count        int
}
