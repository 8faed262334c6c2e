package service

import (
	"strings"

	"studyhub/internal/domain"
)

// normalizeQuestions turns raw oracle items into storable questions.
// Items that cannot be graded are dropped; the caller decides what an empty
// result means.
func normalizeQuestions(items []domain.GeneratedQuestion, quizType domain.QuestionType) []*domain.Question {
	questions := make([]*domain.Question, 0, len(items))
	for _, item := range items {
		q, ok := normalizeQuestion(item, quizType)
		if !ok {
			continue
		}
		q.Position = len(questions)
		questions = append(questions, q)
	}
	return questions
}

func normalizeQuestion(item domain.GeneratedQuestion, quizType domain.QuestionType) (*domain.Question, bool) {
	text := strings.TrimSpace(item.QuestionText)
	answer := strings.TrimSpace(item.CorrectAnswer)
	if text == "" || answer == "" {
		return nil, false
	}

	qt, err := domain.ParseQuestionType(item.QuestionType)
	if err != nil || !qt.IsConcrete() {
		if !quizType.IsConcrete() {
			return nil, false
		}
		qt = quizType
	}

	q := &domain.Question{
		QuestionText:  text,
		QuestionType:  qt,
		CorrectAnswer: answer,
		Explanation:   strings.TrimSpace(item.Explanation),
	}

	switch qt {
	case domain.QuestionTypeMultipleChoice:
		options := make([]string, 0, len(item.Options))
		for _, o := range item.Options {
			if o = strings.TrimSpace(o); o != "" {
				options = append(options, o)
			}
		}
		if len(options) < 2 {
			return nil, false
		}
		q.Options = options
		q.CorrectAnswer = matchOption(options, answer)
	case domain.QuestionTypeTrueFalse:
		q.CorrectAnswer = canonicalBoolean(answer)
	case domain.QuestionTypeFillBlank, domain.QuestionTypeShortAnswer:
	}
	return q, true
}

// matchOption returns the option spelled like answer when they differ only
// in case, so exact-match grading compares against what the user was shown.
func matchOption(options []string, answer string) string {
	for _, o := range options {
		if o == answer {
			return o
		}
	}
	for _, o := range options {
		if strings.EqualFold(o, answer) {
			return o
		}
	}
	return answer
}

func canonicalBoolean(answer string) string {
	switch {
	case strings.EqualFold(answer, "true"):
		return "True"
	case strings.EqualFold(answer, "false"):
		return "False"
	default:
		return answer
	}
}
