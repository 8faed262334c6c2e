// Package grading decides whether a submitted answer is correct and turns
// per-question verdicts into an attempt score.
package grading

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"studyhub/internal/domain"
	"studyhub/internal/logger"
	"studyhub/internal/metrics"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ShortAnswerJudge makes the semantic call for free-text answers.
type ShortAnswerJudge interface {
	GradeShortAnswer(ctx context.Context, questionText, expected, submitted string) (bool, error)
}

// Verdict is the outcome of grading one question.
type Verdict struct {
	Correct bool
	// JudgeErr is set when the short-answer judge failed and the answer
	// was marked incorrect instead.
	JudgeErr error
}

type Grader struct {
	judge ShortAnswerJudge
}

func NewGrader(judge ShortAnswerJudge) *Grader {
	return &Grader{judge: judge}
}

// Grade grades one submitted answer. A nil submitted means unanswered.
// The only error returned is for a question type with no grading rule.
func (g *Grader) Grade(ctx context.Context, q *domain.Question, submitted *string) (Verdict, error) {
	var (
		v   Verdict
		err error
	)
	answer := ""
	if submitted != nil {
		answer = *submitted
	}

	switch q.QuestionType {
	case domain.QuestionTypeMultipleChoice, domain.QuestionTypeTrueFalse:
		v = Verdict{Correct: submitted != nil && exactMatch(answer, q.CorrectAnswer)}
	case domain.QuestionTypeFillBlank:
		v = Verdict{Correct: submitted != nil && normalizedMatch(answer, q.CorrectAnswer)}
	case domain.QuestionTypeShortAnswer:
		v = g.gradeShortAnswer(ctx, q, answer)
	default:
		err = domain.NewUnsupportedQuestionTypeError(q.QuestionType)
	}
	if err != nil {
		return Verdict{}, err
	}

	metrics.AnswersGraded.WithLabelValues(string(q.QuestionType), strconv.FormatBool(v.Correct)).Inc()
	return v, nil
}

func (g *Grader) gradeShortAnswer(ctx context.Context, q *domain.Question, answer string) Verdict {
	if strings.TrimSpace(answer) == "" {
		return Verdict{}
	}
	if g.judge == nil {
		return Verdict{JudgeErr: errNoJudge}
	}

	correct, err := g.judge.GradeShortAnswer(ctx, q.QuestionText, q.CorrectAnswer, answer)
	if err != nil {
		logger.Get().Warn("Short answer judgment failed, grading as incorrect",
			zap.String("question_id", q.ID),
			zap.Error(err))
		return Verdict{JudgeErr: err}
	}
	return Verdict{Correct: correct}
}

var errNoJudge = errors.New("grading: no short answer judge configured")

// exactMatch is used for multiple-choice and true-false.
func exactMatch(submitted, expected string) bool {
	return submitted == expected
}

// normalizedMatch ignores case and surrounding whitespace.
func normalizedMatch(submitted, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(expected))
}

// Score returns round(100 * correct / total), rounding halves up.
// A quiz without questions scores 0.
func Score(correct, total int) int {
	if total <= 0 {
		return 0
	}
	pct := decimal.NewFromInt(int64(correct)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total)))
	return int(pct.Round(0).IntPart())
}
