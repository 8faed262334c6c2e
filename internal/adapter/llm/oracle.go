// Package llm implements the quiz oracle on top of a text generation model.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"studyhub/internal/domain"
	"studyhub/internal/logger"
	"studyhub/internal/metrics"

	"go.uber.org/zap"
)

const (
	opGenerateQuestions = "generate_questions"
	opGradeShortAnswer  = "grade_short_answer"
	opGenerateSummary   = "generate_summary"

	defaultTimeout = 60 * time.Second
)

var errEmptyResponse = errors.New("empty response from model")

// Oracle implements domain.QuizOracle.
type Oracle struct {
	gen     TextGenerator
	timeout time.Duration
}

func NewOracle(gen TextGenerator, timeout time.Duration) *Oracle {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Oracle{gen: gen, timeout: timeout}
}

var _ domain.QuizOracle = (*Oracle)(nil)

func (o *Oracle) GenerateQuizQuestions(ctx context.Context, req domain.QuestionGenerationRequest) ([]domain.GeneratedQuestion, error) {
	raw, err := o.call(ctx, opGenerateQuestions, quizPrompt(req), GenerateOptions{Temperature: 0.2})
	if err != nil {
		return nil, wrapGenerationErr(err)
	}

	questions, err := parseQuestionArray(raw)
	if err != nil {
		logger.Get().Error("Failed to parse questions from model response",
			zap.Error(err),
			zap.Int("response_length", len(raw)))
		return nil, domain.NewGenerationFailureError("Failed to parse generated questions", err)
	}

	logger.Get().Info("Parsed generated questions",
		zap.Int("requested", req.Count),
		zap.Int("parsed", len(questions)))
	return questions, nil
}

func (o *Oracle) GradeShortAnswer(ctx context.Context, questionText, expected, submitted string) (bool, error) {
	raw, err := o.call(ctx, opGradeShortAnswer, shortAnswerPrompt(questionText, expected, submitted),
		GenerateOptions{Temperature: 0.1, MaxTokens: 10})
	if err != nil {
		return false, err
	}
	return interpretJudgment(raw), nil
}

func (o *Oracle) GenerateSummary(ctx context.Context, title, text string) (string, error) {
	raw, err := o.call(ctx, opGenerateSummary, summaryPrompt(title, text), GenerateOptions{Temperature: 0.3})
	if err != nil {
		return "", wrapGenerationErr(err)
	}
	summary := stripThinking(raw)
	if summary == "" {
		return "", domain.NewGenerationFailureError("Model returned an empty summary", nil)
	}
	return summary, nil
}

func (o *Oracle) call(ctx context.Context, op, prompt string, opts GenerateOptions) (string, error) {
	l := logger.Get()

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	start := time.Now()
	response, err := o.gen.Generate(ctx, prompt, opts)
	metrics.OracleRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())

	if err != nil {
		status := "error"
		if errors.Is(err, context.DeadlineExceeded) {
			status = "timeout"
		}
		metrics.OracleRequests.WithLabelValues(op, status).Inc()
		l.Error("LLM request failed", zap.String("operation", op), zap.String("status", status), zap.Error(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if strings.TrimSpace(response) == "" {
		metrics.OracleRequests.WithLabelValues(op, "empty").Inc()
		return "", fmt.Errorf("%s: %w", op, errEmptyResponse)
	}

	metrics.OracleRequests.WithLabelValues(op, "ok").Inc()
	l.Debug("LLM response received", zap.String("operation", op), zap.Duration("duration", time.Since(start)))
	return response, nil
}

func wrapGenerationErr(err error) error {
	if errors.Is(err, errEmptyResponse) {
		return domain.NewGenerationFailureError("Model returned no content", err)
	}
	return domain.NewLLMServiceError(err)
}
