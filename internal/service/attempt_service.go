package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"studyhub/internal/domain"
	"studyhub/internal/dto"
	"studyhub/internal/grading"
	"studyhub/internal/logger"
	"studyhub/internal/metrics"
	"studyhub/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AttemptService runs the attempt lifecycle: start, submit, results.
type AttemptService interface {
	StartAttempt(ctx context.Context, quizID, userID string) (*dto.AttemptResponse, error)
	GetAttempt(ctx context.Context, id string) (*dto.AttemptResponse, error)
	SubmitAttempt(ctx context.Context, attemptID string, answers []dto.AnswerInput, totalTime int) (*dto.SubmitAttemptResponse, error)
	GetResults(ctx context.Context, attemptID string) (*dto.AttemptResultsResponse, error)
	GetUserAttempts(ctx context.Context, userID string) ([]dto.AttemptResponse, error)
}

type attemptService struct {
	quizzes   domain.QuizRepository
	attempts  domain.QuizAttemptRepository
	tx        domain.TransactionManager
	grader    *grading.Grader
	questions QuestionCacheService
	results   ResultCacheService
	now       func() time.Time
}

func NewAttemptService(
	quizzes domain.QuizRepository,
	attempts domain.QuizAttemptRepository,
	tx domain.TransactionManager,
	grader *grading.Grader,
	questions QuestionCacheService,
	results ResultCacheService,
) AttemptService {
	return &attemptService{
		quizzes:   quizzes,
		attempts:  attempts,
		tx:        tx,
		grader:    grader,
		questions: questions,
		results:   results,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *attemptService) StartAttempt(ctx context.Context, quizID, userID string) (*dto.AttemptResponse, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("userId")}
	}

	quiz, err := s.quizzes.GetQuiz(ctx, quizID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Quiz %s not found", quizID))
	}

	attempt := domain.NewQuizAttempt(util.NewULID(), userID, quiz.ID, s.now())
	if err := s.attempts.CreateQuizAttempt(ctx, attempt); err != nil {
		return nil, domain.NewInternalError("Failed to start quiz attempt", err)
	}

	logger.Get().Info("Quiz attempt started", zap.String("attemptID", attempt.ID), zap.String("quizID", quiz.ID))
	resp := dto.NewAttemptResponse(attempt)
	return &resp, nil
}

func (s *attemptService) GetAttempt(ctx context.Context, id string) (*dto.AttemptResponse, error) {
	attempt, err := s.loadAttempt(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewAttemptResponse(attempt)
	return &resp, nil
}

func (s *attemptService) GetUserAttempts(ctx context.Context, userID string) ([]dto.AttemptResponse, error) {
	attempts, err := s.attempts.GetQuizAttemptsByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quiz attempts", err)
	}
	return dto.NewAttemptResponses(attempts), nil
}

// SubmitAttempt grades every question of the quiz and completes the attempt.
// The completion and the answers are written in one transaction; losing a
// race against another submission rolls the answers back.
func (s *attemptService) SubmitAttempt(ctx context.Context, attemptID string, answers []dto.AnswerInput, totalTime int) (*dto.SubmitAttemptResponse, error) {
	if totalTime < 0 {
		return nil, domain.ValidationErrors{domain.NewFieldError("totalTime", "totalTime must not be negative")}
	}

	attempt, err := s.loadAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Completed {
		metrics.AttemptSubmissions.WithLabelValues("already_completed").Inc()
		return nil, domain.NewAlreadyCompletedError(attemptID)
	}

	questions, err := s.questions.GetQuestions(ctx, attempt.QuizID)
	if err != nil {
		return nil, err
	}

	submitted, verr := matchAnswers(questions, answers)
	if verr != nil {
		metrics.AttemptSubmissions.WithLabelValues("invalid").Inc()
		return nil, verr
	}

	completedAt := s.now()
	records := make([]*domain.UserAnswer, 0, len(questions))
	totalCorrect, totalAnswered := 0, 0
	for i, q := range questions {
		verdict, err := s.grader.Grade(ctx, q, submitted[i])
		if err != nil {
			return nil, err
		}
		if submitted[i] != nil && strings.TrimSpace(*submitted[i]) != "" {
			totalAnswered++
		}
		if verdict.Correct {
			totalCorrect++
		}
		records = append(records, &domain.UserAnswer{
			ID:         util.NewULID(),
			AttemptID:  attempt.ID,
			QuestionID: q.ID,
			UserAnswer: submitted[i],
			IsCorrect:  verdict.Correct,
			CreatedAt:  completedAt,
		})
	}
	score := grading.Score(totalCorrect, len(questions))

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		ok, err := s.attempts.CompleteQuizAttempt(ctx, attempt.ID, score, totalTime, completedAt)
		if err != nil {
			return err
		}
		if !ok {
			return domain.NewAlreadyCompletedError(attempt.ID)
		}
		for _, r := range records {
			if err := s.attempts.CreateUserAnswer(ctx, r); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if domain.HasCode(err, domain.ErrAlreadyCompleted) {
			metrics.AttemptSubmissions.WithLabelValues("already_completed").Inc()
			return nil, err
		}
		metrics.AttemptSubmissions.WithLabelValues("store_error").Inc()
		return nil, domain.NewInternalError("Failed to store quiz attempt", err)
	}

	attempt.MarkCompleted(score, totalTime, completedAt)
	metrics.AttemptSubmissions.WithLabelValues("completed").Inc()
	logger.Get().Info("Quiz attempt completed",
		zap.String("attemptID", attempt.ID),
		zap.Int("score", score),
		zap.Int("correct", totalCorrect),
		zap.Int("questions", len(questions)))

	return &dto.SubmitAttemptResponse{
		Attempt:       dto.NewAttemptResponse(attempt),
		Score:         score,
		TotalAnswered: totalAnswered,
		TotalCorrect:  totalCorrect,
	}, nil
}

// matchAnswers lines answers up with questions. Entries naming a questionId
// are matched by id, the rest by position. The result has one slot per
// question; nil means unanswered.
func matchAnswers(questions []*domain.Question, answers []dto.AnswerInput) ([]*string, error) {
	index := make(map[string]int, len(questions))
	for i, q := range questions {
		index[q.ID] = i
	}

	matched := make([]*string, len(questions))
	seen := make([]bool, len(questions))
	var errs domain.ValidationErrors

	for i, a := range answers {
		pos := i
		field := fmt.Sprintf("answers[%d].questionId", i)
		if a.QuestionID != "" {
			p, ok := index[a.QuestionID]
			if !ok {
				errs = append(errs, domain.NewFieldError(field, fmt.Sprintf("question %s is not part of this quiz", a.QuestionID)))
				continue
			}
			pos = p
		} else if pos >= len(questions) {
			errs = append(errs, domain.NewFieldError(field, fmt.Sprintf("answer %d has no matching question", i)))
			continue
		}

		if seen[pos] {
			errs = append(errs, domain.NewFieldError(field, fmt.Sprintf("question %s answered more than once", questions[pos].ID)))
			continue
		}
		seen[pos] = true
		matched[pos] = a.Answer
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return matched, nil
}

func (s *attemptService) GetResults(ctx context.Context, attemptID string) (*dto.AttemptResultsResponse, error) {
	attempt, err := s.loadAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	if !attempt.Completed {
		return nil, domain.NewNotCompletedError(attemptID)
	}

	if cached, err := s.results.Get(ctx, attemptID); err == nil {
		return cached, nil
	} else if !errors.Is(err, ErrResultNotCached) {
		logger.Get().Warn("Result cache read failed", zap.String("attemptID", attemptID), zap.Error(err))
	}

	var (
		questions []*domain.Question
		answers   []*domain.UserAnswer
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		questions, err = s.questions.GetQuestions(gctx, attempt.QuizID)
		return err
	})
	g.Go(func() error {
		var err error
		answers, err = s.attempts.GetUserAnswersByAttemptID(gctx, attempt.ID)
		if err != nil {
			return domain.NewInternalError("Failed to load answers", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byQuestion := make(map[string]*domain.UserAnswer, len(answers))
	for _, a := range answers {
		byQuestion[a.QuestionID] = a
	}

	resp := &dto.AttemptResultsResponse{
		Attempt: dto.NewAttemptResponse(attempt),
		Results: make([]dto.QuestionResult, 0, len(questions)),
	}
	for _, q := range questions {
		result := dto.QuestionResult{Question: dto.NewQuestionResponse(q)}
		if a, ok := byQuestion[q.ID]; ok {
			result.UserAnswer = a.UserAnswer
			result.IsCorrect = a.IsCorrect
		}
		resp.Results = append(resp.Results, result)
	}

	if err := s.results.Put(ctx, attemptID, resp); err != nil {
		logger.Get().Warn("Result cache write failed", zap.String("attemptID", attemptID), zap.Error(err))
	}
	return resp, nil
}

func (s *attemptService) loadAttempt(ctx context.Context, id string) (*domain.QuizAttempt, error) {
	attempt, err := s.attempts.GetQuizAttempt(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load quiz attempt", err)
	}
	if attempt == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Quiz attempt %s not found", id))
	}
	return attempt, nil
}
