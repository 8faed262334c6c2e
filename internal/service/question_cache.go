package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"studyhub/internal/cache"
	"studyhub/internal/domain"
	"studyhub/internal/logger"
	"studyhub/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuestionCacheService serves the ordered question list of a quiz.
// Questions are immutable once stored, so a cached list never goes stale.
type QuestionCacheService interface {
	GetQuestions(ctx context.Context, quizID string) ([]*domain.Question, error)
}

type questionCacheServiceImpl struct {
	repo  domain.QuizRepository
	cache domain.Cache
	ttl   time.Duration
	group singleflight.Group
}

// NewQuestionCacheService reads through c, which may be nil. Concurrent
// misses for the same quiz share one repository read.
func NewQuestionCacheService(repo domain.QuizRepository, c domain.Cache, ttl time.Duration) QuestionCacheService {
	return &questionCacheServiceImpl{repo: repo, cache: c, ttl: ttl}
}

func (s *questionCacheServiceImpl) GetQuestions(ctx context.Context, quizID string) ([]*domain.Question, error) {
	if questions, ok := s.fromCache(ctx, quizID); ok {
		return questions, nil
	}

	// The shared load outlives any single caller; each caller stops waiting
	// when its own context ends.
	loadCtx := context.WithoutCancel(ctx)
	ch := s.group.DoChan(quizID, func() (interface{}, error) {
		questions, err := s.repo.GetQuestionsByQuizID(loadCtx, quizID)
		if err != nil {
			return nil, err
		}
		s.store(loadCtx, quizID, questions)
		return questions, nil
	})

	select {
	case <-ctx.Done():
		return nil, domain.NewInternalError("Failed to load quiz questions", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, domain.NewInternalError("Failed to load quiz questions", res.Err)
		}
		if res.Shared {
			logger.Get().Debug("Shared question load", zap.String("quizID", quizID))
		}
		return res.Val.([]*domain.Question), nil
	}
}

func (s *questionCacheServiceImpl) fromCache(ctx context.Context, quizID string) ([]*domain.Question, bool) {
	if s.cache == nil {
		return nil, false
	}

	key := cache.QuizQuestionsKey(quizID)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			metrics.CacheLookups.WithLabelValues("questions", "miss").Inc()
		} else {
			metrics.CacheLookups.WithLabelValues("questions", "error").Inc()
			logger.Get().Warn("Question cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var questions []*domain.Question
	if err := json.Unmarshal([]byte(data), &questions); err != nil || len(questions) == 0 {
		metrics.CacheLookups.WithLabelValues("questions", "error").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues("questions", "hit").Inc()
	return questions, true
}

// store skips empty lists; an unknown quiz id must not be cached as empty.
func (s *questionCacheServiceImpl) store(ctx context.Context, quizID string, questions []*domain.Question) {
	if s.cache == nil || len(questions) == 0 {
		return
	}
	key := cache.QuizQuestionsKey(quizID)
	data, err := json.Marshal(questions)
	if err != nil {
		logger.Get().Error("Failed to marshal questions for caching", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		logger.Get().Warn("Question cache write failed", zap.String("key", key), zap.Error(err))
	}
}
