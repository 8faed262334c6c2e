package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"studyhub/internal/cache"
	"studyhub/internal/domain"
	"studyhub/internal/dto"
	"studyhub/internal/logger"
	"studyhub/internal/metrics"

	"go.uber.org/zap"
)

// ErrResultNotCached is returned when no results are cached for an attempt.
var ErrResultNotCached = errors.New("attempt results not found in cache")

// ResultCacheService caches the results of completed attempts. Completed
// attempts never change, so entries are only ever written once.
type ResultCacheService interface {
	Put(ctx context.Context, attemptID string, result *dto.AttemptResultsResponse) error
	Get(ctx context.Context, attemptID string) (*dto.AttemptResultsResponse, error)
}

type resultCacheServiceImpl struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewResultCacheService falls back to a no-op cache when c is nil.
func NewResultCacheService(c domain.Cache, ttl time.Duration) ResultCacheService {
	if c == nil {
		logger.Get().Info("Result cache disabled")
		return noopResultCacheService{}
	}
	return &resultCacheServiceImpl{cache: c, ttl: ttl}
}

func (s *resultCacheServiceImpl) Put(ctx context.Context, attemptID string, result *dto.AttemptResultsResponse) error {
	if result == nil {
		return domain.NewInvalidInputError("cannot cache nil result")
	}

	key := cache.AttemptResultsKey(attemptID)
	data, err := json.Marshal(result)
	if err != nil {
		return domain.NewInternalError("failed to marshal results for caching", err)
	}

	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		return domain.NewInternalError(fmt.Sprintf("failed to set results to cache for key %s", key), err)
	}
	logger.Get().Debug("Cached attempt results", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

func (s *resultCacheServiceImpl) Get(ctx context.Context, attemptID string) (*dto.AttemptResultsResponse, error) {
	key := cache.AttemptResultsKey(attemptID)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			metrics.CacheLookups.WithLabelValues("results", "miss").Inc()
			return nil, ErrResultNotCached
		}
		metrics.CacheLookups.WithLabelValues("results", "error").Inc()
		return nil, domain.NewInternalError(fmt.Sprintf("failed to get results from cache for key %s", key), err)
	}
	if data == "" {
		metrics.CacheLookups.WithLabelValues("results", "miss").Inc()
		return nil, ErrResultNotCached
	}

	var result dto.AttemptResultsResponse
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		metrics.CacheLookups.WithLabelValues("results", "error").Inc()
		return nil, domain.NewInternalError(fmt.Sprintf("failed to unmarshal results from cache for key %s", key), err)
	}

	metrics.CacheLookups.WithLabelValues("results", "hit").Inc()
	return &result, nil
}

type noopResultCacheService struct{}

func (noopResultCacheService) Put(ctx context.Context, attemptID string, result *dto.AttemptResultsResponse) error {
	return nil
}

func (noopResultCacheService) Get(ctx context.Context, attemptID string) (*dto.AttemptResultsResponse, error) {
	return nil, ErrResultNotCached
}
