package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"studyhub/internal/domain"
	"studyhub/internal/dto"
	"studyhub/internal/logger"
	"studyhub/internal/util"

	"go.uber.org/zap"
)

type SummaryService interface {
	CreateSummary(ctx context.Context, materialID, userID string) (*dto.SummaryResponse, error)
	GetSummary(ctx context.Context, id string) (*dto.SummaryResponse, error)
	GetUserSummaries(ctx context.Context, userID string) ([]dto.SummaryResponse, error)
	GetMaterialSummaries(ctx context.Context, materialID string) ([]dto.SummaryResponse, error)
}

type summaryService struct {
	materials domain.MaterialRepository
	summaries domain.SummaryRepository
	oracle    domain.QuizOracle
	now       func() time.Time
}

func NewSummaryService(materials domain.MaterialRepository, summaries domain.SummaryRepository, oracle domain.QuizOracle) SummaryService {
	return &summaryService{
		materials: materials,
		summaries: summaries,
		oracle:    oracle,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *summaryService) CreateSummary(ctx context.Context, materialID, userID string) (*dto.SummaryResponse, error) {
	material, err := s.materials.GetMaterial(ctx, materialID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load material", err)
	}
	if material == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Material %s not found", materialID))
	}
	if !material.HasContent() {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Material %s has no extracted content", materialID))
	}

	content, err := s.oracle.GenerateSummary(ctx, material.Title, material.Content)
	if err != nil {
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, domain.NewLLMServiceError(err)
	}
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, domain.NewGenerationFailureError("Generated summary was empty", nil)
	}

	summary := &domain.Summary{
		ID:         util.NewULID(),
		UserID:     firstNonEmpty(userID, material.UserID),
		MaterialID: material.ID,
		Title:      "Summary: " + material.Title,
		Content:    content,
		CreatedAt:  s.now(),
	}
	if err := s.summaries.CreateSummary(ctx, summary); err != nil {
		return nil, domain.NewInternalError("Failed to store summary", err)
	}

	logger.Get().Info("Summary created", zap.String("summaryID", summary.ID), zap.String("materialID", material.ID))
	resp := dto.NewSummaryResponse(summary)
	return &resp, nil
}

func (s *summaryService) GetSummary(ctx context.Context, id string) (*dto.SummaryResponse, error) {
	summary, err := s.summaries.GetSummary(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load summary", err)
	}
	if summary == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Summary %s not found", id))
	}
	resp := dto.NewSummaryResponse(summary)
	return &resp, nil
}

func (s *summaryService) GetUserSummaries(ctx context.Context, userID string) ([]dto.SummaryResponse, error) {
	summaries, err := s.summaries.GetSummariesByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list summaries", err)
	}
	return dto.NewSummaryResponses(summaries), nil
}

func (s *summaryService) GetMaterialSummaries(ctx context.Context, materialID string) ([]dto.SummaryResponse, error) {
	summaries, err := s.summaries.GetSummariesByMaterialID(ctx, materialID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list summaries", err)
	}
	return dto.NewSummaryResponses(summaries), nil
}
