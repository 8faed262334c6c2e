package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"studyhub/internal/domain"
	"studyhub/internal/dto"
	"studyhub/internal/logger"
	"studyhub/internal/util"

	"go.uber.org/zap"
)

type MaterialService interface {
	CreateMaterial(ctx context.Context, req *dto.CreateMaterialRequest) (*dto.MaterialResponse, error)
	// ImportFile extracts the text of a local file and stores it as a material.
	ImportFile(ctx context.Context, userID, title, path string) (*dto.MaterialResponse, error)
	GetMaterial(ctx context.Context, id string) (*dto.MaterialResponse, error)
	GetUserMaterials(ctx context.Context, userID string) ([]dto.MaterialResponse, error)
}

type materialService struct {
	repo      domain.MaterialRepository
	extractor domain.ContentExtractor
	now       func() time.Time
}

// NewMaterialService creates a material service. extractor may be nil when
// files are never imported.
func NewMaterialService(repo domain.MaterialRepository, extractor domain.ContentExtractor) MaterialService {
	return &materialService{
		repo:      repo,
		extractor: extractor,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *materialService) CreateMaterial(ctx context.Context, req *dto.CreateMaterialRequest) (*dto.MaterialResponse, error) {
	material := &domain.Material{
		ID:          util.NewULID(),
		UserID:      req.UserID,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		FileType:    strings.TrimPrefix(strings.ToLower(strings.TrimSpace(req.FileType)), "."),
		Content:     req.Content,
		FileURL:     req.FileURL,
		Subject:     req.Subject,
		CreatedAt:   s.now(),
	}
	return s.store(ctx, material)
}

func (s *materialService) ImportFile(ctx context.Context, userID, title, path string) (*dto.MaterialResponse, error) {
	if s.extractor == nil {
		return nil, domain.NewInternalError("Material import is not configured", nil)
	}
	fileType := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	content, err := s.extractor.Extract(ctx, path, fileType)
	if err != nil {
		return nil, domain.NewInvalidInputError(fmt.Sprintf("Failed to extract text from %s: %v", path, err))
	}

	material := &domain.Material{
		ID:        util.NewULID(),
		UserID:    userID,
		Title:     title,
		FileType:  fileType,
		Content:   content,
		FileURL:   path,
		CreatedAt: s.now(),
	}
	return s.store(ctx, material)
}

func (s *materialService) store(ctx context.Context, material *domain.Material) (*dto.MaterialResponse, error) {
	if err := s.repo.CreateMaterial(ctx, material); err != nil {
		return nil, domain.NewInternalError("Failed to create material", err)
	}
	logger.Get().Info("Material created",
		zap.String("materialID", material.ID),
		zap.String("fileType", material.FileType),
		zap.Bool("hasContent", material.HasContent()))
	resp := dto.NewMaterialResponse(material)
	return &resp, nil
}

func (s *materialService) GetMaterial(ctx context.Context, id string) (*dto.MaterialResponse, error) {
	material, err := s.repo.GetMaterial(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load material", err)
	}
	if material == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Material %s not found", id))
	}
	resp := dto.NewMaterialResponse(material)
	return &resp, nil
}

func (s *materialService) GetUserMaterials(ctx context.Context, userID string) ([]dto.MaterialResponse, error) {
	materials, err := s.repo.GetMaterialsByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list materials", err)
	}
	return dto.NewMaterialResponses(materials), nil
}
