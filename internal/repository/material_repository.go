package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"studyhub/internal/domain"
	"studyhub/internal/repository/models"
	"studyhub/internal/util"

	"github.com/jmoiron/sqlx"
)

var materialColumns = columns("id", "user_id", "title", "description", "file_type", "content", "file_url", "subject", "created_at")

type sqlxMaterialRepository struct {
	db *sqlx.DB
}

func NewSQLXMaterialRepository(db *sqlx.DB) domain.MaterialRepository {
	return &sqlxMaterialRepository{db: db}
}

func toDomainMaterial(m *models.Material) *domain.Material {
	if m == nil {
		return nil
	}
	return &domain.Material{
		ID:          m.ID,
		UserID:      m.UserID,
		Title:       m.Title,
		Description: m.Description.String,
		FileType:    m.FileType,
		Content:     m.Content.String,
		FileURL:     m.FileURL.String,
		Subject:     m.Subject.String,
		CreatedAt:   m.CreatedAt,
	}
}

func (r *sqlxMaterialRepository) CreateMaterial(ctx context.Context, material *domain.Material) error {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`INSERT INTO materials (id, user_id, title, description, file_type, content, file_url, subject, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := exec.ExecContext(ctx, query,
		material.ID,
		material.UserID,
		material.Title,
		nullTextArg(exec, util.StringToNullString(material.Description)),
		material.FileType,
		nullTextArg(exec, util.StringToNullString(material.Content)),
		util.StringToNullString(material.FileURL),
		util.StringToNullString(material.Subject),
		material.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create material: %w", err)
	}
	return nil
}

func (r *sqlxMaterialRepository) GetMaterial(ctx context.Context, id string) (*domain.Material, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind("SELECT " + materialColumns + " FROM materials WHERE id = ?")

	var m models.Material
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get material %s: %w", id, err)
	}
	return toDomainMaterial(&m), nil
}

func (r *sqlxMaterialRepository) GetMaterialsByUserID(ctx context.Context, userID string) ([]*domain.Material, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind("SELECT " + materialColumns + " FROM materials WHERE user_id = ? ORDER BY created_at DESC")

	var rows []models.Material
	if err := exec.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list materials for user %s: %w", userID, err)
	}

	materials := make([]*domain.Material, 0, len(rows))
	for i := range rows {
		materials = append(materials, toDomainMaterial(&rows[i]))
	}
	return materials, nil
}
