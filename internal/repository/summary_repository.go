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

var summaryColumns = columns("id", "user_id", "material_id", "title", "content", "pdf_url", "created_at")

type sqlxSummaryRepository struct {
	db *sqlx.DB
}

func NewSQLXSummaryRepository(db *sqlx.DB) domain.SummaryRepository {
	return &sqlxSummaryRepository{db: db}
}

func toDomainSummary(m *models.Summary) *domain.Summary {
	if m == nil {
		return nil
	}
	return &domain.Summary{
		ID:         m.ID,
		UserID:     m.UserID,
		MaterialID: m.MaterialID,
		Title:      m.Title,
		Content:    m.Content,
		PDFURL:     m.PDFURL.String,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *sqlxSummaryRepository) CreateSummary(ctx context.Context, summary *domain.Summary) error {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`INSERT INTO summaries (id, user_id, material_id, title, content, pdf_url, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?)`)

	_, err := exec.ExecContext(ctx, query,
		summary.ID,
		summary.UserID,
		summary.MaterialID,
		summary.Title,
		textArg(exec, summary.Content),
		util.StringToNullString(summary.PDFURL),
		summary.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create summary: %w", err)
	}
	return nil
}

func (r *sqlxSummaryRepository) GetSummary(ctx context.Context, id string) (*domain.Summary, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind("SELECT " + summaryColumns + " FROM summaries WHERE id = ?")

	var m models.Summary
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get summary %s: %w", id, err)
	}
	return toDomainSummary(&m), nil
}

func (r *sqlxSummaryRepository) GetSummariesByUserID(ctx context.Context, userID string) ([]*domain.Summary, error) {
	return r.list(ctx, "user_id", userID)
}

func (r *sqlxSummaryRepository) GetSummariesByMaterialID(ctx context.Context, materialID string) ([]*domain.Summary, error) {
	return r.list(ctx, "material_id", materialID)
}

func (r *sqlxSummaryRepository) list(ctx context.Context, column, value string) ([]*domain.Summary, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind("SELECT " + summaryColumns + " FROM summaries WHERE " + column + " = ? ORDER BY created_at DESC")

	var rows []models.Summary
	if err := exec.SelectContext(ctx, &rows, query, value); err != nil {
		return nil, fmt.Errorf("failed to list summaries by %s: %w", column, err)
	}

	summaries := make([]*domain.Summary, 0, len(rows))
	for i := range rows {
		summaries = append(summaries, toDomainSummary(&rows[i]))
	}
	return summaries, nil
}
