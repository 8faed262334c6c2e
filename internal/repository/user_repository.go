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

var userColumns = columns("id", "username", "email", "display_name", "photo_url", "is_admin", "provider", "created_at")

type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new user repository backed by sqlx.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	return &domain.User{
		ID:          m.ID,
		Username:    m.Username,
		Email:       m.Email,
		DisplayName: m.DisplayName.String,
		PhotoURL:    m.PhotoURL.String,
		IsAdmin:     m.IsAdmin == 1,
		Provider:    m.Provider,
		CreatedAt:   m.CreatedAt,
	}
}

func fromDomainUser(u *domain.User) *models.User {
	if u == nil {
		return nil
	}
	return &models.User{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: util.StringToNullString(u.DisplayName),
		PhotoURL:    util.StringToNullString(u.PhotoURL),
		IsAdmin:     util.BoolToInt(u.IsAdmin),
		Provider:    u.Provider,
		CreatedAt:   u.CreatedAt,
	}
}

func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, username, email, display_name, photo_url, is_admin, provider, created_at)
	          VALUES (:id, :username, :email, :display_name, :photo_url, :is_admin, :provider, :created_at)`

	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainUser(user)); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *sqlxUserRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, "id", id)
}

func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "email", email)
}

func (r *sqlxUserRepository) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, "username", username)
}

// getBy looks a user up by one of its unique columns.
func (r *sqlxUserRepository) getBy(ctx context.Context, column, value string) (*domain.User, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind("SELECT " + userColumns + " FROM users WHERE " + column + " = ?")

	var m models.User
	if err := exec.GetContext(ctx, &m, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by %s: %w", column, err)
	}
	return toDomainUser(&m), nil
}
