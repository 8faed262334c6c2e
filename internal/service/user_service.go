package service

import (
	"context"
	"fmt"
	"strings"

	"studyhub/internal/domain"
	"studyhub/internal/dto"
	"studyhub/internal/logger"
	"studyhub/internal/util"

	"go.uber.org/zap"
)

// UserService defines the interface for user related operations.
type UserService interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.CreateUserResponse, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
}

type userServiceImpl struct {
	repo domain.UserRepository
	auth AuthService
}

func NewUserService(repo domain.UserRepository, auth AuthService) UserService {
	return &userServiceImpl{repo: repo, auth: auth}
}

func (s *userServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	existing, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewInternalError("Failed to check email", err)
	}
	if existing != nil {
		return nil, domain.NewConflictError("User with this email already exists")
	}
	existing, err = s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, domain.NewInternalError("Failed to check username", err)
	}
	if existing != nil {
		return nil, domain.NewConflictError("Username already exists")
	}

	user := domain.NewUser(util.NewULID(), username, email)
	user.DisplayName = strings.TrimSpace(req.DisplayName)
	user.PhotoURL = strings.TrimSpace(req.PhotoURL)
	if p := strings.TrimSpace(req.Provider); p != "" {
		user.Provider = p
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, domain.NewInternalError("Failed to create user", err)
	}

	token, err := s.auth.IssueToken(user.ID, user.Username)
	if err != nil {
		return nil, domain.NewInternalError("Failed to issue access token", err)
	}

	logger.Get().Info("User created", zap.String("userID", user.ID), zap.String("provider", user.Provider))
	return &dto.CreateUserResponse{
		User:        dto.NewUserResponse(user),
		AccessToken: token,
	}, nil
}

func (s *userServiceImpl) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load user", err)
	}
	if user == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("User %s not found", id))
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}
