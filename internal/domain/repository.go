package domain

import (
	"context"
	"time"
)

// Repositories return (nil, nil) when a single entity lookup finds nothing.

type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
}

type MaterialRepository interface {
	CreateMaterial(ctx context.Context, material *Material) error
	GetMaterial(ctx context.Context, id string) (*Material, error)
	GetMaterialsByUserID(ctx context.Context, userID string) ([]*Material, error)
}

type SummaryRepository interface {
	CreateSummary(ctx context.Context, summary *Summary) error
	GetSummary(ctx context.Context, id string) (*Summary, error)
	GetSummariesByUserID(ctx context.Context, userID string) ([]*Summary, error)
	GetSummariesByMaterialID(ctx context.Context, materialID string) ([]*Summary, error)
}

type QuizRepository interface {
	CreateQuiz(ctx context.Context, quiz *Quiz) error
	CreateQuestion(ctx context.Context, question *Question) error
	GetQuiz(ctx context.Context, id string) (*Quiz, error)
	GetQuizzesByUserID(ctx context.Context, userID string) ([]*Quiz, error)
	GetQuizzesByMaterialID(ctx context.Context, materialID string) ([]*Quiz, error)
	// GetQuestionsByQuizID returns questions in insertion order.
	GetQuestionsByQuizID(ctx context.Context, quizID string) ([]*Question, error)
}

type QuizAttemptRepository interface {
	CreateQuizAttempt(ctx context.Context, attempt *QuizAttempt) error
	GetQuizAttempt(ctx context.Context, id string) (*QuizAttempt, error)
	GetQuizAttemptsByUserID(ctx context.Context, userID string) ([]*QuizAttempt, error)
	// CompleteQuizAttempt completes the attempt only if it is still in progress.
	// It reports false when no in-progress attempt with that id exists.
	CompleteQuizAttempt(ctx context.Context, id string, score, totalTime int, completedAt time.Time) (bool, error)
	CreateUserAnswer(ctx context.Context, answer *UserAnswer) error
	// GetUserAnswersByAttemptID returns answers in question position order.
	GetUserAnswersByAttemptID(ctx context.Context, attemptID string) ([]*UserAnswer, error)
}

// TransactionManager runs fn inside a single database transaction.
// Repositories called with the ctx passed to fn participate in it.
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
