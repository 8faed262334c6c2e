package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"studyhub/internal/domain"
	"studyhub/internal/repository/models"
	"studyhub/internal/util"

	"github.com/jmoiron/sqlx"
)

var (
	attemptColumns = columns("id", "user_id", "quiz_id", "score", "total_time", "completed", "started_at", "completed_at")
	answerColumns  = columns("id", "attempt_id", "question_id", "user_answer", "is_correct", "created_at")
)

type sqlxQuizAttemptRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizAttemptRepository stores attempts and the answers recorded for them.
func NewSQLXQuizAttemptRepository(db *sqlx.DB) domain.QuizAttemptRepository {
	return &sqlxQuizAttemptRepository{db: db}
}

func toDomainQuizAttempt(m *models.QuizAttempt) *domain.QuizAttempt {
	if m == nil {
		return nil
	}
	return &domain.QuizAttempt{
		ID:          m.ID,
		UserID:      m.UserID,
		QuizID:      m.QuizID,
		Score:       util.NullInt64ToIntPtr(m.Score),
		TotalTime:   util.NullInt64ToIntPtr(m.TotalTime),
		Completed:   m.Completed == 1,
		StartedAt:   m.StartedAt,
		CompletedAt: util.NullTimeToPtr(m.CompletedAt),
	}
}

func fromDomainQuizAttempt(a *domain.QuizAttempt) *models.QuizAttempt {
	if a == nil {
		return nil
	}
	m := &models.QuizAttempt{
		ID:        a.ID,
		UserID:    a.UserID,
		QuizID:    a.QuizID,
		Score:     util.IntPtrToNullInt64(a.Score),
		TotalTime: util.IntPtrToNullInt64(a.TotalTime),
		Completed: util.BoolToInt(a.Completed),
		StartedAt: a.StartedAt,
	}
	if a.CompletedAt != nil {
		m.CompletedAt = util.TimeToNullTime(*a.CompletedAt)
	}
	return m
}

func toDomainUserAnswer(m *models.UserAnswer) *domain.UserAnswer {
	if m == nil {
		return nil
	}
	return &domain.UserAnswer{
		ID:         m.ID,
		AttemptID:  m.AttemptID,
		QuestionID: m.QuestionID,
		UserAnswer: util.NullStringToPtr(m.UserAnswer),
		IsCorrect:  m.IsCorrect == 1,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *sqlxQuizAttemptRepository) CreateQuizAttempt(ctx context.Context, attempt *domain.QuizAttempt) error {
	query := `INSERT INTO quiz_attempts (id, user_id, quiz_id, score, total_time, completed, started_at, completed_at)
	          VALUES (:id, :user_id, :quiz_id, :score, :total_time, :completed, :started_at, :completed_at)`

	if _, err := GetExecutor(ctx, r.db).NamedExecContext(ctx, query, fromDomainQuizAttempt(attempt)); err != nil {
		return fmt.Errorf("failed to create quiz attempt: %w", err)
	}
	return nil
}

func (r *sqlxQuizAttemptRepository) GetQuizAttempt(ctx context.Context, id string) (*domain.QuizAttempt, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind("SELECT " + attemptColumns + " FROM quiz_attempts WHERE id = ?")

	var m models.QuizAttempt
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz attempt %s: %w", id, err)
	}
	return toDomainQuizAttempt(&m), nil
}

func (r *sqlxQuizAttemptRepository) GetQuizAttemptsByUserID(ctx context.Context, userID string) ([]*domain.QuizAttempt, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind("SELECT " + attemptColumns + " FROM quiz_attempts WHERE user_id = ? ORDER BY started_at DESC")

	var rows []models.QuizAttempt
	if err := exec.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list quiz attempts for user %s: %w", userID, err)
	}

	attempts := make([]*domain.QuizAttempt, 0, len(rows))
	for i := range rows {
		attempts = append(attempts, toDomainQuizAttempt(&rows[i]))
	}
	return attempts, nil
}

// CompleteQuizAttempt flips completed from 0 to 1 in a single statement, so of
// two concurrent submissions only one sees a row affected.
func (r *sqlxQuizAttemptRepository) CompleteQuizAttempt(ctx context.Context, id string, score, totalTime int, completedAt time.Time) (bool, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`UPDATE quiz_attempts SET score = ?, total_time = ?, completed = 1, completed_at = ?
	          WHERE id = ? AND completed = 0`)

	result, err := exec.ExecContext(ctx, query, score, totalTime, completedAt, id)
	if err != nil {
		return false, fmt.Errorf("failed to complete quiz attempt %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected for attempt %s: %w", id, err)
	}
	return affected == 1, nil
}

func (r *sqlxQuizAttemptRepository) CreateUserAnswer(ctx context.Context, answer *domain.UserAnswer) error {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`INSERT INTO user_answers (id, attempt_id, question_id, user_answer, is_correct, created_at)
	          VALUES (?, ?, ?, ?, ?, ?)`)

	_, err := exec.ExecContext(ctx, query,
		answer.ID,
		answer.AttemptID,
		answer.QuestionID,
		nullTextArg(exec, util.StringPtrToNullString(answer.UserAnswer)),
		util.BoolToInt(answer.IsCorrect),
		answer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user answer: %w", err)
	}
	return nil
}

func (r *sqlxQuizAttemptRepository) GetUserAnswersByAttemptID(ctx context.Context, attemptID string) ([]*domain.UserAnswer, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind("SELECT " + answerColumns + " FROM user_answers WHERE attempt_id = ?" +
		" ORDER BY (SELECT q.position FROM questions q WHERE q.id = user_answers.question_id) ASC")

	var rows []models.UserAnswer
	if err := exec.SelectContext(ctx, &rows, query, attemptID); err != nil {
		return nil, fmt.Errorf("failed to get answers for attempt %s: %w", attemptID, err)
	}

	answers := make([]*domain.UserAnswer, 0, len(rows))
	for i := range rows {
		answers = append(answers, toDomainUserAnswer(&rows[i]))
	}
	return answers, nil
}
