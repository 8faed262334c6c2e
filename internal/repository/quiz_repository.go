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

var (
	quizColumns = columns("id", "user_id", "material_id", "title", "description", "difficulty",
		"total_questions", "requested_questions", "question_type", "created_at")
	questionColumns = columns("id", "quiz_id", "position", "question_text", "question_type",
		"options", "correct_answer", "explanation")
)

type sqlxQuizRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizRepository stores quizzes and their questions.
func NewSQLXQuizRepository(db *sqlx.DB) domain.QuizRepository {
	return &sqlxQuizRepository{db: db}
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	return &domain.Quiz{
		ID:                 m.ID,
		UserID:             m.UserID,
		MaterialID:         m.MaterialID,
		Title:              m.Title,
		Description:        m.Description.String,
		Difficulty:         domain.Difficulty(m.Difficulty),
		TotalQuestions:     m.TotalQuestions,
		RequestedQuestions: m.RequestedQuestions,
		QuestionType:       domain.QuestionType(m.QuestionType),
		CreatedAt:          m.CreatedAt,
	}
}

func toDomainQuestion(m *models.Question) *domain.Question {
	if m == nil {
		return nil
	}
	var options []string
	if len(m.Options) > 0 {
		options = []string(m.Options)
	}
	return &domain.Question{
		ID:            m.ID,
		QuizID:        m.QuizID,
		Position:      m.Position,
		QuestionText:  m.QuestionText,
		QuestionType:  domain.QuestionType(m.QuestionType),
		Options:       options,
		CorrectAnswer: m.CorrectAnswer,
		Explanation:   m.Explanation.String,
	}
}

func (r *sqlxQuizRepository) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`INSERT INTO quizzes (id, user_id, material_id, title, description, difficulty, total_questions, requested_questions, question_type, created_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := exec.ExecContext(ctx, query,
		quiz.ID,
		quiz.UserID,
		quiz.MaterialID,
		quiz.Title,
		nullTextArg(exec, util.StringToNullString(quiz.Description)),
		string(quiz.Difficulty),
		quiz.TotalQuestions,
		quiz.RequestedQuestions,
		string(quiz.QuestionType),
		quiz.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

func (r *sqlxQuizRepository) CreateQuestion(ctx context.Context, question *domain.Question) error {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind(`INSERT INTO questions (id, quiz_id, position, question_text, question_type, options, correct_answer, explanation)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)

	options, err := models.StringSlice(question.Options).Value()
	if err != nil {
		return fmt.Errorf("failed to encode options for question %s: %w", question.ID, err)
	}
	encoded, _ := options.(string)

	_, err = exec.ExecContext(ctx, query,
		question.ID,
		question.QuizID,
		question.Position,
		textArg(exec, question.QuestionText),
		string(question.QuestionType),
		nullTextArg(exec, util.StringToNullString(encoded)),
		textArg(exec, question.CorrectAnswer),
		nullTextArg(exec, util.StringToNullString(question.Explanation)),
	)
	if err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

func (r *sqlxQuizRepository) GetQuiz(ctx context.Context, id string) (*domain.Quiz, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind("SELECT " + quizColumns + " FROM quizzes WHERE id = ?")

	var m models.Quiz
	if err := exec.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get quiz %s: %w", id, err)
	}
	return toDomainQuiz(&m), nil
}

func (r *sqlxQuizRepository) GetQuizzesByUserID(ctx context.Context, userID string) ([]*domain.Quiz, error) {
	return r.listQuizzes(ctx, "user_id", userID)
}

func (r *sqlxQuizRepository) GetQuizzesByMaterialID(ctx context.Context, materialID string) ([]*domain.Quiz, error) {
	return r.listQuizzes(ctx, "material_id", materialID)
}

func (r *sqlxQuizRepository) listQuizzes(ctx context.Context, column, value string) ([]*domain.Quiz, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind("SELECT " + quizColumns + " FROM quizzes WHERE " + column + " = ? ORDER BY created_at DESC")

	var rows []models.Quiz
	if err := exec.SelectContext(ctx, &rows, query, value); err != nil {
		return nil, fmt.Errorf("failed to list quizzes by %s: %w", column, err)
	}

	quizzes := make([]*domain.Quiz, 0, len(rows))
	for i := range rows {
		quizzes = append(quizzes, toDomainQuiz(&rows[i]))
	}
	return quizzes, nil
}

func (r *sqlxQuizRepository) GetQuestionsByQuizID(ctx context.Context, quizID string) ([]*domain.Question, error) {
	exec := GetExecutor(ctx, r.db)
	query := exec.Rebind("SELECT " + questionColumns + " FROM questions WHERE quiz_id = ? ORDER BY position ASC")

	var rows []models.Question
	if err := exec.SelectContext(ctx, &rows, query, quizID); err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %s: %w", quizID, err)
	}

	questions := make([]*domain.Question, 0, len(rows))
	for i := range rows {
		questions = append(questions, toDomainQuestion(&rows[i]))
	}
	return questions, nil
}
