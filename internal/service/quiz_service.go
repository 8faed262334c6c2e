package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"studyhub/internal/config"
	"studyhub/internal/domain"
	"studyhub/internal/dto"
	"studyhub/internal/logger"
	"studyhub/internal/metrics"
	"studyhub/internal/util"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz-related operations
type QuizService interface {
	// CreateQuiz generates and stores a quiz for a material. tokenUserID is the
	// authenticated caller and may be empty.
	CreateQuiz(ctx context.Context, materialID, tokenUserID string, req *dto.CreateQuizRequest) (*dto.CreateQuizResponse, error)
	GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error)
	GetQuizQuestions(ctx context.Context, id string) ([]dto.PublicQuestionResponse, error)
	GetUserQuizzes(ctx context.Context, userID string) ([]dto.QuizResponse, error)
	GetMaterialQuizzes(ctx context.Context, materialID string) ([]dto.QuizResponse, error)
}

type quizService struct {
	materials domain.MaterialRepository
	quizzes   domain.QuizRepository
	tx        domain.TransactionManager
	oracle    domain.QuizOracle
	questions QuestionCacheService
	cfg       config.QuizConfig
	now       func() time.Time
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	materials domain.MaterialRepository,
	quizzes domain.QuizRepository,
	tx domain.TransactionManager,
	oracle domain.QuizOracle,
	questions QuestionCacheService,
	cfg config.QuizConfig,
) QuizService {
	return &quizService{
		materials: materials,
		quizzes:   quizzes,
		tx:        tx,
		oracle:    oracle,
		questions: questions,
		cfg:       cfg,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *quizService) CreateQuiz(ctx context.Context, materialID, tokenUserID string, req *dto.CreateQuizRequest) (*dto.CreateQuizResponse, error) {
	if req == nil {
		req = &dto.CreateQuizRequest{}
	}

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

	settings, verr := s.resolveSettings(req)
	if verr != nil {
		return nil, verr
	}

	generated, err := s.oracle.GenerateQuizQuestions(ctx, domain.QuestionGenerationRequest{
		Text:         material.Content,
		Title:        material.Title,
		QuestionType: settings.questionType,
		Difficulty:   settings.difficulty,
		Count:        settings.count,
	})
	if err != nil {
		metrics.QuizGenerations.WithLabelValues("oracle_error").Inc()
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, domain.NewLLMServiceError(err)
	}

	questions := normalizeQuestions(generated, settings.questionType)
	if len(questions) == 0 {
		metrics.QuizGenerations.WithLabelValues("no_usable_questions").Inc()
		return nil, domain.NewGenerationFailureError("Generated quiz contained no usable questions", nil)
	}
	if len(questions) > settings.count {
		questions = questions[:settings.count]
	} else if len(questions) < settings.count {
		logger.Get().Warn("Oracle returned fewer questions than requested",
			zap.String("materialID", materialID),
			zap.Int("requested", settings.count),
			zap.Int("received", len(questions)))
	}

	quiz := &domain.Quiz{
		ID:                 util.NewULID(),
		UserID:             firstNonEmpty(tokenUserID, req.UserID, material.UserID),
		MaterialID:         material.ID,
		Title:              firstNonEmpty(strings.TrimSpace(req.Title), "Quiz: "+material.Title),
		Description:        strings.TrimSpace(req.Description),
		Difficulty:         settings.difficulty,
		TotalQuestions:     len(questions),
		RequestedQuestions: settings.count,
		QuestionType:       settings.questionType,
		CreatedAt:          s.now(),
	}
	for _, q := range questions {
		q.ID = util.NewULID()
		q.QuizID = quiz.ID
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.quizzes.CreateQuiz(ctx, quiz); err != nil {
			return err
		}
		for _, q := range questions {
			if err := s.quizzes.CreateQuestion(ctx, q); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		metrics.QuizGenerations.WithLabelValues("store_error").Inc()
		return nil, domain.NewInternalError("Failed to store quiz", err)
	}

	metrics.QuizGenerations.WithLabelValues("created").Inc()
	logger.Get().Info("Quiz created",
		zap.String("quizID", quiz.ID),
		zap.String("materialID", material.ID),
		zap.Int("questions", quiz.TotalQuestions))

	return &dto.CreateQuizResponse{
		Quiz:      dto.NewQuizResponse(quiz),
		Questions: dto.NewPublicQuestionResponses(questions),
	}, nil
}

type quizSettings struct {
	difficulty   domain.Difficulty
	questionType domain.QuestionType
	count        int
}

func (s *quizService) resolveSettings(req *dto.CreateQuizRequest) (quizSettings, error) {
	settings := quizSettings{
		difficulty:   domain.DifficultyMedium,
		questionType: domain.QuestionTypeMultipleChoice,
		count:        s.cfg.DefaultQuestions,
	}
	var errs domain.ValidationErrors

	if req.Difficulty != "" {
		d, err := domain.ParseDifficulty(req.Difficulty)
		if err != nil {
			errs = append(errs, domain.NewInvalidFormatError("difficulty", req.Difficulty))
		}
		settings.difficulty = d
	}
	if req.QuestionType != "" {
		qt, err := domain.ParseQuestionType(req.QuestionType)
		if err != nil {
			errs = append(errs, domain.NewInvalidFormatError("questionType", req.QuestionType))
		}
		settings.questionType = qt
	}
	if req.TotalQuestions != nil {
		settings.count = *req.TotalQuestions
	}
	if settings.count < 1 || settings.count > s.cfg.MaxQuestions {
		errs = append(errs, domain.NewOutOfRangeError("totalQuestions", settings.count, 1, s.cfg.MaxQuestions))
	}

	if len(errs) > 0 {
		return settings, errs
	}
	return settings, nil
}

func (s *quizService) GetQuiz(ctx context.Context, id string) (*dto.QuizResponse, error) {
	quiz, err := s.loadQuiz(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewQuizResponse(quiz)
	return &resp, nil
}

func (s *quizService) GetQuizQuestions(ctx context.Context, id string) ([]dto.PublicQuestionResponse, error) {
	if _, err := s.loadQuiz(ctx, id); err != nil {
		return nil, err
	}
	questions, err := s.questions.GetQuestions(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewPublicQuestionResponses(questions), nil
}

func (s *quizService) GetUserQuizzes(ctx context.Context, userID string) ([]dto.QuizResponse, error) {
	quizzes, err := s.quizzes.GetQuizzesByUserID(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}
	return dto.NewQuizResponses(quizzes), nil
}

func (s *quizService) GetMaterialQuizzes(ctx context.Context, materialID string) ([]dto.QuizResponse, error) {
	quizzes, err := s.quizzes.GetQuizzesByMaterialID(ctx, materialID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to list quizzes", err)
	}
	return dto.NewQuizResponses(quizzes), nil
}

func (s *quizService) loadQuiz(ctx context.Context, id string) (*domain.Quiz, error) {
	quiz, err := s.quizzes.GetQuiz(ctx, id)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load quiz", err)
	}
	if quiz == nil {
		return nil, domain.NewNotFoundError(fmt.Sprintf("Quiz %s not found", id))
	}
	return quiz, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
