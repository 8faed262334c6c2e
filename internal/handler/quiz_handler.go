package handler

import (
	"studyhub/internal/dto"
	"studyhub/internal/logger"
	"studyhub/internal/middleware"
	"studyhub/internal/service"
	"studyhub/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, validator *validation.Validator) *QuizHandler {
	return &QuizHandler{service: service, validator: validator}
}

// CreateQuiz godoc
// @Summary Generate a quiz from a material
// @Description Asks the oracle for questions about the material and stores the quiz with its questions
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path string true "Material ID"
// @Param request body dto.CreateQuizRequest false "Quiz settings"
// @Success 201 {object} dto.CreateQuizResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /materials/{id}/quizzes [post]
func (h *QuizHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := parseBody(c, &req, true); err != nil {
		return err
	}
	if errs := h.validator.ValidateCreateQuizRequest(&req); len(errs) > 0 {
		return errs
	}

	materialID := c.Params("id")
	resp, err := h.service.CreateQuiz(c.Context(), materialID, middleware.UserIDFromCtx(c), &req)
	if err != nil {
		logger.Get().Warn("Quiz creation failed", zap.String("materialID", materialID), zap.Error(err))
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetQuiz godoc
// @Summary Get a quiz
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	quiz, err := h.service.GetQuiz(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}

// GetQuizQuestions godoc
// @Summary Get the questions of a quiz
// @Description Questions in order, without correct answers or explanations
// @Tags quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {array} dto.PublicQuestionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{id}/questions [get]
func (h *QuizHandler) GetQuizQuestions(c *fiber.Ctx) error {
	questions, err := h.service.GetQuizQuestions(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(questions)
}

// GetUserQuizzes godoc
// @Summary List a user's quizzes
// @Tags quizzes
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} dto.QuizResponse
// @Router /users/{userId}/quizzes [get]
func (h *QuizHandler) GetUserQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.service.GetUserQuizzes(c.Context(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}

// GetMaterialQuizzes godoc
// @Summary List the quizzes generated from a material
// @Tags quizzes
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {array} dto.QuizResponse
// @Router /materials/{id}/quizzes [get]
func (h *QuizHandler) GetMaterialQuizzes(c *fiber.Ctx) error {
	quizzes, err := h.service.GetMaterialQuizzes(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}
