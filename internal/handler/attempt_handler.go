package handler

import (
	"studyhub/internal/dto"
	"studyhub/internal/middleware"
	"studyhub/internal/service"
	"studyhub/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AttemptHandler handles quiz attempt HTTP requests
type AttemptHandler struct {
	service   service.AttemptService
	validator *validation.Validator
}

// NewAttemptHandler creates a new AttemptHandler instance
func NewAttemptHandler(service service.AttemptService, validator *validation.Validator) *AttemptHandler {
	return &AttemptHandler{service: service, validator: validator}
}

// StartAttempt godoc
// @Summary Start an attempt at a quiz
// @Description The user id comes from the bearer token, or the body when anonymous
// @Tags attempts
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.StartAttemptRequest false "Attempt owner"
// @Success 201 {object} dto.AttemptResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /quizzes/{id}/attempts [post]
func (h *AttemptHandler) StartAttempt(c *fiber.Ctx) error {
	var req dto.StartAttemptRequest
	if err := parseBody(c, &req, true); err != nil {
		return err
	}

	userID := middleware.UserIDFromCtx(c)
	if userID == "" {
		if errs := h.validator.ValidateUserID("userId", req.UserID); len(errs) > 0 {
			return errs
		}
		userID = req.UserID
	}

	attempt, err := h.service.StartAttempt(c.Context(), c.Params("id"), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(attempt)
}

// GetAttempt godoc
// @Summary Get an attempt
// @Tags attempts
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{id} [get]
func (h *AttemptHandler) GetAttempt(c *fiber.Ctx) error {
	attempt, err := h.service.GetAttempt(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(attempt)
}

// SubmitAttempt godoc
// @Summary Submit the answers of an attempt
// @Description Grades every question, completes the attempt and stores the answers. An attempt can be submitted once.
// @Tags attempts
// @Accept json
// @Produce json
// @Param id path string true "Attempt ID"
// @Param request body dto.SubmitAttemptRequest true "Answers"
// @Success 200 {object} dto.SubmitAttemptResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /attempts/{id}/submit [post]
func (h *AttemptHandler) SubmitAttempt(c *fiber.Ctx) error {
	var req dto.SubmitAttemptRequest
	if err := parseBody(c, &req, false); err != nil {
		return err
	}

	answers, errs := h.validator.DecodeAnswers(req.Answers)
	errs = append(errs, h.validator.ValidateTotalTime(req.TotalTime)...)
	if len(errs) > 0 {
		return errs
	}

	resp, err := h.service.SubmitAttempt(c.Context(), c.Params("id"), answers, req.TotalTime)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// GetResults godoc
// @Summary Get the graded results of a completed attempt
// @Tags attempts
// @Produce json
// @Param id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResultsResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /attempts/{id}/results [get]
func (h *AttemptHandler) GetResults(c *fiber.Ctx) error {
	results, err := h.service.GetResults(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(results)
}

// GetUserAttempts godoc
// @Summary List a user's attempts
// @Tags attempts
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} dto.AttemptResponse
// @Router /users/{userId}/attempts [get]
func (h *AttemptHandler) GetUserAttempts(c *fiber.Ctx) error {
	attempts, err := h.service.GetUserAttempts(c.Context(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(attempts)
}
