package handler

import (
	"studyhub/internal/dto"
	"studyhub/internal/middleware"
	"studyhub/internal/service"
	"studyhub/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type SummaryHandler struct {
	service   service.SummaryService
	validator *validation.Validator
}

func NewSummaryHandler(service service.SummaryService, validator *validation.Validator) *SummaryHandler {
	return &SummaryHandler{service: service, validator: validator}
}

// CreateSummary godoc
// @Summary Summarize a material
// @Description Generates a study summary of the material's content
// @Tags summaries
// @Accept json
// @Produce json
// @Param id path string true "Material ID"
// @Param request body dto.CreateSummaryRequest false "Owner override"
// @Success 201 {object} dto.SummaryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Security ApiKeyAuth
// @Router /materials/{id}/summaries [post]
func (h *SummaryHandler) CreateSummary(c *fiber.Ctx) error {
	var req dto.CreateSummaryRequest
	if err := parseBody(c, &req, true); err != nil {
		return err
	}

	userID := middleware.UserIDFromCtx(c)
	if userID == "" && req.UserID != "" {
		if errs := h.validator.ValidateUserID("userId", req.UserID); len(errs) > 0 {
			return errs
		}
		userID = req.UserID
	}

	summary, err := h.service.CreateSummary(c.Context(), c.Params("id"), userID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(summary)
}

// GetSummary godoc
// @Summary Get a summary
// @Tags summaries
// @Produce json
// @Param id path string true "Summary ID"
// @Success 200 {object} dto.SummaryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /summaries/{id} [get]
func (h *SummaryHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.service.GetSummary(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

// GetMaterialSummaries godoc
// @Summary List the summaries of a material
// @Tags summaries
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {array} dto.SummaryResponse
// @Router /materials/{id}/summaries [get]
func (h *SummaryHandler) GetMaterialSummaries(c *fiber.Ctx) error {
	summaries, err := h.service.GetMaterialSummaries(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(summaries)
}

// GetUserSummaries godoc
// @Summary List a user's summaries
// @Tags summaries
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} dto.SummaryResponse
// @Router /users/{userId}/summaries [get]
func (h *SummaryHandler) GetUserSummaries(c *fiber.Ctx) error {
	summaries, err := h.service.GetUserSummaries(c.Context(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(summaries)
}
