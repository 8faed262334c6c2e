package handler

import (
	"studyhub/internal/dto"
	"studyhub/internal/service"
	"studyhub/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// MaterialHandler handles study material HTTP requests
type MaterialHandler struct {
	service   service.MaterialService
	validator *validation.Validator
}

// NewMaterialHandler creates a new MaterialHandler instance
func NewMaterialHandler(service service.MaterialService, validator *validation.Validator) *MaterialHandler {
	return &MaterialHandler{service: service, validator: validator}
}

// CreateMaterial godoc
// @Summary Register a study material
// @Description Stores a material with its already extracted text content
// @Tags materials
// @Accept json
// @Produce json
// @Param request body dto.CreateMaterialRequest true "Material"
// @Success 201 {object} dto.MaterialResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /materials [post]
func (h *MaterialHandler) CreateMaterial(c *fiber.Ctx) error {
	var req dto.CreateMaterialRequest
	if err := parseBody(c, &req, false); err != nil {
		return err
	}
	if errs := h.validator.ValidateCreateMaterialRequest(&req); len(errs) > 0 {
		return errs
	}

	material, err := h.service.CreateMaterial(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(material)
}

// GetMaterial godoc
// @Summary Get a study material
// @Tags materials
// @Produce json
// @Param id path string true "Material ID"
// @Success 200 {object} dto.MaterialResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /materials/{id} [get]
func (h *MaterialHandler) GetMaterial(c *fiber.Ctx) error {
	material, err := h.service.GetMaterial(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(material)
}

// GetUserMaterials godoc
// @Summary List a user's materials
// @Tags materials
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {array} dto.MaterialResponse
// @Router /users/{userId}/materials [get]
func (h *MaterialHandler) GetUserMaterials(c *fiber.Ctx) error {
	materials, err := h.service.GetUserMaterials(c.Context(), c.Params("userId"))
	if err != nil {
		return err
	}
	return c.JSON(materials)
}
