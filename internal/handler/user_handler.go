package handler

import (
	"studyhub/internal/dto"
	"studyhub/internal/service"
	"studyhub/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type UserHandler struct {
	userService service.UserService
	validator   *validation.Validator
}

func NewUserHandler(userService service.UserService, validator *validation.Validator) *UserHandler {
	return &UserHandler{userService: userService, validator: validator}
}

// CreateUser godoc
// @Summary Register a user
// @Description Creates a user and returns an access token for it
// @Tags users
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "User"
// @Success 201 {object} dto.CreateUserResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Username or email taken"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := parseBody(c, &req, false); err != nil {
		return err
	}
	if errs := h.validator.ValidateCreateUserRequest(&req); len(errs) > 0 {
		return errs
	}

	resp, err := h.userService.CreateUser(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetUser godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	user, err := h.userService.GetUser(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(user)
}
