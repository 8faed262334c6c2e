package middleware_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"studyhub/internal/domain"
	"studyhub/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.NewNotFoundError("Quiz QZ1 not found"), http.StatusNotFound, "NOT_FOUND"},
		{"already completed", fmt.Errorf("submit: %w", domain.NewAlreadyCompletedError("A1")), http.StatusConflict, "ALREADY_COMPLETED"},
		{"not completed", domain.NewNotCompletedError("A1"), http.StatusConflict, "NOT_COMPLETED"},
		{"conflict", domain.NewConflictError("Username already exists"), http.StatusConflict, "CONFLICT"},
		{"unauthorized", domain.NewUnauthorizedError("bad token"), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"invalid input", domain.NewInvalidInputError("bad"), http.StatusBadRequest, "INVALID_INPUT"},
		{"generation failure", domain.NewGenerationFailureError("no usable questions", nil), http.StatusBadGateway, "GENERATION_FAILURE"},
		{"llm down", domain.NewLLMServiceError(errors.New("dial tcp")), http.StatusServiceUnavailable, "LLM_SERVICE_ERROR"},
		{"unsupported type", domain.NewUnsupportedQuestionTypeError("essay"), http.StatusInternalServerError, "UNSUPPORTED_QUESTION_TYPE"},
		{"internal", domain.NewInternalError("Failed to load quiz", errors.New("eof")), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"fiber error", fiber.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "HTTP_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)

			var body map[string]interface{}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body["code"])
			assert.EqualValues(t, tt.wantStatus, body["status"])
			assert.NotEmpty(t, body["message"])
		})
	}
}

func TestErrorHandler_ValidationErrors(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
	app.Post("/", func(c *fiber.Ctx) error {
		return domain.ValidationErrors{
			domain.NewMissingFieldError("answers"),
			domain.NewOutOfRangeError("totalTime", -1, 0, 86400),
		}
	})

	resp, err := app.Test(httptest.NewRequest("POST", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body middleware.ValidationErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "VALIDATION_ERROR", body.Code)
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "answers", body.Errors[0].Field)
	assert.Equal(t, domain.ErrOutOfRange, body.Errors[1].Code)
}
