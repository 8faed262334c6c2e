package handler

import (
	"studyhub/internal/domain"
	"studyhub/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// parseBody decodes a JSON body. An empty body leaves dst untouched when
// optional is set.
func parseBody(c *fiber.Ctx, dst interface{}, optional bool) error {
	if len(c.Body()) == 0 {
		if optional {
			return nil
		}
		return domain.NewInvalidInputError("Request body is required")
	}
	if err := c.BodyParser(dst); err != nil {
		logger.Get().Debug("Failed to parse request body", zap.String("path", c.Path()), zap.Error(err))
		return domain.NewInvalidInputError("Invalid request body")
	}
	return nil
}
