package middleware

import (
	"strings"

	"studyhub/internal/domain"
	"studyhub/internal/logger"
	"studyhub/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	UserIDKey           = "userID" // Key for storing UserID in fiber.Ctx locals
)

// OptionalAuth authenticates the caller when a bearer token is present.
// A valid token stores the user id under UserIDKey; a malformed or invalid
// one is rejected with 401. Requests without the header pass through.
func OptionalAuth(authService service.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Next()
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return domain.NewUnauthorizedError("Authorization scheme is not Bearer")
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, BearerSchema))
		if tokenString == "" {
			return domain.NewUnauthorizedError("Token is empty")
		}

		claims, err := authService.ValidateToken(tokenString)
		if err != nil {
			return domain.NewUnauthorizedError("Invalid or expired access token")
		}

		c.Locals(UserIDKey, claims.Subject)
		logger.Get().Debug("OptionalAuth: User authenticated.", zap.String("userID", claims.Subject))
		return c.Next()
	}
}

// UserIDFromCtx returns the authenticated user id, or "" for anonymous calls.
func UserIDFromCtx(c *fiber.Ctx) string {
	userID, _ := c.Locals(UserIDKey).(string)
	return userID
}
