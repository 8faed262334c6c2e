package middleware

import (
	"studyhub/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidateIDParams rejects requests whose named path parameters are not
// well-formed entity ids. Errors are rendered by ErrorHandler.
func ValidateIDParams(v *validation.Validator, params ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, name := range params {
			if errs := v.ValidateID(name, c.Params(name)); len(errs) > 0 {
				return errs
			}
		}
		return c.Next()
	}
}

// ValidateUserIDParam checks a path parameter holding a user id. User ids may
// come from an external identity provider, so they are not required to be ULIDs.
func ValidateUserIDParam(v *validation.Validator, param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if errs := v.ValidateUserID(param, c.Params(param)); len(errs) > 0 {
			return errs
		}
		return c.Next()
	}
}
