package middleware

import (
	"bio-kids-puzzles/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the validation middleware
const (
	LevelIDKey   = "validated_level_id"
	SessionIDKey = "validated_session_id"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateLevelID checks the :id path parameter and stores it as an int
func (vm *ValidationMiddleware) ValidateLevelID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, errs := vm.validator.ValidateLevelID(c.Params("id"))
		if len(errs) > 0 {
			return errs
		}
		c.Locals(LevelIDKey, id)
		return c.Next()
	}
}

// ValidateSessionID checks the :sessionID path parameter
func (vm *ValidationMiddleware) ValidateSessionID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		sessionID := c.Params("sessionID")
		if errs := vm.validator.ValidateSessionID(sessionID); len(errs) > 0 {
			return errs
		}
		c.Locals(SessionIDKey, sessionID)
		return c.Next()
	}
}

// Validator returns the underlying validator for body validation in handlers
func (vm *ValidationMiddleware) Validator() *validation.Validator {
	return vm.validator
}
