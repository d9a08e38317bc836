package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-api/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-api/pkg/util"
)

// RequireStaff rejects callers without staff capability.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.Role().IsStaff() {
			return apperrors.NewForbidden("insufficient permissions")
		}
		return c.Next()
	}
}

// RequireCapability rejects callers whose role lacks the capability.
func RequireCapability(capability domain.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !principal.Role().Can(capability) {
			return apperrors.NewForbidden("insufficient permissions")
		}
		return c.Next()
	}
}
