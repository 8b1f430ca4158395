package middleware

import (
	pkgHTTP "github.com/LerianStudio/lib-license-verify/pkg/net/http"
	"github.com/gofiber/fiber/v2"
)

// Middleware creates a Fiber middleware that refuses requests while the installation license is invalid
func (c *LicenseClient) Middleware() fiber.Handler {
	c.startupValidation()

	return func(ctx *fiber.Ctx) error {
		if err := c.gate(); err != nil {
			return pkgHTTP.WithError(ctx, err)
		}

		return ctx.Next()
	}
}
