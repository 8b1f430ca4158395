package http

import (
	"errors"

	commonsHttp "github.com/LerianStudio/lib-commons/commons/net/http"
	"github.com/LerianStudio/lib-license-verify/pkg"
	"github.com/gofiber/fiber/v2"
)

// WithError writes err as the JSON error response matching its type.
func WithError(c *fiber.Ctx, err error) error {
	switch e := err.(type) {
	case pkg.ValidationError:
		return commonsHttp.BadRequest(c, pkg.ResponseError{
			Code:    e.Code,
			Title:   e.Title,
			Message: e.Message,
		})
	case pkg.UnprocessableOperationError:
		return commonsHttp.UnprocessableEntity(c, e.Code, e.Title, e.Message)
	case pkg.ForbiddenError:
		return commonsHttp.Forbidden(c, e.Code, e.Title, e.Message)
	default:
		var iErr pkg.InternalServerError
		_ = errors.As(pkg.ValidateInternalError(err, ""), &iErr)

		return commonsHttp.InternalServerError(c, iErr.Code, iErr.Title, iErr.Message)
	}
}
