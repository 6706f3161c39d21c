package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	apierrors "github.com/yukikurage/project-tracker-api/internal/errors"
	"github.com/yukikurage/project-tracker-api/internal/services"
)

// respondServiceError maps a service error onto the response envelope.
// Unexpected errors are attached to the context for the request logger.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrDuplicateAccount):
		apierrors.DuplicateAccount(c)
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c)
	case errors.Is(err, services.ErrInvalidToken):
		apierrors.Unauthorized(c, "")
	default:
		_ = c.Error(err)
		apierrors.InternalError(c, "")
	}
}
