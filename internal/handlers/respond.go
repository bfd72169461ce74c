package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/mizuki-dev/task-manager-api/internal/errors"
	"github.com/mizuki-dev/task-manager-api/internal/rbac"
	"github.com/mizuki-dev/task-manager-api/internal/services"
)

// respondServiceError maps service errors onto the API error taxonomy.
// NotFound and Forbidden stay distinct; a denial always carries its
// reason verbatim.
func respondServiceError(c *gin.Context, err error) {
	var denied *rbac.PermissionDeniedError
	if errors.As(err, &denied) {
		apierrors.Forbidden(c, denied.Reason)
		return
	}

	switch {
	case errors.Is(err, services.ErrNotAuthenticated):
		apierrors.Unauthorized(c, "")
	case errors.Is(err, services.ErrTaskNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrOrganizationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrOrganizationNameTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrTitleEmpty),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidCategory),
		errors.Is(err, services.ErrInvalidRole),
		errors.Is(err, services.ErrNoTaskIDs),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrInvalidOrganizationName):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
