package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mizuki-dev/task-manager-api/internal/dto"
	apierrors "github.com/mizuki-dev/task-manager-api/internal/errors"
	"github.com/mizuki-dev/task-manager-api/internal/middleware"
	"github.com/mizuki-dev/task-manager-api/internal/services"
	"github.com/mizuki-dev/task-manager-api/internal/utils"
)

type AuditHandler struct {
	auditService *services.AuditService
}

func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{
		auditService: auditService,
	}
}

// ListAuditLogs returns the audit entries visible to the current actor,
// newest first, paginated.
func (h *AuditHandler) ListAuditLogs(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	params := utils.GetPaginationParams(c)

	page, err := h.auditService.FindAll(actor, params.Page, params.Limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToAuditListResponse(page))
}
