package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mizuki-dev/task-manager-api/internal/dto"
	apierrors "github.com/mizuki-dev/task-manager-api/internal/errors"
	"github.com/mizuki-dev/task-manager-api/internal/middleware"
	"github.com/mizuki-dev/task-manager-api/internal/services"
)

type OrganizationHandler struct {
	orgService *services.OrganizationService
}

func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
	}
}

// CreateChildOrganization creates a child of the actor's organization
func (h *OrganizationHandler) CreateChildOrganization(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateOrganizationRequest struct {
		Name string `json:"name" binding:"required"`
	}

	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "")
		return
	}

	org, err := h.orgService.CreateChildOrganization(actor, req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationDTO(*org))
}

// ListChildOrganizations lists the direct children of the actor's organization
func (h *OrganizationHandler) ListChildOrganizations(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	children, err := h.orgService.ListChildOrganizations(actor)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	items := make([]dto.OrganizationDTO, len(children))
	for i, org := range children {
		items[i] = dto.ToOrganizationDTO(org)
	}

	c.JSON(http.StatusOK, gin.H{"organizations": items})
}
