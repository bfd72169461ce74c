package dto

import (
	"time"

	"github.com/mizuki-dev/task-manager-api/internal/models"
	"github.com/mizuki-dev/task-manager-api/internal/services"
)

// AuditLogDTO represents one audit trail entry in API responses
type AuditLogDTO struct {
	ID             uint64             `json:"id"`
	Action         models.AuditAction `json:"action"`
	Resource       string             `json:"resource"`
	ResourceID     *uint64            `json:"resource_id,omitempty"`
	UserID         uint64             `json:"user_id"`
	OrganizationID uint64             `json:"organization_id"`
	Metadata       models.Metadata    `json:"metadata,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	User           *UserDTO           `json:"user,omitempty"`
}

// AuditListResponse represents a page of audit entries
type AuditListResponse struct {
	Data  []AuditLogDTO `json:"data"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// ToAuditLogDTO converts an AuditLog model to AuditLogDTO
func ToAuditLogDTO(entry models.AuditLog) AuditLogDTO {
	dto := AuditLogDTO{
		ID:             entry.ID,
		Action:         entry.Action,
		Resource:       entry.Resource,
		ResourceID:     entry.ResourceID,
		UserID:         entry.UserID,
		OrganizationID: entry.OrganizationID,
		Metadata:       entry.Metadata,
		CreatedAt:      entry.CreatedAt,
	}

	// Include user if preloaded
	if entry.User.ID != 0 {
		user := ToUserDTO(entry.User)
		dto.User = &user
	}

	return dto
}

// ToAuditListResponse converts an audit page to AuditListResponse
func ToAuditListResponse(page *services.AuditPage) AuditListResponse {
	items := make([]AuditLogDTO, len(page.Data))
	for i, entry := range page.Data {
		items[i] = ToAuditLogDTO(entry)
	}

	return AuditListResponse{
		Data:  items,
		Total: page.Total,
		Page:  page.Page,
		Limit: page.Limit,
	}
}
