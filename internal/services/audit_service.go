package services

import (
	"fmt"
	"log"

	"github.com/mizuki-dev/task-manager-api/internal/models"
	"github.com/mizuki-dev/task-manager-api/internal/rbac"
	"github.com/mizuki-dev/task-manager-api/internal/repository"
	"github.com/mizuki-dev/task-manager-api/internal/utils"
)

// AuditService records the audit trail and serves scoped reads of it.
type AuditService struct {
	auditRepo repository.AuditLogRepository
	engine    *rbac.Engine
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo repository.AuditLogRepository, engine *rbac.Engine) *AuditService {
	return &AuditService{
		auditRepo: auditRepo,
		engine:    engine,
	}
}

// LogEntryInput describes one audit trail entry.
type LogEntryInput struct {
	Action         models.AuditAction
	Resource       string
	ResourceID     *uint64
	UserID         uint64
	OrganizationID uint64
	Metadata       models.Metadata
}

// Log appends an audit entry. A failed write is logged and swallowed so
// the business operation that triggered it never fails on audit faults.
func (s *AuditService) Log(input LogEntryInput) {
	entry := &models.AuditLog{
		Action:         input.Action,
		Resource:       input.Resource,
		ResourceID:     input.ResourceID,
		UserID:         input.UserID,
		OrganizationID: input.OrganizationID,
		Metadata:       input.Metadata,
	}

	if err := s.auditRepo.Create(entry); err != nil {
		log.Printf("audit: failed to record %s on %s: %v", input.Action, input.Resource, err)
	}
}

// AuditPage is a page of audit entries with pagination metadata.
type AuditPage struct {
	Data  []models.AuditLog `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// FindAll returns the audit entries visible to the actor, newest first.
// Owners see their organization and its direct children, admins their
// own organization, viewers nothing.
func (s *AuditService) FindAll(actor rbac.Actor, page, limit int) (*AuditPage, error) {
	if actor.IsZero() {
		return nil, ErrNotAuthenticated
	}

	params := utils.NormalizePagination(page, limit)

	if !rbac.HasCapability(actor.Role, rbac.CapAuditRead) {
		return &AuditPage{Data: []models.AuditLog{}, Total: 0, Page: params.Page, Limit: params.Limit}, nil
	}

	entries, total, err := s.auditRepo.List(repository.AuditLogFilter{
		OrganizationIDs: s.engine.VisibleOrgIDs(actor),
		Page:            params.Page,
		Limit:           params.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}

	return &AuditPage{Data: entries, Total: total, Page: params.Page, Limit: params.Limit}, nil
}
