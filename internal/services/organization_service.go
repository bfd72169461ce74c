package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mizuki-dev/task-manager-api/internal/models"
	"github.com/mizuki-dev/task-manager-api/internal/rbac"
	"github.com/mizuki-dev/task-manager-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidOrganizationName = errors.New("organization name cannot be empty")
	ErrOrganizationNameTaken   = errors.New("organization name already exists")
)

// OrganizationService manages the organization tree. Organizations are
// only ever created here; nothing deletes them.
type OrganizationService struct {
	orgRepo repository.OrganizationRepository
	audit   *AuditService
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository, audit *AuditService) *OrganizationService {
	return &OrganizationService{
		orgRepo: orgRepo,
		audit:   audit,
	}
}

// CreateChildOrganization creates an organization whose parent is the
// actor's organization. Only owners may grow the tree.
func (s *OrganizationService) CreateChildOrganization(actor rbac.Actor, name string) (*models.Organization, error) {
	if actor.IsZero() {
		return nil, ErrNotAuthenticated
	}
	if actor.Role != models.RoleOwner {
		return nil, &rbac.PermissionDeniedError{Reason: "Only organization owners can perform this action"}
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidOrganizationName
	}

	if _, err := s.orgRepo.FindByName(name); err == nil {
		return nil, ErrOrganizationNameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check organization name: %w", err)
	}

	parentID := actor.OrganizationID
	org := &models.Organization{
		Name:     name,
		ParentID: &parentID,
	}

	if err := s.orgRepo.Create(org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	s.audit.Log(LogEntryInput{
		Action:         models.AuditActionCreate,
		Resource:       "organization",
		ResourceID:     &org.ID,
		UserID:         actor.SubjectID,
		OrganizationID: actor.OrganizationID,
		Metadata:       models.Metadata{"name": org.Name},
	})

	return org, nil
}

// ListChildOrganizations returns the direct children of the actor's
// organization. Only owners hold child-org scope.
func (s *OrganizationService) ListChildOrganizations(actor rbac.Actor) ([]models.Organization, error) {
	if actor.IsZero() {
		return nil, ErrNotAuthenticated
	}
	if actor.Role != models.RoleOwner {
		return nil, &rbac.PermissionDeniedError{Reason: "Only organization owners can perform this action"}
	}

	children, err := s.orgRepo.ListChildren(actor.OrganizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list child organizations: %w", err)
	}

	return children, nil
}
