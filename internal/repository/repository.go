package repository

import (
	"github.com/mizuki-dev/task-manager-api/internal/models"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	// FindByIDs finds all tasks whose IDs appear in the given list
	FindByIDs(ids []uint64) ([]models.Task, error)

	// List retrieves tasks matching the filter, ordered by display order
	List(filter TaskFilter) ([]models.Task, int64, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete soft deletes a task
	Delete(id uint64) error

	// MaxOrderForOwner returns the highest display order among the
	// owner's tasks, or -1 when the owner has none
	MaxOrderForOwner(ownerID uint64) (int, error)

	// Reorder assigns display order = list index to each task, all
	// within a single transaction
	Reorder(orderedIDs []uint64) error
}

// TaskFilter holds filtering options for listing tasks. Scoping fields
// (OrganizationIDs, OwnerID) are set from the actor's role; the rest are
// caller-supplied narrowing filters.
type TaskFilter struct {
	OrganizationIDs []uint64
	OwnerID         *uint64
	Status          *models.TaskStatus
	Category        *models.TaskCategory
	Search          string
}

// OrganizationRepository defines the interface for organization data
// access. It doubles as the rbac.OrganizationDirectory implementation.
type OrganizationRepository interface {
	// Create creates a new organization
	Create(org *models.Organization) error

	// FindByID finds an organization by ID
	FindByID(id uint64) (*models.Organization, error)

	// FindByName finds an organization by its unique name
	FindByName(name string) (*models.Organization, error)

	// ParentIDOf returns the parent organization ID, nil for roots
	ParentIDOf(orgID uint64) (*uint64, error)

	// DirectChildIDs returns the IDs of direct child organizations
	DirectChildIDs(orgID uint64) ([]uint64, error)

	// ListChildren returns the direct child organizations
	ListChildren(orgID uint64) ([]models.Organization, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ListByOrganizationIDs lists users belonging to any of the given
	// organizations
	ListByOrganizationIDs(orgIDs []uint64) ([]models.User, error)
}

// AuditLogRepository defines the interface for audit trail data access.
// Entries are append-only; there is no update or delete.
type AuditLogRepository interface {
	// Create appends an audit entry
	Create(entry *models.AuditLog) error

	// List retrieves entries for the given organizations, newest first
	List(filter AuditLogFilter) ([]models.AuditLog, int64, error)
}

// AuditLogFilter holds scoping and pagination for audit reads.
type AuditLogFilter struct {
	OrganizationIDs []uint64
	Page            int
	Limit           int
}
