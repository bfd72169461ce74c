package repository

import (
	"github.com/mizuki-dev/task-manager-api/internal/models"
	"gorm.io/gorm"
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// Create creates a new organization
func (r *GormOrganizationRepository) Create(org *models.Organization) error {
	return r.db.Create(org).Error
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(id uint64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindByName finds an organization by its unique name
func (r *GormOrganizationRepository) FindByName(name string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("name = ?", name).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// ParentIDOf returns the parent organization ID, nil for roots and
// unknown organizations.
func (r *GormOrganizationRepository) ParentIDOf(orgID uint64) (*uint64, error) {
	var org models.Organization
	if err := r.db.Select("parent_id").First(&org, orgID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return org.ParentID, nil
}

// DirectChildIDs returns the IDs of direct child organizations
func (r *GormOrganizationRepository) DirectChildIDs(orgID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.Model(&models.Organization{}).
		Where("parent_id = ?", orgID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListChildren returns the direct child organizations
func (r *GormOrganizationRepository) ListChildren(orgID uint64) ([]models.Organization, error) {
	var children []models.Organization
	if err := r.db.Where("parent_id = ?", orgID).Find(&children).Error; err != nil {
		return nil, err
	}
	return children, nil
}
