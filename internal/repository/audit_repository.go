package repository

import (
	"github.com/mizuki-dev/task-manager-api/internal/database"
	"github.com/mizuki-dev/task-manager-api/internal/models"
	"github.com/mizuki-dev/task-manager-api/internal/utils"
	"gorm.io/gorm"
)

// GormAuditLogRepository is a GORM implementation of AuditLogRepository
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new AuditLogRepository
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Create appends an audit entry
func (r *GormAuditLogRepository) Create(entry *models.AuditLog) error {
	return r.db.Create(entry).Error
}

// List retrieves entries for the given organizations, newest first. An
// empty organization scope matches nothing.
func (r *GormAuditLogRepository) List(filter AuditLogFilter) ([]models.AuditLog, int64, error) {
	if len(filter.OrganizationIDs) == 0 {
		return []models.AuditLog{}, 0, nil
	}

	query := r.db.Model(&models.AuditLog{}).
		Where("organization_id IN ?", filter.OrganizationIDs)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var entries []models.AuditLog
	listQuery := query.Order("created_at DESC").Preload("User")
	if filter.Page > 0 && filter.Limit > 0 {
		listQuery = listQuery.Scopes(database.Paginate(utils.NormalizePagination(filter.Page, filter.Limit)))
	}

	if err := listQuery.Find(&entries).Error; err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}
