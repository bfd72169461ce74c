package repository

import (
	"github.com/mizuki-dev/task-manager-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID with optional preloading
func (r *GormTaskRepository) FindByID(id uint64, preload ...string) (*models.Task, error) {
	var task models.Task
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&task, id).Error; err != nil {
		return nil, err
	}

	return &task, nil
}

// FindByIDs finds all tasks whose IDs appear in the given list. Missing
// IDs are simply absent from the result.
func (r *GormTaskRepository) FindByIDs(ids []uint64) ([]models.Task, error) {
	if len(ids) == 0 {
		return []models.Task{}, nil
	}

	var tasks []models.Task
	if err := r.db.Where("id IN ?", ids).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// List retrieves tasks matching the filter, ordered by display order
// ascending. An empty scope (no organizations and no owner) matches
// nothing.
func (r *GormTaskRepository) List(filter TaskFilter) ([]models.Task, int64, error) {
	var tasks []models.Task

	query := r.db.Model(&models.Task{})

	switch {
	case filter.OwnerID != nil:
		query = query.Where("tasks.owner_id = ?", *filter.OwnerID)
	case len(filter.OrganizationIDs) > 0:
		query = query.Where("tasks.organization_id IN ?", filter.OrganizationIDs)
	default:
		return []models.Task{}, 0, nil
	}

	if filter.Status != nil {
		query = query.Where("tasks.status = ?", *filter.Status)
	}
	if filter.Category != nil {
		query = query.Where("tasks.category = ?", *filter.Category)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("tasks.title LIKE ? OR tasks.description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Order("tasks.display_order ASC").Preload("Owner").Find(&tasks).Error; err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete soft deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// MaxOrderForOwner returns the highest display order among the owner's
// tasks, or -1 when the owner has none.
func (r *GormTaskRepository) MaxOrderForOwner(ownerID uint64) (int, error) {
	var max int
	err := r.db.Model(&models.Task{}).
		Where("owner_id = ?", ownerID).
		Select("COALESCE(MAX(display_order), -1)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max, nil
}

// Reorder assigns display order = list index to each task. The updates
// run in one transaction so concurrent readers never observe a
// partially applied ordering.
func (r *GormTaskRepository) Reorder(orderedIDs []uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			if err := tx.Model(&models.Task{}).
				Where("id = ?", id).
				Update("display_order", i).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
