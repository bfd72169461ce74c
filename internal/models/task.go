package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

// IsValid reports whether the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return true
	}
	return false
}

type TaskCategory string

const (
	TaskCategoryWork     TaskCategory = "work"
	TaskCategoryPersonal TaskCategory = "personal"
	TaskCategoryShopping TaskCategory = "shopping"
	TaskCategoryHealth   TaskCategory = "health"
	TaskCategoryFinance  TaskCategory = "finance"
	TaskCategoryOther    TaskCategory = "other"
)

// IsValid reports whether the category is one of the known values.
func (c TaskCategory) IsValid() bool {
	switch c {
	case TaskCategoryWork, TaskCategoryPersonal, TaskCategoryShopping,
		TaskCategoryHealth, TaskCategoryFinance, TaskCategoryOther:
		return true
	}
	return false
}

type Task struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Title          string         `gorm:"not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Category       TaskCategory   `gorm:"type:varchar(20);not null;default:'other'" json:"category"`
	Status         TaskStatus     `gorm:"type:varchar(20);not null;default:'todo'" json:"status"`
	Order          int            `gorm:"column:display_order;not null;default:0" json:"order"`
	OwnerID        uint64         `gorm:"not null;index" json:"owner_id"`
	OrganizationID uint64         `gorm:"not null;index" json:"organization_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Owner        User         `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}
