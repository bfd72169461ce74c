package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionRead   AuditAction = "read"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionLogin  AuditAction = "login"
	AuditActionLogout AuditAction = "logout"
)

// Metadata is an opaque key-value payload stored as JSON.
type Metadata map[string]interface{}

// Value implements driver.Valuer for storing metadata as a JSON column.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for reading metadata back from the database.
func (m *Metadata) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for metadata column")
	}
}

// AuditLog is an append-only trail entry. Rows are never updated or
// deleted by the application.
type AuditLog struct {
	ID             uint64      `gorm:"primarykey" json:"id"`
	Action         AuditAction `gorm:"type:varchar(20);not null" json:"action"`
	Resource       string      `gorm:"type:varchar(50);not null" json:"resource"`
	ResourceID     *uint64     `json:"resource_id"`
	UserID         uint64      `gorm:"not null;index" json:"user_id"`
	OrganizationID uint64      `gorm:"not null;index" json:"organization_id"`
	Metadata       Metadata    `gorm:"type:text" json:"metadata"`
	CreatedAt      time.Time   `gorm:"index" json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
