package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes that AutoMigrate does not
// create. Postgres only; the pg_indexes lookup makes the call idempotent.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Task list queries filter by org/owner and sort by display order
		{"tasks", "idx_tasks_owner_display_order", "owner_id, display_order"},
		{"tasks", "idx_tasks_org_status", "organization_id, status"},
		{"tasks", "idx_tasks_category", "category"},

		// Audit reads scope by organization and sort by creation time
		{"audit_logs", "idx_audit_logs_org_created_at", "organization_id, created_at"},

		// Organization tree traversal follows parent_id
		{"organizations", "idx_organizations_parent_id", "parent_id"},
	}

	for _, idx := range indexes {
		var count int64
		err := db.Raw(`
			SELECT COUNT(*)
			FROM pg_indexes
			WHERE tablename = ? AND indexname = ?
		`, idx.table, idx.name).Count(&count).Error

		if err != nil {
			return fmt.Errorf("failed to check index %s: %w", idx.name, err)
		}

		if count > 0 {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
