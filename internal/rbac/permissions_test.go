package rbac

import (
	"testing"

	"github.com/mizuki-dev/task-manager-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestHasCapability(t *testing.T) {
	tests := []struct {
		name       string
		role       models.Role
		capability Capability
		want       bool
	}{
		{"owner can create tasks", models.RoleOwner, CapTaskCreate, true},
		{"owner can read audit logs", models.RoleOwner, CapAuditRead, true},
		{"owner can create users", models.RoleOwner, CapUserCreate, true},
		{"admin can create tasks", models.RoleAdmin, CapTaskCreate, true},
		{"admin can read audit logs", models.RoleAdmin, CapAuditRead, true},
		{"admin cannot delete org-wide", models.RoleAdmin, CapTaskDeleteOrg, false},
		{"admin cannot create users", models.RoleAdmin, CapUserCreate, false},
		{"viewer cannot create tasks", models.RoleViewer, CapTaskCreate, false},
		{"viewer cannot read audit logs", models.RoleViewer, CapAuditRead, false},
		{"viewer can read own tasks", models.RoleViewer, CapTaskReadOwn, true},
		{"unknown role has nothing", models.Role("superuser"), CapTaskReadOwn, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasCapability(tt.role, tt.capability))
		})
	}
}

func TestCapabilitiesFor(t *testing.T) {
	viewerCaps := CapabilitiesFor(models.RoleViewer)
	assert.ElementsMatch(t, []Capability{CapTaskReadOwn, CapTaskReadOrg}, viewerCaps)

	// The returned slice is a copy; mutating it must not poison the table.
	if len(viewerCaps) > 0 {
		viewerCaps[0] = CapTaskDelete
	}
	assert.False(t, HasCapability(models.RoleViewer, CapTaskDelete))

	assert.Empty(t, CapabilitiesFor(models.Role("unknown")))
}
