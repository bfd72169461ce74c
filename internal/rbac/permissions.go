package rbac

import "github.com/mizuki-dev/task-manager-api/internal/models"

// Capability is a coarse-grained permission token. The table below only
// gates whether an action class is ever available to a role; per-resource
// ownership and organization scoping are decided by the Engine.
type Capability string

const (
	CapTaskCreate Capability = "task:create"
	CapTaskRead   Capability = "task:read"
	CapTaskUpdate Capability = "task:update"
	CapTaskDelete Capability = "task:delete"

	CapTaskReadOwn   Capability = "task:read:own"
	CapTaskUpdateOwn Capability = "task:update:own"
	CapTaskDeleteOwn Capability = "task:delete:own"

	CapTaskReadOrg   Capability = "task:read:org"
	CapTaskUpdateOrg Capability = "task:update:org"
	CapTaskDeleteOrg Capability = "task:delete:org"

	CapAuditRead Capability = "audit:read"

	CapUserRead   Capability = "user:read"
	CapUserCreate Capability = "user:create"
	CapUserUpdate Capability = "user:update"
	CapUserDelete Capability = "user:delete"
)

var rolePermissions = map[models.Role][]Capability{
	models.RoleOwner: {
		CapTaskCreate,
		CapTaskRead,
		CapTaskUpdate,
		CapTaskDelete,
		CapTaskReadOwn,
		CapTaskUpdateOwn,
		CapTaskDeleteOwn,
		CapTaskReadOrg,
		CapTaskUpdateOrg,
		CapTaskDeleteOrg,
		CapAuditRead,
		CapUserRead,
		CapUserCreate,
		CapUserUpdate,
		CapUserDelete,
	},
	models.RoleAdmin: {
		CapTaskCreate,
		CapTaskReadOwn,
		CapTaskUpdateOwn,
		CapTaskDeleteOwn,
		CapTaskReadOrg,
		CapTaskUpdateOrg,
		CapAuditRead,
		CapUserRead,
	},
	models.RoleViewer: {
		CapTaskReadOwn,
		CapTaskReadOrg,
	},
}

// HasCapability reports whether the role's capability set contains the
// given token.
func HasCapability(role models.Role, capability Capability) bool {
	for _, c := range rolePermissions[role] {
		if c == capability {
			return true
		}
	}
	return false
}

// CapabilitiesFor returns a copy of the role's capability set.
func CapabilitiesFor(role models.Role) []Capability {
	caps := rolePermissions[role]
	out := make([]Capability, len(caps))
	copy(out, caps)
	return out
}
