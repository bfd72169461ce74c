// Package rbac implements the role hierarchy, the static permission
// table, the organization-tree traversal, and the access decision
// engine every task and audit operation is gated through.
package rbac

import "github.com/mizuki-dev/task-manager-api/internal/models"

// roleWeights totally orders the known roles. Unknown roles weigh 0 and
// dominate nothing.
var roleWeights = map[models.Role]int{
	models.RoleOwner:  3,
	models.RoleAdmin:  2,
	models.RoleViewer: 1,
}

// Weight returns the hierarchy weight of a role, 0 for unknown roles.
func Weight(role models.Role) int {
	return roleWeights[role]
}

// Dominates reports whether actorRole ranks at least as high as
// requiredRole. Every known role dominates itself.
func Dominates(actorRole, requiredRole models.Role) bool {
	actorWeight, ok := roleWeights[actorRole]
	if !ok {
		return false
	}
	return actorWeight >= roleWeights[requiredRole]
}

// StrictlyDominates reports whether managerRole ranks strictly higher
// than targetRole. Used for "can manage this role" checks.
func StrictlyDominates(managerRole, targetRole models.Role) bool {
	managerWeight, ok := roleWeights[managerRole]
	if !ok {
		return false
	}
	return managerWeight > roleWeights[targetRole]
}
