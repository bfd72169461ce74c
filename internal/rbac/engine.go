package rbac

import "github.com/mizuki-dev/task-manager-api/internal/models"

// Action identifies the class of operation being attempted on a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource is the minimal view of a protected entity the engine needs.
type Resource struct {
	OwnerID        uint64
	OrganizationID uint64
}

// Decision is the verdict for a single (actor, resource, action) triple.
type Decision struct {
	Allowed bool
	Reason  string
}

// PermissionDeniedError carries the human-readable denial reason to the
// caller. Callers surface it verbatim as a Forbidden error.
type PermissionDeniedError struct {
	Reason string
}

func (e *PermissionDeniedError) Error() string {
	return e.Reason
}

// Denial reasons surfaced to callers.
const (
	ReasonCrossOrganization  = "Task belongs to a different organization"
	ReasonAdminDeleteForeign = "Admins can only delete their own tasks"
	ReasonViewerNotOwner     = "You can only access your own tasks"
	ReasonViewerReadOnly     = "Viewers can only read tasks"
	ReasonInvalidRole        = "Invalid role"
)

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Engine combines the role hierarchy, the organization tree, and
// resource ownership into a per-action verdict. It holds no mutable
// state; identical inputs always produce the identical decision.
type Engine struct {
	orgs *OrgTree
}

// NewEngine creates an Engine over the given organization tree.
func NewEngine(orgs *OrgTree) *Engine {
	return &Engine{orgs: orgs}
}

// Decide evaluates whether the actor may perform the action on the
// resource.
//
// Owners act anywhere in their one-hop org scope. Admins act only inside
// their own organization and may delete only resources they own. Viewers
// may only read resources they own.
func (e *Engine) Decide(actor Actor, resource Resource, action Action) Decision {
	isResourceOwner := actor.SubjectID == resource.OwnerID
	isSameOrg := actor.OrganizationID == resource.OrganizationID

	isParentOrg := false
	if !isSameOrg {
		isParentOrg = e.orgs.IsSameOrAncestorOf(actor.OrganizationID, resource.OrganizationID)
	}

	canAccessOrg := isSameOrg || isParentOrg

	switch actor.Role {
	case models.RoleOwner:
		if !canAccessOrg {
			return deny(ReasonCrossOrganization)
		}
		return allow()

	case models.RoleAdmin:
		// Parent-org visibility is owner-only; an admin's org must match.
		if !isSameOrg {
			return deny(ReasonCrossOrganization)
		}
		if action == ActionDelete && !isResourceOwner {
			return deny(ReasonAdminDeleteForeign)
		}
		return allow()

	case models.RoleViewer:
		if !isResourceOwner {
			return deny(ReasonViewerNotOwner)
		}
		if action != ActionRead {
			return deny(ReasonViewerReadOnly)
		}
		return allow()

	default:
		return deny(ReasonInvalidRole)
	}
}

// Authorize is Decide folded into the error domain: nil on allow, a
// *PermissionDeniedError carrying the reason on deny.
func (e *Engine) Authorize(actor Actor, resource Resource, action Action) error {
	if d := e.Decide(actor, resource, action); !d.Allowed {
		return &PermissionDeniedError{Reason: d.Reason}
	}
	return nil
}

// VisibleOrgIDs returns the organization IDs an actor's list queries are
// scoped to: owners see their own org plus direct children, admins see
// their own org, viewers see no org-wide scope (they are filtered by
// ownership instead).
func (e *Engine) VisibleOrgIDs(actor Actor) []uint64 {
	switch actor.Role {
	case models.RoleOwner:
		return append([]uint64{actor.OrganizationID}, e.orgs.DescendantsOf(actor.OrganizationID)...)
	case models.RoleAdmin:
		return []uint64{actor.OrganizationID}
	default:
		return nil
	}
}
