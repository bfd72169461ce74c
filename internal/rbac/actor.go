package rbac

import "github.com/mizuki-dev/task-manager-api/internal/models"

// Actor is the already-authenticated identity behind an operation. It is
// resolved once per request by the session middleware and passed down as
// a plain value; it is never persisted.
type Actor struct {
	SubjectID      uint64
	Role           models.Role
	OrganizationID uint64
}

// IsZero reports whether no authenticated identity is present.
func (a Actor) IsZero() bool {
	return a.SubjectID == 0
}
