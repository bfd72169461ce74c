package rbac

// OrganizationDirectory supplies the parent/child structure the tree
// traversal needs, typically backed by the organization repository.
type OrganizationDirectory interface {
	// ParentIDOf returns the parent organization ID, or nil for roots
	// and unknown organizations.
	ParentIDOf(orgID uint64) (*uint64, error)

	// DirectChildIDs returns the IDs of organizations whose parent is
	// the given organization.
	DirectChildIDs(orgID uint64) ([]uint64, error)
}

// OrgTree answers ancestry questions over the organization forest. The
// traversal is deliberately one hop deep: same organization or direct
// parent/child, matching how scoping is applied everywhere else.
type OrgTree struct {
	dir OrganizationDirectory
}

// NewOrgTree creates an OrgTree over the given directory.
func NewOrgTree(dir OrganizationDirectory) *OrgTree {
	return &OrgTree{dir: dir}
}

// IsSameOrAncestorOf reports whether candidate is target itself or its
// direct parent. Unknown organizations and lookup failures yield false;
// a failed lookup must never widen access.
func (t *OrgTree) IsSameOrAncestorOf(candidateOrgID, targetOrgID uint64) bool {
	if candidateOrgID == targetOrgID {
		return true
	}

	parentID, err := t.dir.ParentIDOf(targetOrgID)
	if err != nil || parentID == nil {
		return false
	}

	return *parentID == candidateOrgID
}

// DescendantsOf returns the direct child organization IDs. Unknown
// organizations and lookup failures yield an empty set, which callers
// must treat as "no additional scope".
func (t *OrgTree) DescendantsOf(orgID uint64) []uint64 {
	children, err := t.dir.DirectChildIDs(orgID)
	if err != nil {
		return nil
	}
	return children
}
