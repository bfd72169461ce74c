package rbac

import (
	"errors"
	"testing"

	"github.com/mizuki-dev/task-manager-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDirectory is an in-memory OrganizationDirectory for engine tests.
type fakeDirectory struct {
	parents map[uint64]*uint64
	failing bool
}

func (d *fakeDirectory) ParentIDOf(orgID uint64) (*uint64, error) {
	if d.failing {
		return nil, errors.New("directory unavailable")
	}
	return d.parents[orgID], nil
}

func (d *fakeDirectory) DirectChildIDs(orgID uint64) ([]uint64, error) {
	if d.failing {
		return nil, errors.New("directory unavailable")
	}
	var children []uint64
	for id, parent := range d.parents {
		if parent != nil && *parent == orgID {
			children = append(children, id)
		}
	}
	return children, nil
}

func ptr(v uint64) *uint64 { return &v }

// newTestEngine builds an engine over a tree where org 1 is the parent
// of org 2, and org 3 is an unrelated root.
func newTestEngine() *Engine {
	dir := &fakeDirectory{parents: map[uint64]*uint64{
		1: nil,
		2: ptr(1),
		3: nil,
	}}
	return NewEngine(NewOrgTree(dir))
}

func TestOrgTree_IsSameOrAncestorOf(t *testing.T) {
	tree := NewOrgTree(&fakeDirectory{parents: map[uint64]*uint64{
		1: nil,
		2: ptr(1),
		3: ptr(2),
	}})

	assert.True(t, tree.IsSameOrAncestorOf(1, 1))
	assert.True(t, tree.IsSameOrAncestorOf(1, 2))

	// One hop only: grandparents do not qualify.
	assert.False(t, tree.IsSameOrAncestorOf(1, 3))
	// Nor do children upward.
	assert.False(t, tree.IsSameOrAncestorOf(2, 1))
	// Unknown orgs never widen access.
	assert.False(t, tree.IsSameOrAncestorOf(1, 99))
}

func TestOrgTree_LookupFailureYieldsNoScope(t *testing.T) {
	tree := NewOrgTree(&fakeDirectory{failing: true})

	assert.False(t, tree.IsSameOrAncestorOf(1, 2))
	assert.Empty(t, tree.DescendantsOf(1))
}

func TestOrgTree_DescendantsOf(t *testing.T) {
	tree := NewOrgTree(&fakeDirectory{parents: map[uint64]*uint64{
		1: nil,
		2: ptr(1),
		3: ptr(1),
		4: ptr(2),
	}})

	assert.ElementsMatch(t, []uint64{2, 3}, tree.DescendantsOf(1))
	assert.ElementsMatch(t, []uint64{4}, tree.DescendantsOf(2))
	assert.Empty(t, tree.DescendantsOf(99))
}

func TestDecide_Owner(t *testing.T) {
	engine := newTestEngine()
	owner := Actor{SubjectID: 10, Role: models.RoleOwner, OrganizationID: 1}

	for _, action := range []Action{ActionRead, ActionUpdate, ActionDelete} {
		// Own org, foreign resource owner: allowed.
		d := engine.Decide(owner, Resource{OwnerID: 20, OrganizationID: 1}, action)
		assert.True(t, d.Allowed, "owner %s in own org", action)

		// Direct child org: allowed.
		d = engine.Decide(owner, Resource{OwnerID: 20, OrganizationID: 2}, action)
		assert.True(t, d.Allowed, "owner %s in child org", action)

		// Unrelated org: denied.
		d = engine.Decide(owner, Resource{OwnerID: 20, OrganizationID: 3}, action)
		assert.False(t, d.Allowed)
		assert.Equal(t, ReasonCrossOrganization, d.Reason)
	}
}

func TestDecide_Admin(t *testing.T) {
	engine := newTestEngine()
	admin := Actor{SubjectID: 10, Role: models.RoleAdmin, OrganizationID: 1}

	// Same org read/update on a foreign resource: allowed.
	assert.True(t, engine.Decide(admin, Resource{OwnerID: 20, OrganizationID: 1}, ActionRead).Allowed)
	assert.True(t, engine.Decide(admin, Resource{OwnerID: 20, OrganizationID: 1}, ActionUpdate).Allowed)

	// Delete requires ownership even within the same org.
	d := engine.Decide(admin, Resource{OwnerID: 20, OrganizationID: 1}, ActionDelete)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonAdminDeleteForeign, d.Reason)

	assert.True(t, engine.Decide(admin, Resource{OwnerID: 10, OrganizationID: 1}, ActionDelete).Allowed)

	// Parent-org visibility is owner-only; an admin in the parent org is
	// denied everything in the child org.
	adminOfParent := Actor{SubjectID: 10, Role: models.RoleAdmin, OrganizationID: 1}
	for _, action := range []Action{ActionRead, ActionUpdate, ActionDelete} {
		d := engine.Decide(adminOfParent, Resource{OwnerID: 10, OrganizationID: 2}, action)
		assert.False(t, d.Allowed, "admin %s in child org", action)
		assert.Equal(t, ReasonCrossOrganization, d.Reason)
	}
}

func TestDecide_Viewer(t *testing.T) {
	engine := newTestEngine()
	viewer := Actor{SubjectID: 10, Role: models.RoleViewer, OrganizationID: 1}

	// Own resource: read only.
	own := Resource{OwnerID: 10, OrganizationID: 1}
	assert.True(t, engine.Decide(viewer, own, ActionRead).Allowed)

	for _, action := range []Action{ActionUpdate, ActionDelete} {
		d := engine.Decide(viewer, own, action)
		assert.False(t, d.Allowed, "viewer %s own resource", action)
		assert.Equal(t, ReasonViewerReadOnly, d.Reason)
	}

	// Foreign resource: denied even for read, even in the same org.
	d := engine.Decide(viewer, Resource{OwnerID: 20, OrganizationID: 1}, ActionRead)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonViewerNotOwner, d.Reason)
}

func TestDecide_InvalidRole(t *testing.T) {
	engine := newTestEngine()
	actor := Actor{SubjectID: 10, Role: models.Role("superuser"), OrganizationID: 1}

	d := engine.Decide(actor, Resource{OwnerID: 10, OrganizationID: 1}, ActionRead)
	assert.False(t, d.Allowed)
	assert.Equal(t, ReasonInvalidRole, d.Reason)
}

func TestDecide_Pure(t *testing.T) {
	engine := newTestEngine()
	actors := []Actor{
		{SubjectID: 10, Role: models.RoleOwner, OrganizationID: 1},
		{SubjectID: 10, Role: models.RoleAdmin, OrganizationID: 1},
		{SubjectID: 10, Role: models.RoleViewer, OrganizationID: 1},
	}
	resources := []Resource{
		{OwnerID: 10, OrganizationID: 1},
		{OwnerID: 20, OrganizationID: 2},
		{OwnerID: 20, OrganizationID: 3},
	}

	for _, actor := range actors {
		for _, resource := range resources {
			for _, action := range []Action{ActionRead, ActionUpdate, ActionDelete} {
				first := engine.Decide(actor, resource, action)
				for i := 0; i < 3; i++ {
					assert.Equal(t, first, engine.Decide(actor, resource, action))
				}
			}
		}
	}
}

func TestAuthorize(t *testing.T) {
	engine := newTestEngine()
	admin := Actor{SubjectID: 10, Role: models.RoleAdmin, OrganizationID: 1}

	require.NoError(t, engine.Authorize(admin, Resource{OwnerID: 10, OrganizationID: 1}, ActionDelete))

	err := engine.Authorize(admin, Resource{OwnerID: 20, OrganizationID: 1}, ActionDelete)
	require.Error(t, err)

	var denied *PermissionDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, ReasonAdminDeleteForeign, denied.Reason)
	assert.Equal(t, ReasonAdminDeleteForeign, err.Error())
}

func TestVisibleOrgIDs(t *testing.T) {
	engine := newTestEngine()

	owner := Actor{SubjectID: 10, Role: models.RoleOwner, OrganizationID: 1}
	assert.ElementsMatch(t, []uint64{1, 2}, engine.VisibleOrgIDs(owner))

	admin := Actor{SubjectID: 10, Role: models.RoleAdmin, OrganizationID: 1}
	assert.Equal(t, []uint64{1}, engine.VisibleOrgIDs(admin))

	viewer := Actor{SubjectID: 10, Role: models.RoleViewer, OrganizationID: 1}
	assert.Empty(t, engine.VisibleOrgIDs(viewer))
}
