package rbac

import (
	"testing"

	"github.com/mizuki-dev/task-manager-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestDominates_Ordering(t *testing.T) {
	assert.True(t, Dominates(models.RoleOwner, models.RoleAdmin))
	assert.True(t, Dominates(models.RoleOwner, models.RoleViewer))
	assert.True(t, Dominates(models.RoleAdmin, models.RoleViewer))

	assert.False(t, Dominates(models.RoleAdmin, models.RoleOwner))
	assert.False(t, Dominates(models.RoleViewer, models.RoleAdmin))
	assert.False(t, Dominates(models.RoleViewer, models.RoleOwner))
}

func TestDominates_Reflexive(t *testing.T) {
	for _, role := range []models.Role{models.RoleOwner, models.RoleAdmin, models.RoleViewer} {
		assert.True(t, Dominates(role, role), "%s should dominate itself", role)
	}
}

func TestDominates_UnknownRole(t *testing.T) {
	assert.False(t, Dominates(models.Role("superuser"), models.RoleViewer))
	assert.False(t, Dominates(models.Role(""), models.RoleViewer))
}

func TestStrictlyDominates(t *testing.T) {
	assert.True(t, StrictlyDominates(models.RoleOwner, models.RoleAdmin))
	assert.True(t, StrictlyDominates(models.RoleAdmin, models.RoleViewer))

	for _, role := range []models.Role{models.RoleOwner, models.RoleAdmin, models.RoleViewer} {
		assert.False(t, StrictlyDominates(role, role), "%s should not strictly dominate itself", role)
	}

	assert.False(t, StrictlyDominates(models.Role("superuser"), models.RoleViewer))
}

func TestWeight(t *testing.T) {
	assert.Equal(t, 3, Weight(models.RoleOwner))
	assert.Equal(t, 2, Weight(models.RoleAdmin))
	assert.Equal(t, 1, Weight(models.RoleViewer))
	assert.Equal(t, 0, Weight(models.Role("unknown")))
}
