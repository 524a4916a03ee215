package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRolesDropsUnknownTags(t *testing.T) {
	s := NormalizeRoles([]string{"admin", " Socio ", "PROFESOR", "superuser", "", "adminn"})

	assert.True(t, s.Has(RoleAdmin))
	assert.True(t, s.Has(RoleSocio))
	assert.True(t, s.Has(RoleProfesor))
	assert.Len(t, s, 3)
}

func TestNilRoleSetIsEmpty(t *testing.T) {
	var s RoleSet

	assert.False(t, s.Has(RoleAdmin))
	assert.False(t, s.HasAny(RoleAdmin, RoleDirigente, RoleEmpleado))
	assert.Empty(t, s.List())
}

func TestHasAny(t *testing.T) {
	s := NewRoleSet(RoleSocio, RoleProfesor)

	assert.True(t, s.HasAny(RoleAdmin, RoleProfesor))
	assert.False(t, s.HasAny(RoleAdmin, RoleDirigente))
	assert.False(t, s.HasAny())
}

func TestListIsStable(t *testing.T) {
	s := NewRoleSet(RoleProfesor, RoleAdmin, RoleSocio)

	for i := 0; i < 10; i++ {
		assert.Equal(t, []string{"socio", "admin", "profesor"}, s.List())
	}
}
