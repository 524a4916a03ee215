package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint { return &v }

func TestMembershipPredicatesNonMember(t *testing.T) {
	for name, u := range map[string]*User{
		"nil user":      nil,
		"no membership": {ID: 1, Roles: NewRoleSet(RoleSocio)},
	} {
		t.Run(name, func(t *testing.T) {
			assert.False(t, IsMember(u))
			assert.False(t, IsActive(u))
			assert.False(t, HasDebt(u))
		})
	}
}

func TestMembershipPredicates(t *testing.T) {
	tests := []struct {
		name     string
		m        Membership
		isActive bool
		hasDebt  bool
	}{
		{"active, dues paid", Membership{State: StateActivo, DuesUpToDate: true}, true, false},
		{"active, in debt", Membership{State: StateActivo, DuesUpToDate: false}, true, true},
		{"inactive, dues paid", Membership{State: StateInactivo, DuesUpToDate: true}, false, false},
		{"inactive, in debt", Membership{State: StateInactivo, DuesUpToDate: false}, false, true},
		// Malformed state fails safe: not active, in debt.
		{"unknown state", Membership{State: "suspendido", DuesUpToDate: true}, false, true},
		{"empty state", Membership{DuesUpToDate: true}, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{ID: 7, Membership: &tt.m}
			assert.True(t, IsMember(u))
			assert.Equal(t, tt.isActive, IsActive(u))
			assert.Equal(t, tt.hasDebt, HasDebt(u))
		})
	}
}
