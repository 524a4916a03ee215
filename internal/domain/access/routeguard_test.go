package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func member(state MembershipState, duesUpToDate bool, roles ...Role) *User {
	return &User{
		ID:         1,
		Roles:      NewRoleSet(roles...),
		Membership: &Membership{State: state, DuesUpToDate: duesUpToDate},
	}
}

func TestResolvePendingWhileAuthLoads(t *testing.T) {
	d := Resolve(nil, true, "/socios", RoutePolicy{})

	assert.Equal(t, OutcomePending, d.Outcome)
	assert.Empty(t, d.RedirectTo)
}

func TestResolveNoUserRedirectsToLogin(t *testing.T) {
	d := Resolve(nil, false, "/mis-cuotas", RoutePolicy{RequireMembership: true})

	require.Equal(t, OutcomeRedirect, d.Outcome)
	assert.Equal(t, LoginRoute, d.RedirectTo)
	assert.Equal(t, "/mis-cuotas", d.From)
}

func TestResolvePublicRouteAllowsAnonymous(t *testing.T) {
	d := Resolve(nil, false, "/niveles", RoutePolicy{Public: true})

	assert.Equal(t, OutcomeAllow, d.Outcome)
}

func TestResolveNonMemberOnlyRoute(t *testing.T) {
	d := Resolve(member(StateActivo, true, RoleSocio), false, JoinRoute, RoutePolicy{RequireNonMembership: true})

	require.Equal(t, OutcomeRedirect, d.Outcome)
	assert.Equal(t, ProfileRoute, d.RedirectTo)

	nonMember := &User{ID: 2}
	assert.Equal(t, OutcomeAllow, Resolve(nonMember, false, JoinRoute, RoutePolicy{RequireNonMembership: true}).Outcome)
}

func TestResolveMembersOnlyRedirectsNonMembersToJoin(t *testing.T) {
	d := Resolve(&User{ID: 2}, false, "/mi-calendario", RoutePolicy{RequireMembership: true})

	require.Equal(t, OutcomeRedirect, d.Outcome)
	assert.Equal(t, JoinRoute, d.RedirectTo)
}

func TestResolveRoleCheck(t *testing.T) {
	policy := RoutePolicy{AllowedRoles: []Role{RoleAdmin}}

	// Unassociated user, no roles: role check fires (no membership rule set)
	// and redirects to the profile route.
	d := Resolve(&User{ID: 3}, false, "/gestion", policy)
	require.Equal(t, OutcomeRedirect, d.Outcome)
	assert.Equal(t, ProfileRoute, d.RedirectTo)
	assert.Contains(t, d.Reason, "admin")

	// The diagnostic names the user's actual roles.
	d = Resolve(member(StateActivo, true, RoleSocio, RoleProfesor), false, "/gestion", policy)
	require.Equal(t, OutcomeRedirect, d.Outcome)
	assert.Contains(t, d.Reason, "socio")
	assert.Contains(t, d.Reason, "profesor")

	assert.Equal(t, OutcomeAllow, Resolve(member(StateActivo, true, RoleAdmin), false, "/gestion", policy).Outcome)
}

func TestResolveComposedPolicy(t *testing.T) {
	policy := RoutePolicy{RequireMembership: true, AllowedRoles: []Role{RoleProfesor, RoleDirigente}}

	// Membership rule is evaluated before the role rule.
	d := Resolve(&User{ID: 4, Roles: NewRoleSet(RoleProfesor)}, false, "/horarios", policy)
	require.Equal(t, OutcomeRedirect, d.Outcome)
	assert.Equal(t, JoinRoute, d.RedirectTo)

	d = Resolve(member(StateActivo, true, RoleSocio), false, "/horarios", policy)
	require.Equal(t, OutcomeRedirect, d.Outcome)
	assert.Equal(t, ProfileRoute, d.RedirectTo)

	assert.Equal(t, OutcomeAllow, Resolve(member(StateActivo, true, RoleSocio, RoleProfesor), false, "/horarios", policy).Outcome)
}

func TestResolveContradictoryPolicyDenies(t *testing.T) {
	policy := RoutePolicy{RequireMembership: true, RequireNonMembership: true}

	// A contradictory policy is a configuration defect: deny deterministically
	// for every caller, member or not.
	for name, u := range map[string]*User{
		"member":     member(StateActivo, true, RoleSocio),
		"non-member": {ID: 5},
		"nil":        nil,
	} {
		t.Run(name, func(t *testing.T) {
			d := Resolve(u, false, "/broken", policy)
			require.Equal(t, OutcomeRedirect, d.Outcome)
			assert.Equal(t, ProfileRoute, d.RedirectTo)
			assert.Contains(t, d.Reason, "contradictory")
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	u := member(StateInactivo, false, RoleSocio)
	policy := RoutePolicy{RequireMembership: true, AllowedRoles: []Role{RoleAdmin}}

	first := Resolve(u, false, "/socios", policy)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Resolve(u, false, "/socios", policy))
	}
}
