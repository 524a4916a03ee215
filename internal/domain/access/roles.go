package access

import "strings"

// Role is the closed vocabulary of club roles. Unknown role strings are
// rejected at the normalization boundary instead of silently passing checks.
type Role string

const (
	RoleSocio     Role = "socio"
	RoleAdmin     Role = "admin"
	RoleProfesor  Role = "profesor"
	RoleDirigente Role = "dirigente"
	RoleEmpleado  Role = "empleado"
)

// ManagementRoles are the roles with club-wide oversight.
var ManagementRoles = []Role{RoleAdmin, RoleDirigente, RoleEmpleado}

func ValidRole(r Role) bool {
	switch r {
	case RoleSocio, RoleAdmin, RoleProfesor, RoleDirigente, RoleEmpleado:
		return true
	}
	return false
}

// RoleSet is a user's assigned role tags. A nil RoleSet behaves as empty,
// so absent/null role lists need no special handling by callers.
type RoleSet map[Role]struct{}

// NewRoleSet builds a set from role tags. Unknown tags are dropped.
func NewRoleSet(roles ...Role) RoleSet {
	s := make(RoleSet, len(roles))
	for _, r := range roles {
		if ValidRole(r) {
			s[r] = struct{}{}
		}
	}
	return s
}

// NormalizeRoles converts raw role strings (e.g. from a JWT claim) into a
// RoleSet, trimming and lowercasing each tag and dropping unknown ones.
func NormalizeRoles(raw []string) RoleSet {
	s := make(RoleSet, len(raw))
	for _, r := range raw {
		role := Role(strings.ToLower(strings.TrimSpace(r)))
		if ValidRole(role) {
			s[role] = struct{}{}
		}
	}
	return s
}

func (s RoleSet) Has(r Role) bool {
	_, ok := s[r]
	return ok
}

func (s RoleSet) HasAny(roles ...Role) bool {
	for _, r := range roles {
		if s.Has(r) {
			return true
		}
	}
	return false
}

// List returns the tags in stable order, for diagnostics and JSON payloads.
func (s RoleSet) List() []string {
	out := make([]string, 0, len(s))
	for _, r := range []Role{RoleSocio, RoleAdmin, RoleProfesor, RoleDirigente, RoleEmpleado} {
		if s.Has(r) {
			out = append(out, string(r))
		}
	}
	return out
}
