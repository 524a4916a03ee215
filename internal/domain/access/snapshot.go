package access

// Package access is the pure decision layer of the club: given a snapshot of
// a user (roles + membership) and a catalog of calendar items, it answers
// which routes the user may enter, which events they see and which lifecycle
// action applies to a membership. No I/O, no globals; callers build snapshots
// from storage and perform the actual navigation/persistence themselves.

// MembershipState mirrors SocioInfo.estado.
type MembershipState string

const (
	StateActivo   MembershipState = "activo"
	StateInactivo MembershipState = "inactivo"
)

// Membership is the per-member snapshot the predicates operate on.
type Membership struct {
	State        MembershipState
	DisciplineID *uint
	CategoryID   *uint
	DuesUpToDate bool
}

// User is an immutable snapshot of the authenticated identity.
// TeachingDisciplineIDs is only populated for profesores (the disciplines of
// the categories they are assigned to).
type User struct {
	ID                    uint
	Roles                 RoleSet
	Membership            *Membership
	TeachingDisciplineIDs []uint
}

// IsMember reports whether the user is a registered socio.
func IsMember(u *User) bool {
	return u != nil && u.Membership != nil
}

// IsActive reports whether the user is a member in good standing state-wise.
// A malformed state is treated as inactive, never as an error.
func IsActive(u *User) bool {
	return IsMember(u) && u.Membership.State == StateActivo
}

// HasDebt reports whether the member has outstanding dues. A malformed state
// fails safe toward "in debt".
func HasDebt(u *User) bool {
	if !IsMember(u) {
		return false
	}
	if u.Membership.State != StateActivo && u.Membership.State != StateInactivo {
		return true
	}
	return !u.Membership.DuesUpToDate
}

func teachesDiscipline(u *User, disciplineID uint) bool {
	for _, id := range u.TeachingDisciplineIDs {
		if id == disciplineID {
			return true
		}
	}
	return false
}
