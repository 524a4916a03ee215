package access

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

func event(id uint, disciplineID, categoryID *uint, staff ...uint) CalendarItem {
	return CalendarItem{
		Kind:         KindClubEvent,
		ID:           id,
		DisciplineID: disciplineID,
		CategoryID:   categoryID,
		StaffIDs:     staff,
		Start:        base,
		End:          base.Add(2 * time.Hour),
	}
}

func session(id uint, categoryID uint) CalendarItem {
	cat := categoryID
	return CalendarItem{Kind: KindTrainingSession, ID: id, CategoryID: &cat, Start: base, End: base.Add(time.Hour)}
}

func socioUser(disciplineID, categoryID *uint) *User {
	return &User{
		ID:    10,
		Roles: NewRoleSet(RoleSocio),
		Membership: &Membership{
			State:        StateActivo,
			DisciplineID: disciplineID,
			CategoryID:   categoryID,
			DuesUpToDate: true,
		},
	}
}

func ids(items []CalendarItem) []string {
	keys := make([]string, len(items))
	for i, it := range items {
		keys[i] = it.DisplayKey()
	}
	return keys
}

func TestGeneralEventsVisibleToEveryTier(t *testing.T) {
	general := event(1, nil, nil)

	callers := map[string]*User{
		"admin":     {ID: 1, Roles: NewRoleSet(RoleAdmin)},
		"dirigente": {ID: 2, Roles: NewRoleSet(RoleDirigente)},
		"empleado":  {ID: 3, Roles: NewRoleSet(RoleEmpleado)},
		"profesor":  {ID: 4, Roles: NewRoleSet(RoleProfesor)},
		"socio":     socioUser(uintPtr(1), uintPtr(2)),
	}

	for name, u := range callers {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, []string{"evento-1"}, ids(VisibleEvents(u, []CalendarItem{general})))
		})
	}
}

func TestManagementSeesEverything(t *testing.T) {
	catalog := []CalendarItem{
		event(1, nil, nil),
		event(2, uintPtr(3), nil),
		event(3, uintPtr(4), uintPtr(9)),
	}

	got := VisibleEvents(&User{ID: 1, Roles: NewRoleSet(RoleDirigente)}, catalog)

	assert.Len(t, got, 3)
}

func TestProfesorVisibility(t *testing.T) {
	profesor := &User{
		ID:                    20,
		Roles:                 NewRoleSet(RoleProfesor, RoleSocio),
		TeachingDisciplineIDs: []uint{5},
	}

	tests := []struct {
		name    string
		item    CalendarItem
		visible bool
	}{
		{"general", event(1, nil, nil), true},
		{"own discipline, any category", event(2, uintPtr(5), uintPtr(99)), true},
		{"other discipline, listed as staff", event(3, uintPtr(8), nil, 20), true},
		{"other discipline, not listed", event(4, uintPtr(8), nil, 21), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleEvents(profesor, []CalendarItem{tt.item})
			assert.Equal(t, tt.visible, len(got) == 1)
		})
	}
}

func TestProfesorKeepsMemberViewOfOwnDiscipline(t *testing.T) {
	// Profesor enrolled as socio in discipline 6 but not yet assigned to
	// teach any category.
	profesor := &User{
		ID:    20,
		Roles: NewRoleSet(RoleProfesor, RoleSocio),
		Membership: &Membership{
			State:        StateActivo,
			DisciplineID: uintPtr(6),
			DuesUpToDate: true,
		},
	}

	catalog := []CalendarItem{event(1, uintPtr(6), nil), event(2, uintPtr(7), nil)}

	assert.Equal(t, []string{"evento-1"}, ids(VisibleEvents(profesor, catalog)))
}

func TestSocioVisibility(t *testing.T) {
	// Socio in discipline 1, category 2.
	u := socioUser(uintPtr(1), uintPtr(2))

	tests := []struct {
		name    string
		item    CalendarItem
		visible bool
	}{
		{"general", event(1, nil, nil), true},
		{"own discipline, unscoped category", event(2, uintPtr(1), nil), true},
		{"own discipline and category", event(3, uintPtr(1), uintPtr(2)), true},
		{"own discipline, other category", event(4, uintPtr(1), uintPtr(3)), false},
		{"other discipline", event(5, uintPtr(2), nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleEvents(u, []CalendarItem{tt.item})
			assert.Equal(t, tt.visible, len(got) == 1)
		})
	}
}

func TestSocioWithoutSportsProfileSeesOnlyGeneral(t *testing.T) {
	u := socioUser(nil, nil)
	catalog := []CalendarItem{event(1, nil, nil), event(2, uintPtr(1), nil)}

	assert.Equal(t, []string{"evento-1"}, ids(VisibleEvents(u, catalog)))
}

func TestUnassociatedUserSeesNoEvents(t *testing.T) {
	catalog := []CalendarItem{event(1, nil, nil), event(2, uintPtr(1), nil)}

	assert.Empty(t, VisibleEvents(&User{ID: 30}, catalog))
	assert.Empty(t, VisibleEvents(nil, catalog))
}

func TestSessionsPassThroughUnfiltered(t *testing.T) {
	catalog := []CalendarItem{session(1, 7), event(1, uintPtr(9), nil), session(2, 7)}

	got := VisibleEvents(&User{ID: 30}, catalog)

	assert.Equal(t, []string{"sesion-1", "sesion-2"}, ids(got))
}

func TestFilterDoesNotMutateCatalog(t *testing.T) {
	catalog := []CalendarItem{event(1, nil, nil), event(2, uintPtr(1), uintPtr(2)), session(3, 2)}
	u := socioUser(uintPtr(1), uintPtr(2))

	first := VisibleEvents(u, catalog)
	second := VisibleEvents(u, catalog)

	require.Equal(t, ids(first), ids(second))
	assert.Len(t, catalog, 3)
}

func TestDisplayKeysNeverCollideAcrossKinds(t *testing.T) {
	assert.NotEqual(t, event(1, nil, nil).DisplayKey(), session(1, 2).DisplayKey())
}

func TestColorForIsDeterministic(t *testing.T) {
	scoped := event(1, uintPtr(7), nil)

	first := ColorFor(scoped)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, ColorFor(scoped))
	}

	assert.Equal(t, ColorFor(session(1, 2)), ColorFor(session(9, 4)))
	assert.NotEmpty(t, ColorFor(event(2, nil, nil)))
}
