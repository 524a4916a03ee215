package access

import (
	"fmt"
	"time"
)

// ItemKind distinguishes the two schedulable item kinds a calendar merges.
// Kind is part of item identity so events and sessions never collide.
type ItemKind string

const (
	KindClubEvent       ItemKind = "evento"
	KindTrainingSession ItemKind = "sesion"
)

// CalendarItem is the scoping snapshot of a club event or training session.
// A nil DisciplineID means the item is general (club-wide); a nil CategoryID
// means it applies to the whole discipline. Training sessions are always
// scoped to exactly one category and arrive pre-filtered to the caller, so
// the visibility rules below only apply to club events.
type CalendarItem struct {
	Kind         ItemKind
	ID           uint
	Title        string
	DisciplineID *uint
	CategoryID   *uint
	// StaffIDs lists the users responsible for the item (profesores a cargo).
	StaffIDs []uint
	Start    time.Time
	End      time.Time
}

// DisplayKey returns the kind-prefixed identity used when merging catalogs
// for calendar display.
func (i CalendarItem) DisplayKey() string {
	return fmt.Sprintf("%s-%d", i.Kind, i.ID)
}

// VisibleEvents computes the subset of the catalog visible to the user.
// Training sessions pass through unchanged. Club events follow the role tier:
//
//   - admin/dirigente/empleado: everything (management oversight)
//   - profesor: general items, items of a discipline they teach or belong
//     to as socio, or items listing them among the responsible staff
//   - socio: general items, or items matching their discipline and, when the
//     item is category-scoped, their category
//   - anyone else: no club events
//
// The catalog is never mutated; output order follows input order.
func VisibleEvents(u *User, catalog []CalendarItem) []CalendarItem {
	visible := make([]CalendarItem, 0, len(catalog))
	for _, item := range catalog {
		if item.Kind == KindTrainingSession || eventVisible(u, item) {
			visible = append(visible, item)
		}
	}
	return visible
}

func eventVisible(u *User, item CalendarItem) bool {
	if u == nil {
		return false
	}

	if u.Roles.HasAny(ManagementRoles...) {
		return true
	}

	// Items with no discipline scope are general and visible to every
	// member-tier caller.
	general := item.DisciplineID == nil

	if u.Roles.Has(RoleProfesor) {
		if general {
			return true
		}
		if teachesDiscipline(u, *item.DisciplineID) {
			return true
		}
		// A profesor who is also a socio keeps the member view of their
		// own discipline, assigned categories or not.
		if m := u.Membership; m != nil && m.DisciplineID != nil && *m.DisciplineID == *item.DisciplineID {
			return true
		}
		return listsStaff(item, u.ID)
	}

	if IsMember(u) {
		if general {
			return true
		}
		m := u.Membership
		if m.DisciplineID == nil || *m.DisciplineID != *item.DisciplineID {
			return false
		}
		if item.CategoryID == nil {
			return true
		}
		return m.CategoryID != nil && *m.CategoryID == *item.CategoryID
	}

	return false
}

func listsStaff(item CalendarItem, userID uint) bool {
	for _, id := range item.StaffIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// calendarPalette holds the event colors cycled by discipline.
var calendarPalette = []string{
	"#b91c1c", // red-700, the club color
	"#0e7490",
	"#15803d",
	"#a16207",
	"#7e22ce",
	"#be185d",
}

const sessionColor = "#334155"

// ColorFor assigns a stable display color: sessions share one color, general
// events use the first palette entry, and discipline-scoped events cycle the
// palette by discipline id. Same input, same color, across renders.
func ColorFor(item CalendarItem) string {
	if item.Kind == KindTrainingSession {
		return sessionColor
	}
	if item.DisciplineID == nil {
		return calendarPalette[0]
	}
	return calendarPalette[int(*item.DisciplineID)%len(calendarPalette)]
}
