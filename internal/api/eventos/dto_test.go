package eventos

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"socios-app/internal/domain/access"
	"socios-app/internal/domain/eventos"
	"socios-app/internal/domain/usuarios"
)

func TestItemFromEventoCarriesScopeAndStaff(t *testing.T) {
	disciplina := uint(4)
	e := eventos.Evento{
		ID:           9,
		Titulo:       "Torneo Apertura",
		DisciplinaID: &disciplina,
		ProfesoresACargo: []usuarios.Usuario{
			{ID: 31}, {ID: 44},
		},
	}

	item := itemFromEvento(e)
	assert.Equal(t, access.KindClubEvent, item.Kind)
	assert.Equal(t, "evento-9", item.DisplayKey())
	assert.Equal(t, &disciplina, item.DisciplineID)
	assert.Nil(t, item.CategoryID)
	assert.Equal(t, []uint{31, 44}, item.StaffIDs)
}

func TestBuildEntryIsStable(t *testing.T) {
	item := access.CalendarItem{Kind: access.KindClubEvent, ID: 12, Title: "Viaje a Córdoba"}

	a := buildEntry(item)
	b := buildEntry(item)
	assert.Equal(t, a, b)
	assert.Equal(t, "evento-12", a.Key)
	assert.NotEmpty(t, a.Color)
}

func TestDesdeOrNowDefaultsToUpcoming(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-01-01", desdeOrNow("2026-01-01", now))
	assert.Equal(t, now, desdeOrNow("", now))
}

func TestAtHoraAnchorsOnDate(t *testing.T) {
	fecha := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

	got := atHora(fecha, "18:30")
	assert.Equal(t, time.Date(2026, time.September, 7, 18, 30, 0, 0, time.UTC), got)

	// malformed hour falls back to midnight
	assert.Equal(t, fecha, atHora(fecha, "garbage"))
}
