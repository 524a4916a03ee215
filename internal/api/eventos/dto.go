package eventos

import (
	"time"

	"socios-app/internal/domain/access"
	"socios-app/internal/domain/entrenamientos"
	"socios-app/internal/domain/eventos"
)

// CalendarEntryDTO is what the calendar screens render: a stable key so
// events and sessions never collide, plus the color the front end paints
// the block with.
type CalendarEntryDTO struct {
	Key          string    `json:"key"`
	Tipo         string    `json:"tipo"` // evento | sesion
	ID           uint      `json:"id"`
	Titulo       string    `json:"titulo"`
	Inicio       time.Time `json:"inicio"`
	Fin          time.Time `json:"fin"`
	Color        string    `json:"color"`
	DisciplinaID *uint     `json:"disciplina_id,omitempty"`
	CategoriaID  *uint     `json:"categoria_id,omitempty"`
}

func itemFromEvento(e eventos.Evento) access.CalendarItem {
	staff := make([]uint, 0, len(e.ProfesoresACargo))
	for _, p := range e.ProfesoresACargo {
		staff = append(staff, p.ID)
	}
	return access.CalendarItem{
		Kind:         access.KindClubEvent,
		ID:           e.ID,
		Title:        e.Titulo,
		DisciplineID: e.DisciplinaID,
		CategoryID:   e.CategoriaID,
		StaffIDs:     staff,
		Start:        e.FechaInicio,
		End:          e.FechaFin,
	}
}

func itemFromSesion(s entrenamientos.SesionEntrenamiento, titulo string, inicio, fin time.Time) access.CalendarItem {
	catID := s.CategoriaID
	return access.CalendarItem{
		Kind:       access.KindTrainingSession,
		ID:         s.ID,
		Title:      titulo,
		CategoryID: &catID,
		Start:      inicio,
		End:        fin,
	}
}

func buildEntry(item access.CalendarItem) CalendarEntryDTO {
	return CalendarEntryDTO{
		Key:          item.DisplayKey(),
		Tipo:         string(item.Kind),
		ID:           item.ID,
		Titulo:       item.Title,
		Inicio:       item.Start,
		Fin:          item.End,
		Color:        access.ColorFor(item),
		DisciplinaID: item.DisciplineID,
		CategoriaID:  item.CategoryID,
	}
}
