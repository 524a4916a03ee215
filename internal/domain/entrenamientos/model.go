package entrenamientos

import (
	"time"

	"socios-app/internal/domain/disciplinas"
	"socios-app/internal/domain/usuarios"
)

// HorarioEntrenamiento is a weekly training slot for one category.
// DiaSemana follows time.Weekday numbering shifted so 0 = Monday, matching
// the scheduling screens.
type HorarioEntrenamiento struct {
	ID          uint `gorm:"primaryKey"`
	CategoriaID uint `gorm:"not null;index"`
	Categoria   disciplinas.Categoria
	DiaSemana   int    `gorm:"not null"`
	HoraInicio  string `gorm:"type:varchar(5);not null"` // "18:00"
	HoraFin     string `gorm:"type:varchar(5);not null"`
	Lugar       string `gorm:"not null"`
	Activo      bool   `gorm:"not null;default:true"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (HorarioEntrenamiento) TableName() string { return "horarios_entrenamiento" }

const (
	SesionProgramada = "programada"
	SesionCancelada  = "cancelada"
	SesionCompletada = "completada"
)

// SesionEntrenamiento is a dated instance of a weekly slot. The (horario,
// fecha) pair is unique so regenerating a date range never duplicates
// sessions.
type SesionEntrenamiento struct {
	ID          uint `gorm:"primaryKey"`
	HorarioID   uint `gorm:"not null;uniqueIndex:idx_sesiones_horario_fecha"`
	Horario     HorarioEntrenamiento
	CategoriaID uint `gorm:"not null;index"`
	Categoria   disciplinas.Categoria
	Fecha       time.Time `gorm:"type:date;not null;uniqueIndex:idx_sesiones_horario_fecha"`
	Estado      string    `gorm:"type:varchar(20);not null;default:'programada'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SesionEntrenamiento) TableName() string { return "sesiones_entrenamiento" }

const (
	AsistenciaPresente = "presente"
	AsistenciaAusente  = "ausente"
	AsistenciaTarde    = "tarde"
)

// AsistenciaEntrenamiento records one player's attendance for one session.
// Players without a record count as ausente on the attendance sheet.
type AsistenciaEntrenamiento struct {
	ID        uint `gorm:"primaryKey"`
	SesionID  uint `gorm:"not null;uniqueIndex:idx_asistencias_sesion_usuario"`
	Sesion    SesionEntrenamiento
	UsuarioID uint `gorm:"not null;uniqueIndex:idx_asistencias_sesion_usuario"`
	Usuario   usuarios.Usuario
	Estado    string `gorm:"type:varchar(20);not null"`
	Nota      *string

	RegistradoPorID *uint
	RegistradoPor   *usuarios.Usuario `gorm:"foreignKey:RegistradoPorID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (AsistenciaEntrenamiento) TableName() string { return "asistencias_entrenamiento" }
