package socios

import (
	"time"

	"socios-app/internal/domain/disciplinas"
	"socios-app/internal/domain/usuarios"
)

const (
	EstadoActivo   = "activo"
	EstadoInactivo = "inactivo"
)

// SocioInfo is the club profile attached to a user when they join. Its
// presence is what makes a user a socio; staff actions flip the state.
type SocioInfo struct {
	UsuarioID uint `gorm:"primaryKey"`
	Usuario   usuarios.Usuario

	NivelSocioID *uint
	NivelSocio   *NivelSocio

	DisciplinaID *uint
	Disciplina   *disciplinas.Disciplina
	CategoriaID  *uint
	Categoria    *disciplinas.Categoria

	Estado            string `gorm:"type:varchar(20);not null;default:'activo'"`
	FechaInactivacion *time.Time
	RazonInactivacion *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (SocioInfo) TableName() string { return "socios_info" }

// NivelSocio is a membership level; its discount applies to generated dues.
type NivelSocio struct {
	ID          uint `gorm:"primaryKey"`
	Nivel       int  `gorm:"not null;uniqueIndex:idx_niveles_socio_nivel"`
	Descuento   int  `gorm:"not null"` // percentage, 0-100
	Descripcion *string
	Beneficios  *string
	Requisitos  *string
}

func (NivelSocio) TableName() string { return "niveles_socio" }
