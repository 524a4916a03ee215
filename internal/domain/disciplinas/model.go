package disciplinas

import (
	"socios-app/internal/domain/usuarios"
)

type Disciplina struct {
	ID          uint   `gorm:"primaryKey"`
	Nombre      string `gorm:"not null;uniqueIndex:idx_disciplinas_nombre"`
	Descripcion *string
}

type Categoria struct {
	ID           uint `gorm:"primaryKey"`
	DisciplinaID uint `gorm:"not null;index"`
	Disciplina   Disciplina
	Nombre       string `gorm:"column:nombre_categoria;not null"`
	EdadMinima   int    `gorm:"not null"`
	EdadMaxima   int    `gorm:"not null"`
	Sexo         string `gorm:"type:varchar(20);not null"` // masculino | femenino | mixto
}

// CategoriaEntrenador assigns a profesor to a category. EsPrincipal marks the
// head coach.
type CategoriaEntrenador struct {
	ID           uint `gorm:"primaryKey"`
	CategoriaID  uint `gorm:"not null;uniqueIndex:idx_categoria_entrenador"`
	Categoria    Categoria
	EntrenadorID uint             `gorm:"not null;uniqueIndex:idx_categoria_entrenador"`
	Entrenador   usuarios.Usuario `gorm:"foreignKey:EntrenadorID"`
	EsPrincipal  bool             `gorm:"not null;default:false"`
}

func (CategoriaEntrenador) TableName() string { return "categoria_entrenadores" }
