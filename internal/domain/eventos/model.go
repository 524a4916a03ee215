package eventos

import (
	"time"

	"github.com/shopspring/decimal"

	"socios-app/internal/domain/disciplinas"
	"socios-app/internal/domain/usuarios"
)

const (
	TipoTorneo  = "torneo"
	TipoPartido = "partido"
	TipoViaje   = "viaje"
	TipoOtro    = "otro"
)

// Evento is a club event. Scoping works through DisciplinaID/CategoriaID:
// neither set means club-wide, discipline set narrows to that discipline,
// category set narrows further to that category.
type Evento struct {
	ID          uint   `gorm:"primaryKey"`
	Tipo        string `gorm:"type:varchar(50);not null"`
	Titulo      string `gorm:"not null"`
	Descripcion *string
	FechaInicio time.Time `gorm:"not null;index"`
	FechaFin    time.Time `gorm:"not null;index"`
	Lugar       string    `gorm:"not null"`

	OrganizadorID uint             `gorm:"not null"`
	Organizador   usuarios.Usuario `gorm:"foreignKey:OrganizadorID"`

	RequisitoPago bool            `gorm:"not null;default:false"`
	Costo         decimal.Decimal `gorm:"type:numeric(10,2);not null;default:0"`

	CostoHospedaje *decimal.Decimal `gorm:"type:numeric(10,2)"`
	CostoViaje     *decimal.Decimal `gorm:"type:numeric(10,2)"`
	CostoComida    *decimal.Decimal `gorm:"type:numeric(10,2)"`

	PagoInscripcionAID *uint
	PagoTransporteAID  *uint
	PagoHospedajeAID   *uint
	PagoComidaAID      *uint

	ProfesoresACargo []usuarios.Usuario `gorm:"many2many:evento_profesores"`

	DisciplinaID *uint
	Disciplina   *disciplinas.Disciplina
	CategoriaID  *uint
	Categoria    *disciplinas.Categoria

	Publicado bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
