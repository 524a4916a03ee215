package acceso

import (
	"time"

	"socios-app/internal/domain/usuarios"
)

const (
	EstadoAprobado = "aprobado"
	EstadoDenegado = "denegado"
)

// RegistroAcceso is one kiosk scan, approved or denied. UsuarioID is nil when
// the scanned code matched nobody.
type RegistroAcceso struct {
	ID        uint `gorm:"primaryKey"`
	UsuarioID *uint
	Usuario   *usuarios.Usuario

	Estado string  `gorm:"type:varchar(20);not null"`
	Motivo *string `gorm:"type:varchar(100)"`
	// DatosIngresados keeps the raw scanned value for auditing failed reads.
	DatosIngresados string `gorm:"type:varchar(100);not null"`

	FechaHora time.Time `gorm:"not null;index"`
}

func (RegistroAcceso) TableName() string { return "registros_acceso" }
