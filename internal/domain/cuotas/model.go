package cuotas

import (
	"time"

	"github.com/shopspring/decimal"

	"socios-app/internal/domain/disciplinas"
	"socios-app/internal/domain/usuarios"
)

// Cuota is a periodic membership due. Periodo is "YYYY-MM". A cuota is paid
// when a completed Pago exists for it.
type Cuota struct {
	ID        uint `gorm:"primaryKey"`
	UsuarioID uint `gorm:"not null;index"`
	Usuario   usuarios.Usuario

	CategoriaID *uint
	Categoria   *disciplinas.Categoria

	Periodo           string          `gorm:"type:varchar(7);not null;index"`
	Monto             decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Vencimiento       time.Time       `gorm:"type:date;not null"`
	DescuentoAplicado decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`

	CreatedAt time.Time
}

const (
	PagoIniciado    = "iniciado"
	PagoCompletado  = "completado"
	PagoFallido     = "fallido"
	PagoReembolsado = "reembolsado"
)

type Pago struct {
	ID      uint `gorm:"primaryKey"`
	CuotaID uint `gorm:"not null;index"`
	Cuota   Cuota

	MedioPago string          `gorm:"type:varchar(50);not null"`
	Monto     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Moneda    string          `gorm:"type:varchar(10);not null;default:'ARS'"`
	Estado    string          `gorm:"type:varchar(20);not null"`

	// ReferenciaExterna holds the processor id for online payments (the
	// Stripe checkout session), Comprobante the receipt reference staff type
	// in for manual ones.
	ReferenciaExterna *string `gorm:"uniqueIndex:idx_pagos_referencia_externa"`
	Comprobante       *string

	Fecha     time.Time `gorm:"not null"`
	CreatedAt time.Time
}
