package cron

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socios-app/config"
	"socios-app/internal/domain/socios"
)

func TestMontoConDescuento(t *testing.T) {
	config.CUOTA_MONTO_BASE = decimal.RequireFromString("15000.00")

	t.Run("sin nivel paga la base", func(t *testing.T) {
		monto, descuento := montoConDescuento(nil)
		assert.True(t, monto.Equal(decimal.RequireFromString("15000.00")), monto.String())
		assert.True(t, descuento.IsZero())
	})

	t.Run("nivel con 20 por ciento", func(t *testing.T) {
		nivel := &socios.NivelSocio{Nivel: 2, Descuento: 20}
		monto, descuento := montoConDescuento(nivel)
		assert.True(t, monto.Equal(decimal.RequireFromString("12000.00")), monto.String())
		assert.True(t, descuento.Equal(decimal.NewFromInt(20)))
	})

	t.Run("descuento total deja la cuota en cero", func(t *testing.T) {
		nivel := &socios.NivelSocio{Nivel: 9, Descuento: 100}
		monto, _ := montoConDescuento(nivel)
		assert.True(t, monto.IsZero(), monto.String())
	})
}

func TestDueDate(t *testing.T) {
	config.CUOTA_DIA_VENCIMIENTO = 10

	v, err := dueDate("2026-03")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), v)

	t.Run("dia fuera de rango cae al 5", func(t *testing.T) {
		config.CUOTA_DIA_VENCIMIENTO = 31
		v, err := dueDate("2026-02")
		require.NoError(t, err)
		assert.Equal(t, 5, v.Day())
	})

	t.Run("periodo invalido", func(t *testing.T) {
		_, err := dueDate("marzo-2026")
		assert.Error(t, err)
	})
}

func TestGenerateCuotasRejectsBadPeriodo(t *testing.T) {
	_, err := GenerateCuotas(nil, "2026/03")
	assert.Error(t, err)
}
