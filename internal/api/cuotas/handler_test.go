package cuotas

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"socios-app/internal/domain/cuotas"
)

func TestEstadoCuota(t *testing.T) {
	now := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)

	vigente := cuotas.Cuota{ID: 1, Vencimiento: now.AddDate(0, 0, 3)}
	vencida := cuotas.Cuota{ID: 2, Vencimiento: now.AddDate(0, 0, -3)}
	pagadaVencida := cuotas.Cuota{ID: 3, Vencimiento: now.AddDate(0, -1, 0)}

	paid := map[uint]bool{3: true}

	assert.Equal(t, "pendiente", estadoCuota(vigente, paid, now))
	assert.Equal(t, "vencida", estadoCuota(vencida, paid, now))
	// a completed pago wins over the due date
	assert.Equal(t, "pagada", estadoCuota(pagadaVencida, paid, now))
}
