package access

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEligibleAction(t *testing.T) {
	tests := []struct {
		name string
		m    *Membership
		want ActionDecision
	}{
		{
			"inactive with debt",
			&Membership{State: StateInactivo, DuesUpToDate: false},
			ActionDecision{Kind: ActionActivate, RequiresPaymentDetails: true},
		},
		{
			// Activation settles a zero-amount transaction, payment details
			// are still collected.
			"inactive without debt",
			&Membership{State: StateInactivo, DuesUpToDate: true},
			ActionDecision{Kind: ActionActivate, RequiresPaymentDetails: true},
		},
		{
			"active with debt",
			&Membership{State: StateActivo, DuesUpToDate: false},
			ActionDecision{Kind: ActionRegisterPayment, RequiresPaymentDetails: true},
		},
		{
			"active up to date",
			&Membership{State: StateActivo, DuesUpToDate: true},
			ActionDecision{Kind: ActionNone},
		},
		{
			"malformed state treated as inactive",
			&Membership{State: "???", DuesUpToDate: true},
			ActionDecision{Kind: ActionActivate, RequiresPaymentDetails: true},
		},
		{
			"no membership",
			nil,
			ActionDecision{Kind: ActionNone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EligibleAction(tt.m))
		})
	}
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []PaymentMethod{PagoEfectivo, PagoTransferencia, PagoTarjeta, PagoBilletera} {
		assert.True(t, ValidPaymentMethod(m))
	}
	assert.False(t, ValidPaymentMethod("mercado_pago"))
	assert.False(t, ValidPaymentMethod(""))
}
