package access

// ActionKind is the membership lifecycle action a staff screen offers.
type ActionKind string

const (
	ActionNone            ActionKind = "none"
	ActionActivate        ActionKind = "activate"
	ActionRegisterPayment ActionKind = "register_payment"
)

// PaymentMethod is the medium a payment is settled with.
type PaymentMethod string

const (
	PagoEfectivo      PaymentMethod = "efectivo"
	PagoTransferencia PaymentMethod = "transferencia"
	PagoTarjeta       PaymentMethod = "tarjeta"
	PagoBilletera     PaymentMethod = "billetera"
)

func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case PagoEfectivo, PagoTransferencia, PagoTarjeta, PagoBilletera:
		return true
	}
	return false
}

// ActionDecision classifies which lifecycle action applies to a membership.
type ActionDecision struct {
	Kind ActionKind
	// RequiresPaymentDetails asks the caller to collect a payment method
	// (plus an optional receipt reference) before confirming the action.
	RequiresPaymentDetails bool
}

// EligibleAction decides the action offered for a membership record:
//
//   - inactive: activate. Activation settles every outstanding due in the
//     same transaction, so payment details are always required. With no
//     debt, a zero-amount settlement is still recorded for audit purposes.
//   - active with debt: register a payment covering the full outstanding set
//     of dues. Partial amounts are not offered through this action.
//   - active and up to date: nothing to do.
//
// The resolver only classifies; it never fails. The eligibility check and
// the later submission are not atomic: dues may change in between, and the
// submission path is the one that must cope with that.
func EligibleAction(m *Membership) ActionDecision {
	if m == nil {
		return ActionDecision{Kind: ActionNone}
	}

	// A malformed state is treated as inactive (fail toward the action that
	// requires staff confirmation and payment details).
	if m.State != StateActivo {
		return ActionDecision{Kind: ActionActivate, RequiresPaymentDetails: true}
	}

	if !m.DuesUpToDate {
		return ActionDecision{Kind: ActionRegisterPayment, RequiresPaymentDetails: true}
	}

	return ActionDecision{Kind: ActionNone}
}
