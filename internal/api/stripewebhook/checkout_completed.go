package stripewebhooks

import (
	"fmt"
	"time"

	"socios-app/database"
	"socios-app/internal/domain/cuotas"

	"github.com/stripe/stripe-go/v75"
)

// handleCheckoutSessionCompleted flips the session's iniciado pagos to
// completado. The referencia keys "<session>:<cuota>" created at checkout
// time make this idempotent: a retried event matches zero pending rows.
func handleCheckoutSessionCompleted(session *stripe.CheckoutSession) error {
	result := database.DB.Model(&cuotas.Pago{}).
		Where("referencia_externa LIKE ? AND estado = ?", session.ID+":%", cuotas.PagoIniciado).
		Updates(map[string]interface{}{
			"estado": cuotas.PagoCompletado,
			"fecha":  time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to settle pagos for session %s: %w", session.ID, result.Error)
	}
	return nil
}

// handleCheckoutSessionExpired marks abandoned sessions so the cuotas show
// up as pending again immediately.
func handleCheckoutSessionExpired(session *stripe.CheckoutSession) error {
	result := database.DB.Model(&cuotas.Pago{}).
		Where("referencia_externa LIKE ? AND estado = ?", session.ID+":%", cuotas.PagoIniciado).
		Update("estado", cuotas.PagoFallido)
	if result.Error != nil {
		return fmt.Errorf("failed to expire pagos for session %s: %w", session.ID, result.Error)
	}
	return nil
}
