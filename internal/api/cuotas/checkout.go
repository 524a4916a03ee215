package cuotas

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"socios-app/config"
	"socios-app/database"
	"socios-app/internal/app/snapshot"
	"socios-app/internal/domain/cuotas"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	checkoutsession "github.com/stripe/stripe-go/v75/checkout/session"
	"gorm.io/gorm"
)

var decimalHundred = decimal.NewFromInt(100)

// POST /cuotas/checkout
// Online payment of the caller's own dues. A single one-off checkout session
// covers the selected cuotas; the webhook settles them when Stripe confirms.
func CreateCheckoutSession(c *gin.Context) {
	var body struct {
		CuotaIDs []uint `json:"cuota_ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stripe.Key = config.STRIPE_SECRET_KEY
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Stripe no está configurado"})
		return
	}

	userID := c.GetUint("user_id")
	pending, err := snapshot.PendingCuotas(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar las cuotas"})
		return
	}
	pendingByID := make(map[uint]cuotas.Cuota, len(pending))
	for _, cu := range pending {
		pendingByID[cu.ID] = cu
	}

	selected := make([]cuotas.Cuota, 0, len(body.CuotaIDs))
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(body.CuotaIDs))
	idStrings := make([]string, 0, len(body.CuotaIDs))
	for _, id := range body.CuotaIDs {
		cu, ok := pendingByID[id]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "La cuota no está pendiente o no es tuya", "cuota_id": id})
			return
		}
		selected = append(selected, cu)
		idStrings = append(idStrings, fmt.Sprint(cu.ID))
		// decimal ARS -> centavos
		unitAmount := cu.Monto.Mul(decimalHundred).IntPart()
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String("ars"),
				UnitAmount: stripe.Int64(unitAmount),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("Cuota " + cu.Periodo),
				},
			},
			Quantity: stripe.Int64(1),
		})
	}

	params := &stripe.CheckoutSessionParams{
		SuccessURL:        stripe.String(config.APP_URL + "/mis-cuotas?pago=ok"),
		CancelURL:         stripe.String(config.APP_URL + "/mis-cuotas?pago=cancelado"),
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:         lineItems,
		ClientReferenceID: stripe.String(fmt.Sprint(userID)),
		Metadata: map[string]string{
			"user_id":   fmt.Sprint(userID),
			"cuota_ids": strings.Join(idStrings, ","),
		},
	}

	s, err := checkoutsession.New(params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la sesión de pago", "details": err.Error()})
		return
	}

	// Pagos start as iniciado; the webhook completes or fails them. The
	// referencia keys them back to session and cuota.
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for _, cu := range selected {
			ref := fmt.Sprintf("%s:%d", s.ID, cu.ID)
			pago := cuotas.Pago{
				CuotaID:           cu.ID,
				MedioPago:         "tarjeta",
				Monto:             cu.Monto,
				Estado:            cuotas.PagoIniciado,
				ReferenciaExterna: &ref,
				Fecha:             time.Now(),
			}
			if err := tx.Create(&pago).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo registrar el intento de pago"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": s.URL, "session_id": s.ID})
}
