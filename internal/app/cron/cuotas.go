// Package cron owns the scheduled jobs. The only one today is monthly dues
// generation, also runnable on demand from the admin API.
package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"socios-app/config"
	"socios-app/internal/domain/cuotas"
	"socios-app/internal/domain/socios"
)

// Start registers the dues job when CUOTAS_CRON is set and returns the
// runner, or nil when the scheduler is disabled.
func Start(db *gorm.DB) *cron.Cron {
	if config.CUOTAS_CRON == "" {
		log.Println("Dues scheduler disabled (CUOTAS_CRON not set)")
		return nil
	}

	runner := cron.New()
	_, err := runner.AddFunc(config.CUOTAS_CRON, func() {
		periodo := time.Now().Format("2006-01")
		created, err := GenerateCuotas(db, periodo)
		if err != nil {
			log.Printf("Dues generation for %s failed: %v", periodo, err)
			return
		}
		log.Printf("Dues generation for %s: %d cuotas created", periodo, created)
	})
	if err != nil {
		log.Fatalf("Invalid CUOTAS_CRON %q: %v", config.CUOTAS_CRON, err)
	}

	runner.Start()
	log.Printf("Dues scheduler started (%s)", config.CUOTAS_CRON)
	return runner
}

// GenerateCuotas creates the period's cuota for every active socio that does
// not have one yet. The level discount applies at generation time, so a
// level change never rewrites already issued dues. Idempotent per period.
func GenerateCuotas(db *gorm.DB, periodo string) (int, error) {
	if _, err := time.Parse("2006-01", periodo); err != nil {
		return 0, fmt.Errorf("invalid periodo %q: %w", periodo, err)
	}

	var activos []socios.SocioInfo
	err := db.Preload("NivelSocio").
		Where("estado = ?", socios.EstadoActivo).
		Find(&activos).Error
	if err != nil {
		return 0, err
	}

	vencimiento, err := dueDate(periodo)
	if err != nil {
		return 0, err
	}

	created := 0
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, info := range activos {
			var count int64
			err := tx.Model(&cuotas.Cuota{}).
				Where("usuario_id = ? AND periodo = ?", info.UsuarioID, periodo).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			monto, descuento := montoConDescuento(info.NivelSocio)
			cuota := cuotas.Cuota{
				UsuarioID:         info.UsuarioID,
				CategoriaID:       info.CategoriaID,
				Periodo:           periodo,
				Monto:             monto,
				Vencimiento:       vencimiento,
				DescuentoAplicado: descuento,
			}
			if err := tx.Create(&cuota).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	return created, err
}

func montoConDescuento(nivel *socios.NivelSocio) (decimal.Decimal, decimal.Decimal) {
	base := config.CUOTA_MONTO_BASE
	if nivel == nil || nivel.Descuento == 0 {
		return base, decimal.Zero
	}
	descuento := decimal.NewFromInt(int64(nivel.Descuento))
	factor := decimal.NewFromInt(100).Sub(descuento).Div(decimal.NewFromInt(100))
	return base.Mul(factor).Round(2), descuento
}

func dueDate(periodo string) (time.Time, error) {
	inicio, err := time.Parse("2006-01", periodo)
	if err != nil {
		return time.Time{}, err
	}
	dia := config.CUOTA_DIA_VENCIMIENTO
	if dia < 1 || dia > 28 {
		dia = 5
	}
	return time.Date(inicio.Year(), inicio.Month(), dia, 0, 0, 0, 0, time.UTC), nil
}
