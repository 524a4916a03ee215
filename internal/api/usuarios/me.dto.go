package usuarios

import (
	"time"

	"github.com/shopspring/decimal"
)

type MeResponse struct {
	User   UserDTO   `json:"user"`
	Socio  *SocioDTO `json:"socio"`
	Access AccessDTO `json:"access"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID           uint     `json:"id"`
	Email        string   `json:"email"`
	Nombre       string   `json:"nombre"`
	Apellido     string   `json:"apellido"`
	NroDocumento *string  `json:"nro_documento"`
	Telefono     *string  `json:"telefono"`
	FotoURL      *string  `json:"foto_url"`
	Roles        []string `json:"roles"`
}

/* ---------- SOCIO ---------- */

type SocioDTO struct {
	Estado           string           `json:"estado"`
	Nivel            *int             `json:"nivel"`
	Disciplina       *DisciplinaLite  `json:"disciplina"`
	Categoria        *CategoriaLite   `json:"categoria"`
	AlDia            bool             `json:"al_dia"`
	CuotasPendientes []CuotaPendiente `json:"cuotas_pendientes"`
}

type DisciplinaLite struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}

type CategoriaLite struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}

type CuotaPendiente struct {
	ID          uint            `json:"id"`
	Periodo     string          `json:"periodo"`
	Monto       decimal.Decimal `json:"monto"`
	Vencimiento time.Time       `json:"vencimiento"`
}

/* ---------- ACCESS ---------- */

// AccessDTO mirrors the decisions the browser guard needs: who the user is
// in membership terms and the single next action their profile offers.
type AccessDTO struct {
	EsSocio  bool      `json:"es_socio"`
	Activo   bool      `json:"activo"`
	ConDeuda bool      `json:"con_deuda"`
	Accion   ActionDTO `json:"accion"`
}

type ActionDTO struct {
	Tipo              string `json:"tipo"` // none | activate | register_payment
	RequiereDatosPago bool   `json:"requiere_datos_pago"`
}
