package cuotas

import (
	"net/http"
	"strconv"
	"time"

	"socios-app/config"
	"socios-app/database"
	appcron "socios-app/internal/app/cron"
	"socios-app/internal/domain/access"
	"socios-app/internal/domain/cuotas"
	"socios-app/internal/domain/socios"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type cuotaDTO struct {
	ID                uint            `json:"id"`
	UsuarioID         uint            `json:"usuario_id"`
	Periodo           string          `json:"periodo"`
	Monto             decimal.Decimal `json:"monto"`
	Vencimiento       time.Time       `json:"vencimiento"`
	DescuentoAplicado decimal.Decimal `json:"descuento_aplicado"`
	Estado            string          `json:"estado"` // pendiente | vencida | pagada
}

// GET /cuotas?usuario=&estado=&periodo=
// Staff can query anyone; a socio only ever sees their own dues no matter
// what the query string says.
func ListCuotas(c *gin.Context) {
	roles := access.NormalizeRoles(rolesFromContext(c))
	userID := c.GetUint("user_id")

	target := userID
	if roles.HasAny(access.ManagementRoles...) {
		if q := c.Query("usuario"); q != "" {
			id, err := strconv.ParseUint(q, 10, 32)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "usuario inválido"})
				return
			}
			target = uint(id)
		} else {
			target = 0 // all users
		}
	}

	query := database.DB.Model(&cuotas.Cuota{})
	if target != 0 {
		query = query.Where("usuario_id = ?", target)
	}
	if periodo := c.Query("periodo"); periodo != "" {
		query = query.Where("periodo = ?", periodo)
	}

	var list []cuotas.Cuota
	if err := query.Order("periodo DESC, usuario_id").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron listar las cuotas"})
		return
	}

	paid, err := paidCuotaIDs(list)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron resolver los pagos"})
		return
	}

	estadoFilter := c.Query("estado")
	now := time.Now()
	out := make([]cuotaDTO, 0, len(list))
	for _, cu := range list {
		estado := estadoCuota(cu, paid, now)
		if estadoFilter != "" && estado != estadoFilter {
			continue
		}
		out = append(out, cuotaDTO{
			ID:                cu.ID,
			UsuarioID:         cu.UsuarioID,
			Periodo:           cu.Periodo,
			Monto:             cu.Monto,
			Vencimiento:       cu.Vencimiento,
			DescuentoAplicado: cu.DescuentoAplicado,
			Estado:            estado,
		})
	}
	c.JSON(http.StatusOK, out)
}

func estadoCuota(cu cuotas.Cuota, paid map[uint]bool, now time.Time) string {
	switch {
	case paid[cu.ID]:
		return "pagada"
	case cu.Vencimiento.Before(now):
		return "vencida"
	default:
		return "pendiente"
	}
}

func paidCuotaIDs(list []cuotas.Cuota) (map[uint]bool, error) {
	if len(list) == 0 {
		return map[uint]bool{}, nil
	}
	ids := make([]uint, 0, len(list))
	for _, cu := range list {
		ids = append(ids, cu.ID)
	}
	var paidIDs []uint
	err := database.DB.Model(&cuotas.Pago{}).
		Where("cuota_id IN ? AND estado = ?", ids, cuotas.PagoCompletado).
		Pluck("cuota_id", &paidIDs).Error
	if err != nil {
		return nil, err
	}
	paid := make(map[uint]bool, len(paidIDs))
	for _, id := range paidIDs {
		paid[id] = true
	}
	return paid, nil
}

func rolesFromContext(c *gin.Context) []string {
	v, ok := c.Get("roles")
	if !ok {
		return nil
	}
	roles, _ := v.([]string)
	return roles
}

// POST /cuotas
// Manual cuota for one socio, outside the monthly batch (late joiners,
// corrections).
func CreateCuota(c *gin.Context) {
	var input struct {
		UsuarioID   uint             `json:"usuario_id" binding:"required"`
		Periodo     string           `json:"periodo" binding:"required"`
		Monto       *decimal.Decimal `json:"monto"`
		Vencimiento *string          `json:"vencimiento"` // AAAA-MM-DD
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := time.Parse("2006-01", input.Periodo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "periodo inválido, usar AAAA-MM"})
		return
	}

	var info socios.SocioInfo
	if err := database.DB.Where("usuario_id = ?", input.UsuarioID).First(&info).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Socio no encontrado"})
		return
	}

	var count int64
	database.DB.Model(&cuotas.Cuota{}).
		Where("usuario_id = ? AND periodo = ?", input.UsuarioID, input.Periodo).
		Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "El socio ya tiene cuota para ese período"})
		return
	}

	cuota := cuotas.Cuota{
		UsuarioID:   input.UsuarioID,
		CategoriaID: info.CategoriaID,
		Periodo:     input.Periodo,
	}
	if input.Monto != nil {
		cuota.Monto = *input.Monto
	} else {
		cuota.Monto = config.CUOTA_MONTO_BASE
	}
	if input.Vencimiento != nil {
		v, err := time.Parse("2006-01-02", *input.Vencimiento)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "vencimiento inválido, usar AAAA-MM-DD"})
			return
		}
		cuota.Vencimiento = v
	} else {
		inicio, _ := time.Parse("2006-01", input.Periodo)
		cuota.Vencimiento = time.Date(inicio.Year(), inicio.Month(), 5, 0, 0, 0, 0, time.UTC)
	}

	if err := database.DB.Create(&cuota).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la cuota"})
		return
	}
	c.JSON(http.StatusCreated, cuota)
}

// PUT /cuotas/:id
// Amount and due-date corrections; paid cuotas are immutable.
func UpdateCuota(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var cuota cuotas.Cuota
	if err := database.DB.First(&cuota, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cuota no encontrada"})
		return
	}

	paid, err := paidCuotaIDs([]cuotas.Cuota{cuota})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron resolver los pagos"})
		return
	}
	if paid[cuota.ID] {
		c.JSON(http.StatusConflict, gin.H{"error": "La cuota ya está pagada"})
		return
	}

	var input struct {
		Monto       *decimal.Decimal `json:"monto"`
		Vencimiento *string          `json:"vencimiento"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if input.Monto != nil {
		updates["monto"] = *input.Monto
	}
	if input.Vencimiento != nil {
		v, err := time.Parse("2006-01-02", *input.Vencimiento)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "vencimiento inválido, usar AAAA-MM-DD"})
			return
		}
		updates["vencimiento"] = v
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nada para actualizar"})
		return
	}

	if err := database.DB.Model(&cuota).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar la cuota"})
		return
	}
	c.JSON(http.StatusOK, cuota)
}

// DELETE /cuotas/:id
func DeleteCuota(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var cuota cuotas.Cuota
	if err := database.DB.First(&cuota, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Cuota no encontrada"})
		return
	}

	paid, err := paidCuotaIDs([]cuotas.Cuota{cuota})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron resolver los pagos"})
		return
	}
	if paid[cuota.ID] {
		c.JSON(http.StatusConflict, gin.H{"error": "La cuota ya está pagada"})
		return
	}

	if err := database.DB.Delete(&cuota).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo eliminar la cuota"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cuota eliminada"})
}

// POST /cuotas/generar
// Runs the monthly batch on demand, defaulting to the current period.
func GenerarCuotas(c *gin.Context) {
	var input struct {
		Periodo string `json:"periodo"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Periodo == "" {
		input.Periodo = time.Now().Format("2006-01")
	}

	created, err := appcron.GenerateCuotas(database.DB, input.Periodo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"periodo": input.Periodo, "creadas": created})
}
