package admin

import (
	"net/http"
	"strconv"
	"time"

	"socios-app/database"
	"socios-app/internal/domain/acceso"
	"socios-app/internal/domain/cuotas"
	"socios-app/internal/domain/socios"
	"socios-app/internal/domain/usuarios"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AdminStats struct {
	TotalUsuarios    int             `json:"total_usuarios"`
	SociosActivos    int             `json:"socios_activos"`
	SociosInactivos  int             `json:"socios_inactivos"`
	SociosConDeuda   int             `json:"socios_con_deuda"`
	RecaudacionTotal decimal.Decimal `json:"recaudacion_total"`
	RecaudacionMes   decimal.Decimal `json:"recaudacion_mes"`
	AccesosHoy       int             `json:"accesos_hoy"`
	AccesosDenegados int             `json:"accesos_denegados_hoy"`
	SociosPorNivel   map[string]int  `json:"socios_por_nivel"`
}

// GET /admin/stats
func GetAdminStats(c *gin.Context) {
	var stats AdminStats

	var totalUsuarios, activos, inactivos int64
	database.DB.Model(&usuarios.Usuario{}).Count(&totalUsuarios)
	database.DB.Model(&socios.SocioInfo{}).Where("estado = ?", socios.EstadoActivo).Count(&activos)
	database.DB.Model(&socios.SocioInfo{}).Where("estado = ?", socios.EstadoInactivo).Count(&inactivos)

	// active socios holding at least one unpaid cuota
	var conDeuda int64
	database.DB.Model(&cuotas.Cuota{}).
		Distinct("cuotas.usuario_id").
		Joins("JOIN socios_info ON socios_info.usuario_id = cuotas.usuario_id AND socios_info.estado = ?", socios.EstadoActivo).
		Where("cuotas.id NOT IN (?)", database.DB.Model(&cuotas.Pago{}).
			Select("cuota_id").
			Where("estado = ?", cuotas.PagoCompletado)).
		Count(&conDeuda)

	var total, mes float64
	database.DB.Model(&cuotas.Pago{}).
		Where("estado = ?", cuotas.PagoCompletado).
		Select("COALESCE(SUM(monto), 0)").Scan(&total)

	inicioMes := time.Date(time.Now().Year(), time.Now().Month(), 1, 0, 0, 0, 0, time.UTC)
	database.DB.Model(&cuotas.Pago{}).
		Where("estado = ? AND fecha >= ?", cuotas.PagoCompletado, inicioMes).
		Select("COALESCE(SUM(monto), 0)").Scan(&mes)

	hoy := time.Now().Truncate(24 * time.Hour)
	var accesosHoy, denegadosHoy int64
	database.DB.Model(&acceso.RegistroAcceso{}).Where("fecha_hora >= ?", hoy).Count(&accesosHoy)
	database.DB.Model(&acceso.RegistroAcceso{}).
		Where("fecha_hora >= ? AND estado = ?", hoy, acceso.EstadoDenegado).
		Count(&denegadosHoy)

	type nivelCount struct {
		Nivel *int
		Count int
	}
	var counts []nivelCount
	database.DB.
		Table("socios_info").
		Select("niveles_socio.nivel, COUNT(socios_info.usuario_id) as count").
		Joins("LEFT JOIN niveles_socio ON socios_info.nivel_socio_id = niveles_socio.id").
		Group("niveles_socio.nivel").
		Scan(&counts)

	stats.TotalUsuarios = int(totalUsuarios)
	stats.SociosActivos = int(activos)
	stats.SociosInactivos = int(inactivos)
	stats.SociosConDeuda = int(conDeuda)
	stats.RecaudacionTotal = decimal.NewFromFloat(total)
	stats.RecaudacionMes = decimal.NewFromFloat(mes)
	stats.AccesosHoy = int(accesosHoy)
	stats.AccesosDenegados = int(denegadosHoy)

	stats.SociosPorNivel = map[string]int{}
	for _, n := range counts {
		nombre := "Sin nivel"
		if n.Nivel != nil {
			nombre = "Nivel " + strconv.Itoa(*n.Nivel)
		}
		stats.SociosPorNivel[nombre] = n.Count
	}

	c.JSON(http.StatusOK, stats)
}
