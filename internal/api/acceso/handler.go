package acceso

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"socios-app/database"
	"socios-app/internal/app/snapshot"
	"socios-app/internal/domain/acceso"
	"socios-app/internal/domain/access"
	"socios-app/internal/domain/eventos"
	"socios-app/internal/domain/socios"
	"socios-app/internal/domain/usuarios"

	"github.com/gin-gonic/gin"
)

const (
	motivoNoSocio  = "no_socio"
	motivoInactivo = "inactivo"
	motivoDeuda    = "deuda"
)

// POST /acceso/validar
// The kiosk scans a credential QR, but the gate also accepts a document
// number or the numeric member id typed by hand. Every attempt lands in the
// log, matched or not.
func ValidarAcceso(c *gin.Context) {
	var input struct {
		Codigo string `json:"codigo" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, found := lookupUsuario(input.Codigo)
	if !found {
		registrar(nil, acceso.EstadoDenegado, motivoNoSocio, input.Codigo)
		c.JSON(http.StatusOK, denegado(motivoNoSocio, "No encontramos un socio con ese código."))
		return
	}

	var info socios.SocioInfo
	if err := database.DB.Where("usuario_id = ?", user.ID).First(&info).Error; err != nil {
		registrar(&user.ID, acceso.EstadoDenegado, motivoNoSocio, input.Codigo)
		c.JSON(http.StatusOK, denegado(motivoNoSocio, user.Nombre+" no es socio del club."))
		return
	}

	if info.Estado != socios.EstadoActivo {
		registrar(&user.ID, acceso.EstadoDenegado, motivoInactivo, input.Codigo)
		c.JSON(http.StatusOK, denegado(motivoInactivo, user.Nombre+", tu membresía está inactiva. Acercate a secretaría."))
		return
	}

	if conDeudaVencida(user.ID) {
		registrar(&user.ID, acceso.EstadoDenegado, motivoDeuda, input.Codigo)
		c.JSON(http.StatusOK, denegado(motivoDeuda, user.Nombre+", tenés cuotas vencidas. Acercate a secretaría."))
		return
	}

	registrar(&user.ID, acceso.EstadoAprobado, "", input.Codigo)
	c.JSON(http.StatusOK, gin.H{
		"resultado": acceso.EstadoAprobado,
		"usuario": gin.H{
			"id":     user.ID,
			"nombre": user.NombreCompleto(),
		},
		"saludo": saludo(user),
	})
}

// lookupUsuario resolves a scanned code: QR token first, then document
// number, then the raw numeric id.
func lookupUsuario(codigo string) (usuarios.Usuario, bool) {
	var user usuarios.Usuario

	if err := database.DB.Where("qr_token = ?", codigo).First(&user).Error; err == nil {
		return user, true
	}
	if err := database.DB.Where("nro_documento = ?", codigo).First(&user).Error; err == nil {
		return user, true
	}
	if id, err := strconv.ParseUint(codigo, 10, 32); err == nil {
		if err := database.DB.First(&user, id).Error; err == nil {
			return user, true
		}
	}
	return usuarios.Usuario{}, false
}

// conDeudaVencida only counts dues past their vencimiento: an unpaid cuota
// still inside the grace window does not stop the member at the gate.
func conDeudaVencida(userID uint) bool {
	pending, err := snapshot.PendingCuotas(database.DB, userID)
	if err != nil {
		return false
	}
	hoy := time.Now().Truncate(24 * time.Hour)
	for _, cu := range pending {
		if cu.Vencimiento.Before(hoy) {
			return true
		}
	}
	return false
}

// saludo builds the spoken greeting. When the member has a club event within
// the next seven days that they can actually see, the kiosk mentions it.
func saludo(user usuarios.Usuario) string {
	base := fmt.Sprintf("¡Hola %s! Bienvenido al club.", user.Nombre)

	snap, err := snapshot.ForUsuario(database.DB, user.ID)
	if err != nil {
		return base
	}

	ahora := time.Now()
	var evs []eventos.Evento
	err = database.DB.Preload("ProfesoresACargo").
		Where("publicado = true AND fecha_inicio >= ? AND fecha_inicio <= ?", ahora, ahora.AddDate(0, 0, 7)).
		Order("fecha_inicio").
		Find(&evs).Error
	if err != nil {
		return base
	}

	for _, e := range evs {
		item := calendarItem(e)
		if len(access.VisibleEvents(snap, []access.CalendarItem{item})) > 0 {
			return fmt.Sprintf("%s Recordá que el %s tenés: %s.",
				base, e.FechaInicio.Format("02/01"), e.Titulo)
		}
	}
	return base
}

func calendarItem(e eventos.Evento) access.CalendarItem {
	staff := make([]uint, 0, len(e.ProfesoresACargo))
	for _, p := range e.ProfesoresACargo {
		staff = append(staff, p.ID)
	}
	return access.CalendarItem{
		Kind:         access.KindClubEvent,
		ID:           e.ID,
		Title:        e.Titulo,
		DisciplineID: e.DisciplinaID,
		CategoryID:   e.CategoriaID,
		StaffIDs:     staff,
		Start:        e.FechaInicio,
		End:          e.FechaFin,
	}
}

func denegado(motivo, mensaje string) gin.H {
	return gin.H{
		"resultado": acceso.EstadoDenegado,
		"motivo":    motivo,
		"mensaje":   mensaje,
	}
}

func registrar(usuarioID *uint, estado, motivo, datos string) {
	registro := acceso.RegistroAcceso{
		UsuarioID:       usuarioID,
		Estado:          estado,
		DatosIngresados: datos,
		FechaHora:       time.Now(),
	}
	if motivo != "" {
		registro.Motivo = &motivo
	}
	if err := database.DB.Create(&registro).Error; err != nil {
		log.Println("No se pudo registrar el acceso:", err)
	}
}

// GET /acceso/historial?desde=&hasta=&estado=
func Historial(c *gin.Context) {
	query := database.DB.Preload("Usuario").Model(&acceso.RegistroAcceso{})

	if desde := c.Query("desde"); desde != "" {
		query = query.Where("fecha_hora >= ?", desde)
	}
	if hasta := c.Query("hasta"); hasta != "" {
		query = query.Where("fecha_hora <= ?", hasta)
	}
	if estado := c.Query("estado"); estado != "" {
		query = query.Where("estado = ?", estado)
	}

	var registros []acceso.RegistroAcceso
	if err := query.Order("fecha_hora DESC").Limit(500).Find(&registros).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo cargar el historial"})
		return
	}

	out := make([]gin.H, 0, len(registros))
	for _, r := range registros {
		entry := gin.H{
			"id":         r.ID,
			"estado":     r.Estado,
			"motivo":     r.Motivo,
			"fecha_hora": r.FechaHora,
		}
		if r.Usuario != nil {
			entry["usuario"] = gin.H{"id": r.Usuario.ID, "nombre": r.Usuario.NombreCompleto()}
		} else {
			entry["datos_ingresados"] = r.DatosIngresados
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, out)
}
