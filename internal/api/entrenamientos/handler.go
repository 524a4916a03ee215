package entrenamientos

import (
	"net/http"
	"strconv"
	"time"

	"socios-app/database"
	"socios-app/internal/app/snapshot"
	"socios-app/internal/domain/access"
	"socios-app/internal/domain/disciplinas"
	"socios-app/internal/domain/entrenamientos"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// canManageCategoria gates coach-level operations: admins and dirigentes can
// touch any category, profesores only the ones they are assigned to.
func canManageCategoria(c *gin.Context, categoriaID uint) bool {
	roles := access.NormalizeRoles(rolesFromContext(c))
	if roles.HasAny(access.RoleAdmin, access.RoleDirigente) {
		return true
	}
	if !roles.Has(access.RoleProfesor) {
		return false
	}
	cats, err := snapshot.TeachingCategories(database.DB, c.GetUint("user_id"))
	if err != nil {
		return false
	}
	for _, id := range cats {
		if id == categoriaID {
			return true
		}
	}
	return false
}

func rolesFromContext(c *gin.Context) []string {
	v, ok := c.Get("roles")
	if !ok {
		return nil
	}
	roles, _ := v.([]string)
	return roles
}

/* ---------------- horarios ---------------- */

// GET /categorias/:id/horarios
func ListHorarios(c *gin.Context) {
	catID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var list []entrenamientos.HorarioEntrenamiento
	if err := database.DB.Where("categoria_id = ?", catID).Order("dia_semana, hora_inicio").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron listar los horarios"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /categorias/:id/horarios
func CreateHorario(c *gin.Context) {
	catID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var input struct {
		DiaSemana  *int   `json:"dia_semana" binding:"required"` // 0 = lunes
		HoraInicio string `json:"hora_inicio" binding:"required"`
		HoraFin    string `json:"hora_fin" binding:"required"`
		Lugar      string `json:"lugar" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if *input.DiaSemana < 0 || *input.DiaSemana > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dia_semana debe estar entre 0 (lunes) y 6 (domingo)"})
		return
	}
	if !validHora(input.HoraInicio) || !validHora(input.HoraFin) || input.HoraFin <= input.HoraInicio {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Horas inválidas, usar HH:MM con fin posterior al inicio"})
		return
	}

	var cat disciplinas.Categoria
	if err := database.DB.First(&cat, catID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Categoría no encontrada"})
		return
	}

	if !canManageCategoria(c, cat.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No estás asignado a esta categoría"})
		return
	}

	horario := entrenamientos.HorarioEntrenamiento{
		CategoriaID: cat.ID,
		DiaSemana:   *input.DiaSemana,
		HoraInicio:  input.HoraInicio,
		HoraFin:     input.HoraFin,
		Lugar:       input.Lugar,
		Activo:      true,
	}
	if err := database.DB.Create(&horario).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear el horario"})
		return
	}
	c.JSON(http.StatusCreated, horario)
}

// DELETE /horarios/:id
// Deactivates the slot; existing sessions and attendance stay.
func DeactivateHorario(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var horario entrenamientos.HorarioEntrenamiento
	if err := database.DB.First(&horario, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Horario no encontrado"})
		return
	}
	if !canManageCategoria(c, horario.CategoriaID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No estás asignado a esta categoría"})
		return
	}

	if err := database.DB.Model(&horario).Update("activo", false).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo dar de baja el horario"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Horario dado de baja"})
}

/* ---------------- sesiones ---------------- */

// POST /categorias/:id/generar-sesiones
// Materializes dated sessions out of the weekly slots for a date range.
// Re-running the same range is a no-op thanks to the (horario, fecha) unique
// index, so staff can extend the calendar without bookkeeping.
func GenerarSesiones(c *gin.Context) {
	catID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var input struct {
		FechaDesde string `json:"fecha_desde" binding:"required"` // AAAA-MM-DD
		FechaHasta string `json:"fecha_hasta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	desde, err1 := time.Parse("2006-01-02", input.FechaDesde)
	hasta, err2 := time.Parse("2006-01-02", input.FechaHasta)
	if err1 != nil || err2 != nil || hasta.Before(desde) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rango de fechas inválido"})
		return
	}
	if hasta.Sub(desde) > 180*24*time.Hour {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El rango no puede superar 180 días"})
		return
	}

	if !canManageCategoria(c, uint(catID)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No estás asignado a esta categoría"})
		return
	}

	var horarios []entrenamientos.HorarioEntrenamiento
	if err := database.DB.Where("categoria_id = ? AND activo = true", catID).Find(&horarios).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar los horarios"})
		return
	}
	if len(horarios) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La categoría no tiene horarios activos"})
		return
	}

	created := 0
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for fecha := desde; !fecha.After(hasta); fecha = fecha.AddDate(0, 0, 1) {
			dia := mondayIndexed(fecha.Weekday())
			for _, h := range horarios {
				if h.DiaSemana != dia {
					continue
				}
				sesion := entrenamientos.SesionEntrenamiento{
					HorarioID:   h.ID,
					CategoriaID: h.CategoriaID,
					Fecha:       fecha,
					Estado:      entrenamientos.SesionProgramada,
				}
				result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&sesion)
				if result.Error != nil {
					return result.Error
				}
				created += int(result.RowsAffected)
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron generar las sesiones", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sesiones generadas", "creadas": created})
}

// mondayIndexed maps time.Weekday (Sunday = 0) onto the schedule convention
// where Monday = 0.
func mondayIndexed(d time.Weekday) int {
	return (int(d) + 6) % 7
}

// GET /categorias/:id/sesiones?desde=&hasta=
func ListSesiones(c *gin.Context) {
	catID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	query := database.DB.Preload("Horario").Where("categoria_id = ?", catID)
	if desde := c.Query("desde"); desde != "" {
		query = query.Where("fecha >= ?", desde)
	}
	if hasta := c.Query("hasta"); hasta != "" {
		query = query.Where("fecha <= ?", hasta)
	}

	var list []entrenamientos.SesionEntrenamiento
	if err := query.Order("fecha, id").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron listar las sesiones"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// PUT /sesiones/:id/estado
func UpdateSesionEstado(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var input struct {
		Estado string `json:"estado" binding:"required,oneof=programada cancelada completada"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sesion entrenamientos.SesionEntrenamiento
	if err := database.DB.First(&sesion, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sesión no encontrada"})
		return
	}
	if !canManageCategoria(c, sesion.CategoriaID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No estás asignado a esta categoría"})
		return
	}

	if err := database.DB.Model(&sesion).Update("estado", input.Estado).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar la sesión"})
		return
	}
	c.JSON(http.StatusOK, sesion)
}

/* ---------------- asistencia ---------------- */

// POST /sesiones/:id/asistencias
// Bulk upsert of the attendance sheet. Each row records who loaded it.
func RegistrarAsistencia(c *gin.Context) {
	sesionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var input struct {
		Asistencias []struct {
			UsuarioID uint    `json:"usuario_id" binding:"required"`
			Estado    string  `json:"estado" binding:"required,oneof=presente ausente tarde"`
			Nota      *string `json:"nota"`
		} `json:"asistencias" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var sesion entrenamientos.SesionEntrenamiento
	if err := database.DB.First(&sesion, sesionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sesión no encontrada"})
		return
	}
	if !canManageCategoria(c, sesion.CategoriaID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No estás asignado a esta categoría"})
		return
	}
	if sesion.Estado == entrenamientos.SesionCancelada {
		c.JSON(http.StatusConflict, gin.H{"error": "La sesión está cancelada"})
		return
	}

	registradoPor := c.GetUint("user_id")
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for _, a := range input.Asistencias {
			row := entrenamientos.AsistenciaEntrenamiento{
				SesionID:        sesion.ID,
				UsuarioID:       a.UsuarioID,
				Estado:          a.Estado,
				Nota:            a.Nota,
				RegistradoPorID: &registradoPor,
			}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "sesion_id"}, {Name: "usuario_id"}},
				DoUpdates: clause.AssignmentColumns([]string{"estado", "nota", "registrado_por_id", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo registrar la asistencia", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Asistencia registrada", "filas": len(input.Asistencias)})
}

// GET /sesiones/:id/hoja-asistencia
// The sheet merges the category roster with whatever was recorded; players
// without a record show up as ausente so the sheet is always complete.
func HojaAsistencia(c *gin.Context) {
	sesionID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var sesion entrenamientos.SesionEntrenamiento
	if err := database.DB.Preload("Horario").First(&sesion, sesionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Sesión no encontrada"})
		return
	}
	if !canManageCategoria(c, sesion.CategoriaID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "No estás asignado a esta categoría"})
		return
	}

	type rosterRow struct {
		UsuarioID uint
		Nombre    string
		Apellido  string
	}
	var roster []rosterRow
	err = database.DB.Table("socios_info").
		Select("socios_info.usuario_id, usuarios.nombre, usuarios.apellido").
		Joins("JOIN usuarios ON usuarios.id = socios_info.usuario_id").
		Where("socios_info.categoria_id = ?", sesion.CategoriaID).
		Order("usuarios.apellido, usuarios.nombre").
		Scan(&roster).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo cargar el plantel"})
		return
	}

	var registros []entrenamientos.AsistenciaEntrenamiento
	if err := database.DB.Where("sesion_id = ?", sesion.ID).Find(&registros).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar los registros"})
		return
	}
	porUsuario := make(map[uint]entrenamientos.AsistenciaEntrenamiento, len(registros))
	for _, r := range registros {
		porUsuario[r.UsuarioID] = r
	}

	hoja := make([]gin.H, 0, len(roster))
	for _, row := range roster {
		entry := gin.H{
			"usuario_id": row.UsuarioID,
			"nombre":     row.Nombre + " " + row.Apellido,
			"estado":     entrenamientos.AsistenciaAusente,
			"nota":       nil,
		}
		if r, ok := porUsuario[row.UsuarioID]; ok {
			entry["estado"] = r.Estado
			entry["nota"] = r.Nota
		}
		hoja = append(hoja, entry)
	}

	c.JSON(http.StatusOK, gin.H{
		"sesion_id": sesion.ID,
		"fecha":     sesion.Fecha.Format("2006-01-02"),
		"estado":    sesion.Estado,
		"hoja":      hoja,
	})
}

func validHora(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
