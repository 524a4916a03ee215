package eventos

import (
	"net/http"
	"strconv"
	"time"

	"socios-app/database"
	"socios-app/internal/app/snapshot"
	"socios-app/internal/domain/access"
	"socios-app/internal/domain/entrenamientos"
	"socios-app/internal/domain/eventos"
	"socios-app/internal/domain/usuarios"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GET /eventos?desde=&hasta=&tipo=
// Listing is always filtered through the caller's visibility tier, so a
// socio of one discipline never sees another discipline's internals.
func ListEventos(c *gin.Context) {
	snap, err := snapshot.ForUsuario(database.DB, c.GetUint("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo resolver el acceso"})
		return
	}

	query := database.DB.Preload("ProfesoresACargo").Where("publicado = true")
	query = query.Where("fecha_fin >= ?", desdeOrNow(c.Query("desde"), time.Now()))
	if hasta := c.Query("hasta"); hasta != "" {
		query = query.Where("fecha_inicio <= ?", hasta)
	}
	if tipo := c.Query("tipo"); tipo != "" {
		query = query.Where("tipo = ?", tipo)
	}

	var list []eventos.Evento
	if err := query.Order("fecha_inicio").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron listar los eventos"})
		return
	}

	catalog := make([]access.CalendarItem, 0, len(list))
	byKey := make(map[string]eventos.Evento, len(list))
	for _, e := range list {
		item := itemFromEvento(e)
		catalog = append(catalog, item)
		byKey[item.DisplayKey()] = e
	}

	visible := access.VisibleEvents(snap, catalog)
	out := make([]gin.H, 0, len(visible))
	for _, item := range visible {
		e := byKey[item.DisplayKey()]
		out = append(out, eventoJSON(e, item))
	}
	c.JSON(http.StatusOK, out)
}

// desdeOrNow picks the lower bound of the listing window. Without an
// explicit desde the list covers upcoming events only.
func desdeOrNow(desde string, now time.Time) any {
	if desde != "" {
		return desde
	}
	return now
}

func eventoJSON(e eventos.Evento, item access.CalendarItem) gin.H {
	profes := make([]gin.H, 0, len(e.ProfesoresACargo))
	for _, p := range e.ProfesoresACargo {
		profes = append(profes, gin.H{"id": p.ID, "nombre": p.NombreCompleto()})
	}
	return gin.H{
		"key":                item.DisplayKey(),
		"id":                 e.ID,
		"tipo":               e.Tipo,
		"titulo":             e.Titulo,
		"descripcion":        e.Descripcion,
		"fecha_inicio":       e.FechaInicio,
		"fecha_fin":          e.FechaFin,
		"lugar":              e.Lugar,
		"requisito_pago":     e.RequisitoPago,
		"costo":              e.Costo,
		"costo_hospedaje":    e.CostoHospedaje,
		"costo_viaje":        e.CostoViaje,
		"costo_comida":       e.CostoComida,
		"disciplina_id":      e.DisciplinaID,
		"categoria_id":       e.CategoriaID,
		"profesores_a_cargo": profes,
		"color":              access.ColorFor(item),
	}
}

// GET /eventos/:id
func GetEvento(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var e eventos.Evento
	if err := database.DB.Preload("ProfesoresACargo").First(&e, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Evento no encontrado"})
		return
	}

	snap, err := snapshot.ForUsuario(database.DB, c.GetUint("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo resolver el acceso"})
		return
	}

	item := itemFromEvento(e)
	if len(access.VisibleEvents(snap, []access.CalendarItem{item})) == 0 {
		// invisible and nonexistent look the same from outside
		c.JSON(http.StatusNotFound, gin.H{"error": "Evento no encontrado"})
		return
	}

	c.JSON(http.StatusOK, eventoJSON(e, item))
}

type eventoInput struct {
	Tipo           string           `json:"tipo" binding:"required,oneof=torneo partido viaje otro"`
	Titulo         string           `json:"titulo" binding:"required"`
	Descripcion    *string          `json:"descripcion"`
	FechaInicio    time.Time        `json:"fecha_inicio" binding:"required"`
	FechaFin       time.Time        `json:"fecha_fin" binding:"required"`
	Lugar          string           `json:"lugar" binding:"required"`
	RequisitoPago  bool             `json:"requisito_pago"`
	Costo          *decimal.Decimal `json:"costo"`
	CostoHospedaje *decimal.Decimal `json:"costo_hospedaje"`
	CostoViaje     *decimal.Decimal `json:"costo_viaje"`
	CostoComida    *decimal.Decimal `json:"costo_comida"`
	DisciplinaID   *uint            `json:"disciplina_id"`
	CategoriaID    *uint            `json:"categoria_id"`
	ProfesorIDs    []uint           `json:"profesor_ids"`
	Publicado      *bool            `json:"publicado"`
}

// POST /eventos
func CreateEvento(c *gin.Context) {
	var input eventoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.FechaFin.Before(input.FechaInicio) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fecha_fin no puede ser anterior a fecha_inicio"})
		return
	}
	if input.CategoriaID != nil && input.DisciplinaID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Un evento con categoría necesita su disciplina"})
		return
	}

	e := eventos.Evento{
		Tipo:           input.Tipo,
		Titulo:         input.Titulo,
		Descripcion:    input.Descripcion,
		FechaInicio:    input.FechaInicio,
		FechaFin:       input.FechaFin,
		Lugar:          input.Lugar,
		OrganizadorID:  c.GetUint("user_id"),
		RequisitoPago:  input.RequisitoPago,
		CostoHospedaje: input.CostoHospedaje,
		CostoViaje:     input.CostoViaje,
		CostoComida:    input.CostoComida,
		DisciplinaID:   input.DisciplinaID,
		CategoriaID:    input.CategoriaID,
		Publicado:      true,
	}
	if input.Costo != nil {
		e.Costo = *input.Costo
	}
	if input.Publicado != nil {
		e.Publicado = *input.Publicado
	}

	if len(input.ProfesorIDs) > 0 {
		var profes []usuarios.Usuario
		if err := database.DB.Find(&profes, input.ProfesorIDs).Error; err != nil || len(profes) != len(input.ProfesorIDs) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Algún profesor no existe"})
			return
		}
		e.ProfesoresACargo = profes
	}

	if err := database.DB.Create(&e).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear el evento", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, eventoJSON(e, itemFromEvento(e)))
}

// PUT /eventos/:id
func UpdateEvento(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var e eventos.Evento
	if err := database.DB.Preload("ProfesoresACargo").First(&e, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Evento no encontrado"})
		return
	}

	var input eventoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.FechaFin.Before(input.FechaInicio) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "fecha_fin no puede ser anterior a fecha_inicio"})
		return
	}

	e.Tipo = input.Tipo
	e.Titulo = input.Titulo
	e.Descripcion = input.Descripcion
	e.FechaInicio = input.FechaInicio
	e.FechaFin = input.FechaFin
	e.Lugar = input.Lugar
	e.RequisitoPago = input.RequisitoPago
	e.CostoHospedaje = input.CostoHospedaje
	e.CostoViaje = input.CostoViaje
	e.CostoComida = input.CostoComida
	e.DisciplinaID = input.DisciplinaID
	e.CategoriaID = input.CategoriaID
	if input.Costo != nil {
		e.Costo = *input.Costo
	}
	if input.Publicado != nil {
		e.Publicado = *input.Publicado
	}

	if err := database.DB.Save(&e).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar el evento"})
		return
	}

	if input.ProfesorIDs != nil {
		var profes []usuarios.Usuario
		if len(input.ProfesorIDs) > 0 {
			if err := database.DB.Find(&profes, input.ProfesorIDs).Error; err != nil || len(profes) != len(input.ProfesorIDs) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Algún profesor no existe"})
				return
			}
		}
		if err := database.DB.Model(&e).Association("ProfesoresACargo").Replace(profes); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron actualizar los profesores a cargo"})
			return
		}
	}

	c.JSON(http.StatusOK, eventoJSON(e, itemFromEvento(e)))
}

// DELETE /eventos/:id
// Unpublishes instead of deleting so linked payments stay consistent.
func DeleteEvento(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	result := database.DB.Model(&eventos.Evento{}).Where("id = ?", id).Update("publicado", false)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo despublicar el evento"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Evento no encontrado"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Evento despublicado"})
}

// GET /eventos/mis-viajes
// Trips visible to the caller, soonest first.
func MisViajes(c *gin.Context) {
	snap, err := snapshot.ForUsuario(database.DB, c.GetUint("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo resolver el acceso"})
		return
	}

	var list []eventos.Evento
	err = database.DB.Preload("ProfesoresACargo").
		Where("publicado = true AND tipo = ? AND fecha_fin >= ?", eventos.TipoViaje, time.Now()).
		Order("fecha_inicio").
		Find(&list).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron listar los viajes"})
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, e := range list {
		item := itemFromEvento(e)
		if len(access.VisibleEvents(snap, []access.CalendarItem{item})) == 0 {
			continue
		}
		out = append(out, eventoJSON(e, item))
	}
	c.JSON(http.StatusOK, out)
}

// GET /calendario?desde=&hasta=
// One merged feed of club events and training sessions. Sessions arrive
// already scoped to the caller (their category, the ones they teach, or all
// of them for management); events go through the visibility filter.
func Calendario(c *gin.Context) {
	userID := c.GetUint("user_id")
	snap, err := snapshot.ForUsuario(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo resolver el acceso"})
		return
	}

	desde := c.DefaultQuery("desde", time.Now().Format("2006-01-02"))
	hasta := c.DefaultQuery("hasta", time.Now().AddDate(0, 2, 0).Format("2006-01-02"))

	var evs []eventos.Evento
	err = database.DB.Preload("ProfesoresACargo").
		Where("publicado = true AND fecha_fin >= ? AND fecha_inicio <= ?", desde, hasta).
		Order("fecha_inicio").
		Find(&evs).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar los eventos"})
		return
	}

	catalog := make([]access.CalendarItem, 0, len(evs))
	for _, e := range evs {
		catalog = append(catalog, itemFromEvento(e))
	}

	sesiones, err := sesionesFor(snap, desde, hasta)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar las sesiones"})
		return
	}
	catalog = append(catalog, sesiones...)

	visible := access.VisibleEvents(snap, catalog)
	out := make([]CalendarEntryDTO, 0, len(visible))
	for _, item := range visible {
		out = append(out, buildEntry(item))
	}
	c.JSON(http.StatusOK, out)
}

// sesionesFor loads the training sessions the caller is entitled to and
// formats them as calendar items.
func sesionesFor(snap *access.User, desde, hasta string) ([]access.CalendarItem, error) {
	query := database.DB.
		Preload("Horario").
		Preload("Categoria").
		Preload("Categoria.Disciplina").
		Where("fecha >= ? AND fecha <= ?", desde, hasta).
		Where("estado <> ?", entrenamientos.SesionCancelada)

	switch {
	case snap.Roles.HasAny(access.ManagementRoles...):
		// everything
	case snap.Roles.Has(access.RoleProfesor):
		catIDs, err := snapshot.TeachingCategories(database.DB, snap.ID)
		if err != nil {
			return nil, err
		}
		own := ownCategoryIDs(snap)
		catIDs = append(catIDs, own...)
		if len(catIDs) == 0 {
			return nil, nil
		}
		query = query.Where("categoria_id IN ?", catIDs)
	default:
		own := ownCategoryIDs(snap)
		if len(own) == 0 {
			return nil, nil
		}
		query = query.Where("categoria_id IN ?", own)
	}

	var sesiones []entrenamientos.SesionEntrenamiento
	if err := query.Order("fecha").Find(&sesiones).Error; err != nil {
		return nil, err
	}

	items := make([]access.CalendarItem, 0, len(sesiones))
	for _, s := range sesiones {
		titulo := "Entrenamiento " + s.Categoria.Nombre
		inicio, fin := sesionHorario(s)
		items = append(items, itemFromSesion(s, titulo, inicio, fin))
	}
	return items, nil
}

func ownCategoryIDs(snap *access.User) []uint {
	if snap.Membership == nil || snap.Membership.CategoryID == nil {
		return nil
	}
	return []uint{*snap.Membership.CategoryID}
}

// sesionHorario anchors the slot times onto the session date.
func sesionHorario(s entrenamientos.SesionEntrenamiento) (time.Time, time.Time) {
	inicio := atHora(s.Fecha, s.Horario.HoraInicio)
	fin := atHora(s.Fecha, s.Horario.HoraFin)
	return inicio, fin
}

func atHora(fecha time.Time, hora string) time.Time {
	t, err := time.Parse("15:04", hora)
	if err != nil {
		return fecha
	}
	return time.Date(fecha.Year(), fecha.Month(), fecha.Day(), t.Hour(), t.Minute(), 0, 0, fecha.Location())
}
