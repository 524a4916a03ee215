package socios

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"socios-app/database"
	"socios-app/internal/api/auth"
	"socios-app/internal/app/snapshot"
	"socios-app/internal/domain/access"
	"socios-app/internal/domain/cuotas"
	"socios-app/internal/domain/socios"
	"socios-app/internal/domain/usuarios"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// POST /socios/hacerse-socio
// Turns the logged-in user into a socio: creates the club profile, grants the
// socio role and reissues the session token so the new role claim is usable
// right away.
func HacerseSocio(c *gin.Context) {
	userID := c.GetUint("user_id")

	var input struct {
		NivelSocioID *uint `json:"nivel_socio_id"`
		DisciplinaID *uint `json:"disciplina_id"`
		CategoriaID  *uint `json:"categoria_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing socios.SocioInfo
	if err := database.DB.Where("usuario_id = ?", userID).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "El usuario ya es socio"})
		return
	}

	var user usuarios.Usuario
	if err := database.DB.Preload("Roles").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		info := socios.SocioInfo{
			UsuarioID:    userID,
			NivelSocioID: input.NivelSocioID,
			DisciplinaID: input.DisciplinaID,
			CategoriaID:  input.CategoriaID,
			Estado:       socios.EstadoActivo,
		}
		if err := tx.Create(&info).Error; err != nil {
			return err
		}

		var rol usuarios.Rol
		if err := tx.Where(usuarios.Rol{Nombre: string(access.RoleSocio)}).FirstOrCreate(&rol).Error; err != nil {
			return err
		}
		return tx.Model(&user).Association("Roles").Append(&rol)
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear el socio", "details": err.Error()})
		return
	}

	// reload roles for the fresh token
	database.DB.Preload("Roles").First(&user, userID)
	token, err := auth.IssueJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Socio creado pero no se pudo renovar el token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Ya sos socio del club", "token": token})
}

// POST /socios/:id/activar
// Reactivation always settles the debt in the same transaction: every
// outstanding cuota gets a completed pago with the details staff entered.
func ActivarSocio(c *gin.Context) {
	socioID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var input struct {
		MedioPago   string  `json:"medio_pago" binding:"required"`
		Comprobante *string `json:"comprobante"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !access.ValidPaymentMethod(access.PaymentMethod(input.MedioPago)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Medio de pago inválido"})
		return
	}

	var info socios.SocioInfo
	if err := database.DB.Where("usuario_id = ?", socioID).First(&info).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Socio no encontrado"})
		return
	}
	if info.Estado == socios.EstadoActivo {
		c.JSON(http.StatusConflict, gin.H{"error": "El socio ya está activo"})
		return
	}

	pending, err := snapshot.PendingCuotas(database.DB, uint(socioID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar las cuotas"})
		return
	}

	now := time.Now()
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for _, cu := range pending {
			pago := cuotas.Pago{
				CuotaID:     cu.ID,
				MedioPago:   input.MedioPago,
				Monto:       cu.Monto,
				Estado:      cuotas.PagoCompletado,
				Comprobante: input.Comprobante,
				Fecha:       now,
			}
			if err := tx.Create(&pago).Error; err != nil {
				return err
			}
		}
		return tx.Model(&info).Updates(map[string]interface{}{
			"estado":             socios.EstadoActivo,
			"fecha_inactivacion": nil,
			"razon_inactivacion": nil,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo activar al socio", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Socio activado",
		"cuotas_saldadas": len(pending),
	})
}

// POST /socios/:id/inactivar
func InactivarSocio(c *gin.Context) {
	socioID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var input struct {
		Razon *string `json:"razon"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var info socios.SocioInfo
	if err := database.DB.Where("usuario_id = ?", socioID).First(&info).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Socio no encontrado"})
		return
	}
	if info.Estado == socios.EstadoInactivo {
		c.JSON(http.StatusConflict, gin.H{"error": "El socio ya está inactivo"})
		return
	}

	now := time.Now()
	err = database.DB.Model(&info).Updates(map[string]interface{}{
		"estado":             socios.EstadoInactivo,
		"fecha_inactivacion": now,
		"razon_inactivacion": input.Razon,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo inactivar al socio"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Socio inactivado"})
}

// POST /socios/:id/pagos
// Manual payment entry for an active socio with debt. Staff pick the cuotas;
// all of them settle in one transaction or none do.
func RegistrarPago(c *gin.Context) {
	socioID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var input struct {
		CuotaIDs    []uint  `json:"cuota_ids" binding:"required,min=1"`
		MedioPago   string  `json:"medio_pago" binding:"required"`
		Comprobante *string `json:"comprobante"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !access.ValidPaymentMethod(access.PaymentMethod(input.MedioPago)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Medio de pago inválido"})
		return
	}

	pending, err := snapshot.PendingCuotas(database.DB, uint(socioID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron cargar las cuotas"})
		return
	}
	pendingByID := make(map[uint]cuotas.Cuota, len(pending))
	for _, cu := range pending {
		pendingByID[cu.ID] = cu
	}

	toSettle := make([]cuotas.Cuota, 0, len(input.CuotaIDs))
	for _, id := range input.CuotaIDs {
		cu, ok := pendingByID[id]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "La cuota no está pendiente o no pertenece al socio", "cuota_id": id})
			return
		}
		toSettle = append(toSettle, cu)
	}

	now := time.Now()
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for _, cu := range toSettle {
			pago := cuotas.Pago{
				CuotaID:     cu.ID,
				MedioPago:   input.MedioPago,
				Monto:       cu.Monto,
				Estado:      cuotas.PagoCompletado,
				Comprobante: input.Comprobante,
				Fecha:       now,
			}
			if err := tx.Create(&pago).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo registrar el pago", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pago registrado", "cuotas_saldadas": len(toSettle)})
}

// GET /socios
// Membership roster for staff screens, with optional ?estado= filter.
func ListSocios(c *gin.Context) {
	query := database.DB.
		Preload("Usuario").
		Preload("NivelSocio").
		Preload("Disciplina").
		Preload("Categoria").
		Model(&socios.SocioInfo{})

	if estado := c.Query("estado"); estado != "" {
		query = query.Where("estado = ?", estado)
	}

	var list []socios.SocioInfo
	if err := query.Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron listar los socios"})
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, info := range list {
		alDia, err := snapshot.DuesUpToDate(database.DB, info.UsuarioID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo resolver el estado de cuotas"})
			return
		}
		entry := gin.H{
			"usuario_id": info.UsuarioID,
			"nombre":     info.Usuario.NombreCompleto(),
			"email":      info.Usuario.Email,
			"estado":     info.Estado,
			"al_dia":     alDia,
		}
		if info.Disciplina != nil {
			entry["disciplina"] = info.Disciplina.Nombre
		}
		if info.Categoria != nil {
			entry["categoria"] = info.Categoria.Nombre
		}
		if info.NivelSocio != nil {
			entry["nivel"] = info.NivelSocio.Nivel
		}
		out = append(out, entry)
	}
	c.JSON(http.StatusOK, out)
}

/* ---------------- niveles ---------------- */

// GET /niveles-socio
func ListNiveles(c *gin.Context) {
	var niveles []socios.NivelSocio
	if err := database.DB.Order("nivel").Find(&niveles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron listar los niveles"})
		return
	}
	c.JSON(http.StatusOK, niveles)
}

// POST /niveles-socio
func CreateNivel(c *gin.Context) {
	var input struct {
		Nivel       int     `json:"nivel" binding:"required"`
		Descuento   int     `json:"descuento"`
		Descripcion *string `json:"descripcion"`
		Beneficios  *string `json:"beneficios"`
		Requisitos  *string `json:"requisitos"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Descuento < 0 || input.Descuento > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El descuento debe estar entre 0 y 100"})
		return
	}

	nivel := socios.NivelSocio{
		Nivel:       input.Nivel,
		Descuento:   input.Descuento,
		Descripcion: input.Descripcion,
		Beneficios:  input.Beneficios,
		Requisitos:  input.Requisitos,
	}
	if err := database.DB.Create(&nivel).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "No se pudo crear el nivel", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, nivel)
}

// PUT /socios/:id/nivel
func AsignarNivel(c *gin.Context) {
	socioID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var input struct {
		NivelSocioID *uint `json:"nivel_socio_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.NivelSocioID != nil {
		var nivel socios.NivelSocio
		if err := database.DB.First(&nivel, *input.NivelSocioID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Nivel no encontrado"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo cargar el nivel"})
			return
		}
	}

	result := database.DB.Model(&socios.SocioInfo{}).
		Where("usuario_id = ?", socioID).
		Update("nivel_socio_id", input.NivelSocioID)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo asignar el nivel"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Socio no encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Nivel asignado"})
}
