package usuarios

import (
	"net/http"
	"strconv"
	"time"

	"socios-app/database"
	"socios-app/internal/app/snapshot"
	"socios-app/internal/domain/disciplinas"
	"socios-app/internal/domain/socios"
	"socios-app/internal/domain/usuarios"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

// GET /me
func GetCurrentUser(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var user usuarios.Usuario
	if err := database.DB.Preload("Roles").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}

	socioDTO, err := BuildSocioDTO(database.DB, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo cargar el perfil de socio"})
		return
	}

	snap, err := snapshot.ForUsuario(database.DB, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo resolver el acceso"})
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		User:   BuildUserDTO(user),
		Socio:  socioDTO,
		Access: BuildAccessDTO(snap),
	})
}

// PUT /me
func UpdateMe(c *gin.Context) {
	userID := c.GetUint("user_id")

	var input struct {
		Telefono        *string `json:"telefono"`
		Direccion       *string `json:"direccion"`
		FotoURL         *string `json:"foto_url"`
		FechaNacimiento *string `json:"fecha_nacimiento"` // "2006-01-02"
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user usuarios.Usuario
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}

	updates := map[string]interface{}{}
	if input.Telefono != nil {
		updates["telefono"] = *input.Telefono
	}
	if input.Direccion != nil {
		updates["direccion"] = *input.Direccion
	}
	if input.FotoURL != nil {
		updates["foto_url"] = *input.FotoURL
	}
	if input.FechaNacimiento != nil {
		fecha, err := parseDate(*input.FechaNacimiento)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "fecha_nacimiento inválida, usar AAAA-MM-DD"})
			return
		}
		updates["fecha_nacimiento"] = fecha
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nada para actualizar"})
		return
	}

	if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar el perfil"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Perfil actualizado"})
}

// PUT /me/perfil-deportivo
// Socios pick the discipline and category they play in. The category must
// belong to the chosen discipline.
func UpdatePerfilDeportivo(c *gin.Context) {
	userID := c.GetUint("user_id")

	var input struct {
		DisciplinaID uint  `json:"disciplina_id" binding:"required"`
		CategoriaID  *uint `json:"categoria_id"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var info socios.SocioInfo
	if err := database.DB.Where("usuario_id = ?", userID).First(&info).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "Solo los socios pueden cargar un perfil deportivo"})
		return
	}

	var disciplina disciplinas.Disciplina
	if err := database.DB.First(&disciplina, input.DisciplinaID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Disciplina no encontrada"})
		return
	}

	if input.CategoriaID != nil {
		var categoria disciplinas.Categoria
		if err := database.DB.First(&categoria, *input.CategoriaID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Categoría no encontrada"})
			return
		}
		if categoria.DisciplinaID != disciplina.ID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "La categoría no pertenece a la disciplina elegida"})
			return
		}
	}

	err := database.DB.Model(&info).Updates(map[string]interface{}{
		"disciplina_id": input.DisciplinaID,
		"categoria_id":  input.CategoriaID,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar el perfil deportivo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Perfil deportivo actualizado"})
}

// GET /me/credencial
// Renders the member credential as a QR png of the kiosk token.
func Credencial(c *gin.Context) {
	userID := c.GetUint("user_id")

	var user usuarios.Usuario
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}

	png, err := qrcode.Encode(user.QRToken, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo generar la credencial"})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

/* ---------------- admin ---------------- */

// GET /usuarios?rol=profesor&q=perez
func ListUsuarios(c *gin.Context) {
	query := database.DB.Preload("Roles").Model(&usuarios.Usuario{})

	if rol := c.Query("rol"); rol != "" {
		query = query.
			Joins("JOIN usuario_roles ON usuario_roles.usuario_id = usuarios.id").
			Joins("JOIN roles ON roles.id = usuario_roles.rol_id").
			Where("roles.nombre = ?", rol)
	}
	if q := c.Query("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"usuarios.nombre ILIKE ? OR usuarios.apellido ILIKE ? OR usuarios.email ILIKE ? OR usuarios.nro_documento ILIKE ?",
			like, like, like, like,
		)
	}

	var list []usuarios.Usuario
	if err := query.Order("apellido, nombre").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron listar los usuarios"})
		return
	}

	out := make([]UserDTO, 0, len(list))
	for _, u := range list {
		out = append(out, BuildUserDTO(u))
	}
	c.JSON(http.StatusOK, out)
}

// GET /usuarios/:id
func GetUsuario(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var user usuarios.Usuario
	if err := database.DB.Preload("Roles").First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}

	socioDTO, err := BuildSocioDTO(database.DB, user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo cargar el perfil de socio"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":  BuildUserDTO(user),
		"socio": socioDTO,
	})
}

// PUT /usuarios/:id/roles
// Replaces the user's role set. Unknown role names are rejected so a typo
// never silently drops privileges.
func AssignRoles(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var input struct {
		Roles []string `json:"roles" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user usuarios.Usuario
	if err := database.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}

	roles := make([]usuarios.Rol, 0, len(input.Roles))
	for _, name := range input.Roles {
		var rol usuarios.Rol
		if err := database.DB.Where("nombre = ?", name).First(&rol).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Rol desconocido: " + name})
			return
		}
		roles = append(roles, rol)
	}

	if err := database.DB.Model(&user).Association("Roles").Replace(roles); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron asignar los roles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Roles actualizados", "roles": input.Roles})
}

// DELETE /usuarios/:id
// Disables the account instead of deleting the row; attendance, payments and
// access history keep pointing at it.
func DeactivateUsuario(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	result := database.DB.Model(&usuarios.Usuario{}).Where("id = ?", id).Update("activo", false)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo deshabilitar la cuenta"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Usuario no encontrado"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cuenta deshabilitada"})
}

// GET /roles
func ListRoles(c *gin.Context) {
	var roles []usuarios.Rol
	if err := database.DB.Order("id").Find(&roles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron listar los roles"})
		return
	}
	c.JSON(http.StatusOK, roles)
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
