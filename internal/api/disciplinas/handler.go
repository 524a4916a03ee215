package disciplinas

import (
	"net/http"
	"strconv"

	"socios-app/database"
	"socios-app/internal/domain/access"
	"socios-app/internal/domain/disciplinas"
	"socios-app/internal/domain/usuarios"

	"github.com/gin-gonic/gin"
)

// GET /disciplinas
func ListDisciplinas(c *gin.Context) {
	var list []disciplinas.Disciplina
	if err := database.DB.Order("nombre").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron listar las disciplinas"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /disciplinas
func CreateDisciplina(c *gin.Context) {
	var input struct {
		Nombre      string  `json:"nombre" binding:"required"`
		Descripcion *string `json:"descripcion"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	d := disciplinas.Disciplina{Nombre: input.Nombre, Descripcion: input.Descripcion}
	if err := database.DB.Create(&d).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "La disciplina ya existe", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, d)
}

// PUT /disciplinas/:id
func UpdateDisciplina(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var input struct {
		Nombre      *string `json:"nombre"`
		Descripcion *string `json:"descripcion"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var d disciplinas.Disciplina
	if err := database.DB.First(&d, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Disciplina no encontrada"})
		return
	}

	updates := map[string]interface{}{}
	if input.Nombre != nil {
		updates["nombre"] = *input.Nombre
	}
	if input.Descripcion != nil {
		updates["descripcion"] = *input.Descripcion
	}
	if len(updates) > 0 {
		if err := database.DB.Model(&d).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar la disciplina"})
			return
		}
	}
	c.JSON(http.StatusOK, d)
}

/* ---------------- categorías ---------------- */

// GET /disciplinas/:id/categorias
func ListCategorias(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var list []disciplinas.Categoria
	if err := database.DB.Where("disciplina_id = ?", id).Order("edad_minima").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron listar las categorías"})
		return
	}
	c.JSON(http.StatusOK, list)
}

// POST /disciplinas/:id/categorias
func CreateCategoria(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var input struct {
		Nombre     string `json:"nombre" binding:"required"`
		EdadMinima int    `json:"edad_minima"`
		EdadMaxima int    `json:"edad_maxima" binding:"required"`
		Sexo       string `json:"sexo" binding:"required,oneof=masculino femenino mixto"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.EdadMinima > input.EdadMaxima {
		c.JSON(http.StatusBadRequest, gin.H{"error": "edad_minima no puede superar edad_maxima"})
		return
	}

	var d disciplinas.Disciplina
	if err := database.DB.First(&d, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Disciplina no encontrada"})
		return
	}

	cat := disciplinas.Categoria{
		DisciplinaID: d.ID,
		Nombre:       input.Nombre,
		EdadMinima:   input.EdadMinima,
		EdadMaxima:   input.EdadMaxima,
		Sexo:         input.Sexo,
	}
	if err := database.DB.Create(&cat).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear la categoría"})
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// PUT /categorias/:id/entrenadores
// Replaces the coach assignments of one category. Every assignee must hold
// the profesor role.
func AsignarEntrenadores(c *gin.Context) {
	catID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var input struct {
		Entrenadores []struct {
			UsuarioID   uint `json:"usuario_id" binding:"required"`
			EsPrincipal bool `json:"es_principal"`
		} `json:"entrenadores" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var cat disciplinas.Categoria
	if err := database.DB.First(&cat, catID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Categoría no encontrada"})
		return
	}

	for _, e := range input.Entrenadores {
		var user usuarios.Usuario
		if err := database.DB.Preload("Roles").First(&user, e.UsuarioID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Entrenador no encontrado", "usuario_id": e.UsuarioID})
			return
		}
		if !access.NormalizeRoles(user.RoleNames()).Has(access.RoleProfesor) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El usuario no tiene rol profesor", "usuario_id": e.UsuarioID})
			return
		}
	}

	tx := database.DB.Begin()
	if err := tx.Where("categoria_id = ?", cat.ID).Delete(&disciplinas.CategoriaEntrenador{}).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron reemplazar los entrenadores"})
		return
	}
	for _, e := range input.Entrenadores {
		asig := disciplinas.CategoriaEntrenador{
			CategoriaID:  cat.ID,
			EntrenadorID: e.UsuarioID,
			EsPrincipal:  e.EsPrincipal,
		}
		if err := tx.Create(&asig).Error; err != nil {
			tx.Rollback()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron reemplazar los entrenadores"})
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron reemplazar los entrenadores"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entrenadores asignados", "cantidad": len(input.Entrenadores)})
}

// GET /categorias/:id/entrenadores
func ListEntrenadores(c *gin.Context) {
	catID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	var list []disciplinas.CategoriaEntrenador
	if err := database.DB.Preload("Entrenador").Where("categoria_id = ?", catID).Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudieron listar los entrenadores"})
		return
	}

	out := make([]gin.H, 0, len(list))
	for _, e := range list {
		out = append(out, gin.H{
			"usuario_id":   e.EntrenadorID,
			"nombre":       e.Entrenador.NombreCompleto(),
			"es_principal": e.EsPrincipal,
		})
	}
	c.JSON(http.StatusOK, out)
}
