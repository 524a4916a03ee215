package auth

import (
	"net/http"
	"regexp"
	"time"

	"socios-app/config"
	"socios-app/database"
	"socios-app/internal/domain/socios"
	"socios-app/internal/domain/usuarios"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func isEmailValid(email string) bool {
	pattern := `^[a-zA-Z0-9._%%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`
	matched, _ := regexp.MatchString(pattern, email)
	return matched
}

func Register(c *gin.Context) {
	var input struct {
		Nombre        string  `json:"nombre" binding:"required"`
		Apellido      string  `json:"apellido" binding:"required"`
		Email         string  `json:"email" binding:"required,email"`
		Contrasena    string  `json:"contrasena" binding:"required"`
		TipoDocumento *string `json:"tipo_documento"`
		NroDocumento  *string `json:"nro_documento"`
		Telefono      *string `json:"telefono"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isPasswordStrong(input.Contrasena) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La contraseña debe tener al menos 8 caracteres con letras y números"})
		return
	}
	if !isEmailValid(input.Email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formato de email inválido"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Contrasena), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo procesar la contraseña"})
		return
	}
	hashed := string(hashedPassword)

	user := usuarios.Usuario{
		Nombre:        input.Nombre,
		Apellido:      input.Apellido,
		Email:         input.Email,
		Contrasena:    &hashed,
		AuthProvider:  "local",
		TipoDocumento: input.TipoDocumento,
		NroDocumento:  input.NroDocumento,
		Telefono:      input.Telefono,
		// The kiosk token is fixed at registration; the credential endpoint
		// renders it as a QR.
		QRToken: uuid.NewString(),
		Activo:  true,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "El email o documento ya está registrado", "details": err.Error()})
		return
	}

	tokenString, err := IssueJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear el token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": tokenString})
}

func Login(c *gin.Context) {
	var input struct {
		Email      string `json:"email" binding:"required,email"`
		Contrasena string `json:"contrasena" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user usuarios.Usuario
	err := database.DB.Preload("Roles").Where("email = ?", input.Email).First(&user).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales inválidas"})
		return
	}

	if !user.Activo {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cuenta deshabilitada"})
		return
	}

	if user.Contrasena == nil || *user.Contrasena == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Esta cuenta usa inicio de sesión con Google"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Contrasena), []byte(input.Contrasena)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Credenciales inválidas"})
		return
	}

	tokenString, err := IssueJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo crear el token"})
		return
	}

	payload := gin.H{
		"id":       user.ID,
		"nombre":   user.Nombre,
		"apellido": user.Apellido,
		"email":    user.Email,
		"roles":    user.RoleNames(),
	}
	var info socios.SocioInfo
	if err := database.DB.Where("usuario_id = ?", user.ID).First(&info).Error; err == nil {
		payload["socioinfo"] = gin.H{"estado": info.Estado}
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString, "user": payload})
}

// IssueJWT signs the session token. Roles travel as an array claim because
// users routinely hold more than one (socio plus profesor is common).
func IssueJWT(user usuarios.Usuario) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"roles":   user.RoleNames(),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString([]byte(config.JWT_SECRET))
}

func ChangePassword(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		ContrasenaActual string `json:"contrasena_actual" binding:"required"`
		ContrasenaNueva  string `json:"contrasena_nueva" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isPasswordStrong(body.ContrasenaNueva) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "La nueva contraseña debe tener al menos 8 caracteres con letras y números"})
		return
	}

	var user usuarios.Usuario
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Usuario no encontrado"})
		return
	}

	if user.Contrasena == nil || *user.Contrasena == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Esta cuenta no tiene contraseña. Iniciá sesión con Google."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Contrasena), []byte(body.ContrasenaActual)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "La contraseña actual es incorrecta"})
		return
	}

	hashedNew, _ := bcrypt.GenerateFromPassword([]byte(body.ContrasenaNueva), bcrypt.DefaultCost)
	database.DB.Model(&user).Update("contrasena", string(hashedNew))

	c.JSON(http.StatusOK, gin.H{"message": "Contraseña actualizada"})
}
