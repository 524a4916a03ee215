package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"socios-app/config"
	"socios-app/internal/domain/access"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protegido", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetUint("user_id"),
			"roles":   ContextRoles(c),
		})
	})
	return r
}

func TestAuthMiddlewareRejectsMissingHeader(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	r := authRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsWrongSecret(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	r := authRouter()

	token := signToken(t, "otro-secreto", jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareExtractsRolesArray(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	r := authRouter()

	token := signToken(t, "test-secret", jwt.MapClaims{
		"user_id": 7,
		"email":   "lucia@club.test",
		"roles":   []string{"socio", "profesor"},
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protegido", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7,"roles":["socio","profesor"]}`, w.Body.String())
}

func TestRequireAnyRole(t *testing.T) {
	config.JWT_SECRET = "test-secret"
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/solo-staff",
		AuthMiddleware(),
		RequireAnyRole(access.RoleAdmin, access.RoleDirigente),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	cases := []struct {
		name  string
		roles []string
		want  int
	}{
		{"dirigente pasa", []string{"dirigente"}, http.StatusOK},
		{"socio no pasa", []string{"socio"}, http.StatusForbidden},
		{"sin roles no pasa", nil, http.StatusForbidden},
		{"rol desconocido no cuenta", []string{"superadmin"}, http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			token := signToken(t, "test-secret", jwt.MapClaims{
				"user_id": 1,
				"roles":   tc.roles,
				"exp":     time.Now().Add(time.Hour).Unix(),
			})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/solo-staff", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			r.ServeHTTP(w, req)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
