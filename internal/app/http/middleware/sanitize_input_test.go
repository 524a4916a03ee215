package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sanitizeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SanitizeInputMiddleware())
	r.POST("/echo", func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, body)
	})
	return r
}

func postJSON(r *gin.Engine, payload string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestSanitizeStripsHTML(t *testing.T) {
	r := sanitizeRouter()

	w := postJSON(r, `{"nombre": "<script>alert(1)</script>Lucía", "nota": "<b>hola</b>"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Lucía", body["nombre"])
	assert.Equal(t, "hola", body["nota"])
}

func TestSanitizeLeavesPasswordsAlone(t *testing.T) {
	r := sanitizeRouter()

	w := postJSON(r, `{"contrasena": "a<b>c&123", "email": "x@y.com"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "a<b>c&123", body["contrasena"])
}

func TestSanitizeWalksNestedValues(t *testing.T) {
	r := sanitizeRouter()

	w := postJSON(r, `{"asistencias": [{"nota": "<i>tarde</i>"}]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Asistencias []struct {
			Nota string `json:"nota"`
		} `json:"asistencias"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Asistencias, 1)
	assert.Equal(t, "tarde", body.Asistencias[0].Nota)
}

func TestSanitizeRejectsMalformedJSON(t *testing.T) {
	r := sanitizeRouter()

	w := postJSON(r, `{"nombre": `)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
