package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/adflow-io/adflow-go/internal/config"
	"github.com/adflow-io/adflow-go/pkg/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func setupJWT(t *testing.T) {
	t.Helper()
	config.JwtSecret = "test-secret"
	config.Issuer = "adflow-test"
	Init()
}

func TestGenerateAndParseToken(t *testing.T) {
	setupJWT(t)

	token, err := GenerateToken(7, "Alice", "operator", time.Hour)
	assert.NoError(t, err)

	claims, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.ProfileID)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "operator", claims.Role)
	assert.Equal(t, "adflow-test", claims.Issuer)
}

func TestParseToken_Expired(t *testing.T) {
	setupJWT(t)

	token, err := GenerateToken(7, "Alice", "operator", -time.Minute)
	assert.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestJWTAuthMiddleware_BearerHeader(t *testing.T) {
	setupJWT(t)
	gin.SetMode(gin.TestMode)

	token, _ := GenerateToken(7, "Alice", "admin", time.Hour)

	r := gin.New()
	r.GET("/probe", JWTAuthMiddleware(), func(c *gin.Context) {
		claims := c.MustGet("claims").(*types.Claims)
		c.JSON(http.StatusOK, gin.H{"profile_id": claims.ProfileID, "role": claims.Role})
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestJWTAuthMiddleware_Cookie(t *testing.T) {
	setupJWT(t)
	gin.SetMode(gin.TestMode)

	token, _ := GenerateToken(7, "Alice", "client", time.Hour)

	r := gin.New()
	r.GET("/probe", JWTAuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuthMiddleware_MissingToken(t *testing.T) {
	setupJWT(t)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/probe", JWTAuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthMiddleware_MalformedHeader(t *testing.T) {
	setupJWT(t)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/probe", JWTAuthMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
