package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_jwt_secret_32_chars_minimum!"

func signToken(t *testing.T, secret string, userID uint, rol string, dur time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID, "nom": "dupont", "rol": rol,
		"exp": time.Now().Add(dur).Unix(), "iat": time.Now().Unix(),
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func authRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(JWTAuth(testSecret))
	r.GET("/protected", func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID, "rol": claims.Rol})
	})
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidToken(t *testing.T) {
	w := get(authRouter(), "/protected", signToken(t, testSecret, 7, "user", time.Hour))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7,"rol":"user"}`, w.Body.String())
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	w := get(authRouter(), "/protected", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authentification requise")
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	w := get(authRouter(), "/protected", signToken(t, testSecret, 7, "user", -time.Minute))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	w := get(authRouter(), "/protected", signToken(t, "another-secret", 7, "admin", time.Hour))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_WithoutJWTAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", RequireAdmin(), func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusForbidden, get(r, "/admin", "").Code)
}

func TestJWTClaims_IsAdmin(t *testing.T) {
	var none *JWTClaims
	assert.False(t, none.IsAdmin())
	assert.False(t, (&JWTClaims{Rol: "user"}).IsAdmin())
	assert.True(t, (&JWTClaims{Rol: "admin"}).IsAdmin())
}

func TestRequireAdmin(t *testing.T) {
	r := authRouter()

	assert.Equal(t, http.StatusForbidden, get(r, "/admin", signToken(t, testSecret, 2, "user", time.Hour)).Code)
	assert.Equal(t, http.StatusOK, get(r, "/admin", signToken(t, testSecret, 1, "admin", time.Hour)).Code)
}
