package middleware

import (
	"net/http"
	"strings"

	"prodplan/internal/apierror"
	"prodplan/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const (
	ClaimsKey = "claims"
)

// JWTClaims are the claims issued at login: the account id in its own
// table (admins or users), its login name and its role.
type JWTClaims struct {
	UserID uint   `json:"user_id"`
	Nom    string `json:"nom"`
	Rol    string `json:"rol"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token on every protected route.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Authentification requise"))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &JWTClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Token invalide ou expiré"))
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// IsAdmin reports whether the token may create, edit and delete plans.
func (c *JWTClaims) IsAdmin() bool { return c != nil && c.Rol == model.RoleAdmin }

// RequireAdmin lets only planning administrators through. Chefs secteur
// (role user) keep read access through JWTAuth alone.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if !claims.IsAdmin() {
			ev := log.Warn().
				Str("request_id", c.GetString(RequestIDKey)).
				Str("method", c.Request.Method).
				Str("path", c.FullPath())
			if claims != nil {
				ev = ev.Uint("user_id", claims.UserID).Str("rol", claims.Rol)
			}
			ev.Msg("write refused to non-admin")
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("Action réservée aux administrateurs de la planification"))
			return
		}
		c.Next()
	}
}

// GetClaims returns the claims set by JWTAuth, nil on an unauthenticated route.
func GetClaims(c *gin.Context) *JWTClaims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*JWTClaims)
	return claims
}
