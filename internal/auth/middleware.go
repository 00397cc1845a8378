package auth

import (
	"net/http"
	"strings"

	"booth-pos-backend/internal/model"

	"github.com/gin-gonic/gin"
)

const (
	claimsContextKey = "auth_claims"
	// TokenCookie 與前端共用的 cookie 名稱
	TokenCookie = "access_token_cookie"
)

// Middleware extracts the bearer token (header first, cookie as fallback),
// verifies it and stores the claims on the request context. Missing or
// invalid tokens are 401; scope checks further down return 403.
func Middleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if header := c.GetHeader("Authorization"); header != "" {
			token = strings.TrimPrefix(header, "Bearer ")
		}
		if token == "" {
			token, _ = c.Cookie(TokenCookie)
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing credentials",
			})
			return
		}

		claims, err := ParseToken(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// ClaimsFromContext returns the verified claims stored by Middleware.
func ClaimsFromContext(c *gin.Context) (model.Claims, bool) {
	value, ok := c.Get(claimsContextKey)
	if !ok {
		return model.Claims{}, false
	}
	claims, ok := value.(model.Claims)
	return claims, ok
}

// RequireAdmin sits behind Middleware on admin-only routes.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := ClaimsFromContext(c)
		if !ok || claims.Role != model.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "Access denied",
			})
			return
		}
		c.Next()
	}
}
