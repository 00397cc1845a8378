package handler

import (
	"net/http"
	"strconv"

	"booth-pos-backend/internal/auth"
	"booth-pos-backend/internal/model"

	"github.com/gin-gonic/gin"
)

func BindJson(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return err
	}
	return nil
}

// PathInt parses an integer path parameter; writes the 400 itself.
func PathInt(c *gin.Context, name string) (int, bool) {
	value, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid " + name,
		})
		return 0, false
	}
	return value, true
}

// RequireReadAccess rejects requests whose claims do not cover the event.
// Scope failures are 403, distinct from a missing resource's 404.
func RequireReadAccess(c *gin.Context, eventID int) (model.Claims, bool) {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Missing credentials",
		})
		return model.Claims{}, false
	}

	if !auth.CanRead(claims, eventID) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied",
		})
		return model.Claims{}, false
	}

	return claims, true
}

func RequireWriteAccess(c *gin.Context, eventID int) (model.Claims, bool) {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Missing credentials",
		})
		return model.Claims{}, false
	}

	if !auth.CanWrite(claims, eventID) {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Access denied",
		})
		return model.Claims{}, false
	}

	return claims, true
}
