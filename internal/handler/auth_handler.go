package handler

import (
	"errors"
	"net/http"

	"booth-pos-backend/config"
	"booth-pos-backend/internal/auth"
	"booth-pos-backend/internal/model"
	"booth-pos-backend/internal/service"
	apperrors "booth-pos-backend/pkg/app_errors"
	"booth-pos-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service service.AuthService
	cfg     config.AuthConfig
}

func NewAuthHandler(service service.AuthService, cfg config.AuthConfig) *AuthHandler {
	return &AuthHandler{
		service: service,
		cfg:     cfg,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/auth")
	{
		router.POST("/login", h.Login)
		router.POST("/logout", h.Logout)
		router.GET("/is-default-admin-password", h.IsDefaultAdminPassword)

		admin := router.Group("", auth.Middleware(h.cfg.JWTSecret), auth.RequireAdmin())
		{
			admin.PUT("/admin-password", h.UpdateAdminPassword)
			admin.PUT("/vendor-password", h.UpdateVendorPassword)
		}
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	resp, err := h.service.Login(c, req)
	if err != nil {
		h.handleAuthError(c, err, "Login")
		return
	}

	// Token 同時放進 HttpOnly cookie，前端可二擇一
	maxAge := h.cfg.TokenTTLHours * 3600
	c.SetCookie(auth.TokenCookie, resp.Token, maxAge, "/", "", false, true)

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(auth.TokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (h *AuthHandler) IsDefaultAdminPassword(c *gin.Context) {
	isDefault, err := h.service.IsDefaultAdminPassword(c)
	if err != nil {
		h.handleAuthError(c, err, "IsDefaultAdminPassword")
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_default": isDefault})
}

func (h *AuthHandler) UpdateAdminPassword(c *gin.Context) {
	var req model.UpdatePasswordRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	if err := h.service.UpdateAdminPassword(c, req.OldPassword, req.NewPassword); err != nil {
		h.handleAuthError(c, err, "UpdateAdminPassword")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func (h *AuthHandler) UpdateVendorPassword(c *gin.Context) {
	var req model.UpdateVendorPasswordRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	if err := h.service.UpdateVendorDefaultPassword(c, req.NewPassword); err != nil {
		h.handleAuthError(c, err, "UpdateVendorPassword")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrWrongCredentials):
		log.Warn("Wrong credentials")
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid credentials",
		})
	case errors.Is(err, apperrors.ErrStorage):
		log.Error("Storage error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Temporary storage error, please retry",
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
