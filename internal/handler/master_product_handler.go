package handler

import (
	"errors"
	"net/http"

	"booth-pos-backend/internal/auth"
	"booth-pos-backend/internal/model"
	"booth-pos-backend/internal/service"
	apperrors "booth-pos-backend/pkg/app_errors"
	"booth-pos-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MasterProductHandler struct {
	service service.MasterProductService
}

func NewMasterProductHandler(service service.MasterProductService) *MasterProductHandler {
	return &MasterProductHandler{service: service}
}

// RegisterRoutes 全域商品目錄僅限管理員維護
func (h *MasterProductHandler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	router := r.Group("/api/master-products", auth.Middleware(jwtSecret), auth.RequireAdmin())
	{
		router.GET("", h.ListMasterProducts)
		router.GET("/:master_product_id", h.GetMasterProduct)
		router.POST("", h.CreateMasterProduct)
		router.PUT("/:master_product_id", h.UpdateMasterProduct)
		router.PUT("/:master_product_id/active", h.SetMasterProductActive)
	}
}

func (h *MasterProductHandler) ListMasterProducts(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"

	products, err := h.service.List(c, includeInactive)
	if err != nil {
		h.handleMasterProductError(c, err, "ListMasterProducts")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *MasterProductHandler) GetMasterProduct(c *gin.Context) {
	id, ok := PathInt(c, "master_product_id")
	if !ok {
		return
	}

	product, err := h.service.GetByID(c, id)
	if err != nil {
		h.handleMasterProductError(c, err, "GetMasterProduct")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *MasterProductHandler) CreateMasterProduct(c *gin.Context) {
	var req model.CreateMasterProductRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	product, err := h.service.Create(c, req)
	if err != nil {
		h.handleMasterProductError(c, err, "CreateMasterProduct")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *MasterProductHandler) UpdateMasterProduct(c *gin.Context) {
	id, ok := PathInt(c, "master_product_id")
	if !ok {
		return
	}

	var req model.UpdateMasterProductRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	product, err := h.service.Update(c, id, model.UpdateMasterProductParams{
		Name:         req.Name,
		DefaultPrice: req.DefaultPrice,
		Category:     req.Category,
	})
	if err != nil {
		h.handleMasterProductError(c, err, "UpdateMasterProduct")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *MasterProductHandler) SetMasterProductActive(c *gin.Context) {
	id, ok := PathInt(c, "master_product_id")
	if !ok {
		return
	}

	var req struct {
		Active *bool `json:"active" binding:"required"`
	}
	if err := BindJson(c, &req); err != nil {
		return
	}

	if err := h.service.SetActive(c, id, *req.Active); err != nil {
		h.handleMasterProductError(c, err, "SetMasterProductActive")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Master product updated"})
}

func (h *MasterProductHandler) handleMasterProductError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrMasterProductNotFound):
		log.Warn("Master product not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Master product not found",
		})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid input",
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
