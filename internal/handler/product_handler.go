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

type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(service service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	router := r.Group("/api/events/:event_id/products", auth.Middleware(jwtSecret))
	{
		router.GET("", h.ListProducts)
		router.POST("", auth.RequireAdmin(), h.AddProduct)
	}

	admin := r.Group("/api/products", auth.Middleware(jwtSecret), auth.RequireAdmin())
	{
		admin.PUT("/:product_id", h.UpdateProduct)
		admin.DELETE("/:product_id", h.DeleteProduct)
	}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	eventID, ok := PathInt(c, "event_id")
	if !ok {
		return
	}

	if _, ok := RequireReadAccess(c, eventID); !ok {
		return
	}

	products, err := h.service.ListByEvent(c, eventID)
	if err != nil {
		h.handleProductError(c, err, "ListProducts")
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) AddProduct(c *gin.Context) {
	eventID, ok := PathInt(c, "event_id")
	if !ok {
		return
	}

	var req model.AddProductToEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	product, err := h.service.AddToEvent(c, eventID, req)
	if err != nil {
		h.handleProductError(c, err, "AddProduct")
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := PathInt(c, "product_id")
	if !ok {
		return
	}

	var req model.UpdateProductRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	product, err := h.service.Update(c, id, model.UpdateProductParams{
		Price:        req.Price,
		InitialStock: req.InitialStock,
	})
	if err != nil {
		h.handleProductError(c, err, "UpdateProduct")
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := PathInt(c, "product_id")
	if !ok {
		return
	}

	if err := h.service.Delete(c, id); err != nil {
		h.handleProductError(c, err, "DeleteProduct")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func (h *ProductHandler) handleProductError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Event not found",
		})
	case errors.Is(err, apperrors.ErrProductNotFound):
		log.Warn("Product not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
	case errors.Is(err, apperrors.ErrMasterProductNotFound):
		log.Warn("Master product not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Master product not found",
		})
	case errors.Is(err, apperrors.ErrStockBelowSold):
		log.Warn("Stock below sold")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Initial stock cannot be lower than quantity already sold",
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
