package handler

import (
	"errors"
	"fmt"
	"net/http"

	"booth-pos-backend/internal/auth"
	"booth-pos-backend/internal/model"
	"booth-pos-backend/internal/service"
	apperrors "booth-pos-backend/pkg/app_errors"
	"booth-pos-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(service service.OrderService) *OrderHandler {
	return &OrderHandler{service: service}
}

func (h *OrderHandler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	router := r.Group("/api/events/:event_id/orders", auth.Middleware(jwtSecret))
	{
		router.POST("", h.CreateOrder)
		router.GET("", h.ListOrders)
		router.PUT("/:order_id/status", h.UpdateOrderStatus)
	}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	eventID, ok := PathInt(c, "event_id")
	if !ok {
		return
	}

	if _, ok := RequireWriteAccess(c, eventID); !ok {
		return
	}

	var req model.CreateOrderRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	created, err := h.service.Create(c, eventID, req)
	if err != nil {
		h.handleOrderError(c, err, "CreateOrder")
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	eventID, ok := PathInt(c, "event_id")
	if !ok {
		return
	}

	if _, ok := RequireReadAccess(c, eventID); !ok {
		return
	}

	var statusFilter *model.OrderStatus
	if raw, exists := c.GetQuery("status"); exists {
		status := model.OrderStatus(raw)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid status filter",
			})
			return
		}
		statusFilter = &status
	}

	orders, err := h.service.List(c, eventID, statusFilter)
	if err != nil {
		h.handleOrderError(c, err, "ListOrders")
		return
	}

	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	eventID, ok := PathInt(c, "event_id")
	if !ok {
		return
	}

	orderID, ok := PathInt(c, "order_id")
	if !ok {
		return
	}

	if _, ok := RequireWriteAccess(c, eventID); !ok {
		return
	}

	var req model.UpdateOrderStatusRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	order, err := h.service.UpdateStatus(c, eventID, orderID, req.Status)
	if err != nil {
		h.handleOrderError(c, err, "UpdateOrderStatus")
		return
	}

	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) handleOrderError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEmptyOrder):
		log.Warn("Empty order")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Order must have items",
		})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid input")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Quantity must be positive",
		})
	case errors.Is(err, apperrors.ErrInsufficientStock):
		log.Warn("Insufficient stock")
		message := "Insufficient stock"
		var stockErr *apperrors.InsufficientStockError
		if errors.As(err, &stockErr) {
			message = fmt.Sprintf("Insufficient stock for product: %s", stockErr.ProductName)
		}
		c.JSON(http.StatusConflict, gin.H{
			"error": message,
		})
	case errors.Is(err, apperrors.ErrProductNotFound):
		log.Warn("Product not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
	case errors.Is(err, apperrors.ErrOrderNotFound):
		log.Warn("Order not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
	case errors.Is(err, apperrors.ErrInvalidOrderStatus):
		log.Warn("Invalid order status")
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid order status",
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
