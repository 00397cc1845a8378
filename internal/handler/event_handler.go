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

type EventHandler struct {
	service service.EventService
}

func NewEventHandler(service service.EventService) *EventHandler {
	return &EventHandler{service: service}
}

// RegisterRoutes 場次列表公開給登入頁挑選，寫入僅限管理員
func (h *EventHandler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	r.GET("/api/events", h.ListEvents)
	r.GET("/api/events/:event_id", h.GetEvent)

	admin := r.Group("/api/events", auth.Middleware(jwtSecret), auth.RequireAdmin())
	{
		admin.POST("", h.CreateEvent)
		admin.PUT("/:event_id", h.UpdateEvent)
		admin.PUT("/:event_id/status", h.UpdateEventStatus)
		admin.DELETE("/:event_id", h.DeleteEvent)
	}
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	events, err := h.service.List(c)
	if err != nil {
		h.handleEventError(c, err, "ListEvents")
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	id, ok := PathInt(c, "event_id")
	if !ok {
		return
	}

	event, err := h.service.GetByID(c, id)
	if err != nil {
		h.handleEventError(c, err, "GetEvent")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req model.CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	event, err := h.service.Create(c, req)
	if err != nil {
		h.handleEventError(c, err, "CreateEvent")
		return
	}
	c.JSON(http.StatusCreated, event)
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, ok := PathInt(c, "event_id")
	if !ok {
		return
	}

	var req model.CreateEventRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	event, err := h.service.Update(c, id, req)
	if err != nil {
		h.handleEventError(c, err, "UpdateEvent")
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *EventHandler) UpdateEventStatus(c *gin.Context) {
	id, ok := PathInt(c, "event_id")
	if !ok {
		return
	}

	var req model.UpdateEventStatusRequest
	if err := BindJson(c, &req); err != nil {
		return
	}

	if err := h.service.UpdateStatus(c, id, req.Status); err != nil {
		h.handleEventError(c, err, "UpdateEventStatus")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event status updated"})
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, ok := PathInt(c, "event_id")
	if !ok {
		return
	}

	if err := h.service.Delete(c, id); err != nil {
		h.handleEventError(c, err, "DeleteEvent")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

func (h *EventHandler) handleEventError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Event not found",
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
