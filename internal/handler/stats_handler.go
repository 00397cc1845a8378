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

type StatsHandler struct {
	service service.StatsService
}

func NewStatsHandler(service service.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

func (h *StatsHandler) RegisterRoutes(r *gin.Engine, jwtSecret string) {
	router := r.Group("/api/events/:event_id", auth.Middleware(jwtSecret))
	{
		router.GET("/stats", h.GetEventStats)
		router.GET("/sales-summary", h.GetSalesSummary)
	}
}

func (h *StatsHandler) GetEventStats(c *gin.Context) {
	eventID, ok := PathInt(c, "event_id")
	if !ok {
		return
	}

	if _, ok := RequireReadAccess(c, eventID); !ok {
		return
	}

	stats, err := h.service.GetEventStats(c, eventID)
	if err != nil {
		h.handleStatsError(c, err, "GetEventStats")
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *StatsHandler) GetSalesSummary(c *gin.Context) {
	eventID, ok := PathInt(c, "event_id")
	if !ok {
		return
	}

	if _, ok := RequireReadAccess(c, eventID); !ok {
		return
	}

	var filter model.SalesSummaryFilter
	if err := BindQuery(c, &filter); err != nil {
		return
	}

	summary, err := h.service.GetSalesSummary(c, eventID, filter)
	if err != nil {
		h.handleStatsError(c, err, "GetSalesSummary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *StatsHandler) handleStatsError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrEventNotFound):
		log.Warn("Event not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Event not found",
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
