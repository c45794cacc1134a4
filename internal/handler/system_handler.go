package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/studyplan-dev/study-planner-api/internal/models"
	"github.com/studyplan-dev/study-planner-api/pkg/response"
)

type systemStats interface {
	Snapshot() models.SystemMetrics
}

// SystemHandler exposes aggregate runtime statistics.
type SystemHandler struct {
	stats systemStats
}

// NewSystemHandler constructs a system handler.
func NewSystemHandler(stats systemStats) *SystemHandler {
	return &SystemHandler{stats: stats}
}

// Stats godoc
// @Summary Aggregate runtime statistics
// @Tags System
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /system/stats [get]
func (h *SystemHandler) Stats(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.stats.Snapshot(), nil)
}
