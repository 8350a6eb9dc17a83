package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wind28111988/QLCV-DLRR/internal/services"
)

// DashboardHandler serves the overview aggregates.
type DashboardHandler struct {
	taskService *services.TaskService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(taskService *services.TaskService) *DashboardHandler {
	return &DashboardHandler{taskService: taskService}
}

// GetStats returns task counts across the whole collection.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.taskService.Stats())
}
