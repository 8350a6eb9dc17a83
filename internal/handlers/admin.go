package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Wind28111988/QLCV-DLRR/internal/dto"
	apierrors "github.com/Wind28111988/QLCV-DLRR/internal/errors"
	"github.com/Wind28111988/QLCV-DLRR/internal/models"
	"github.com/Wind28111988/QLCV-DLRR/internal/repository"
	"github.com/Wind28111988/QLCV-DLRR/internal/services"
	"github.com/Wind28111988/QLCV-DLRR/internal/utils"
)

// AdminHandler coordinates the search/reporting and data import
// endpoints. All routes behind it require the administrator sentinel.
type AdminHandler struct {
	authService     *services.AuthService
	taskService     *services.TaskService
	users           repository.UserRepository
	defaultPassword string
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(authService *services.AuthService, taskService *services.TaskService, users repository.UserRepository, defaultPassword string) *AdminHandler {
	return &AdminHandler{
		authService:     authService,
		taskService:     taskService,
		users:           users,
		defaultPassword: defaultPassword,
	}
}

// ListUsers returns the whole directory for the search view.
func (h *AdminHandler) ListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"users": dto.ToUserDTOs(h.users.All()),
	})
}

// taskReportRow is a task with the rendered elapsed duration the report
// screen shows next to it.
type taskReportRow struct {
	models.Task
	Duration string `json:"duration"`
}

// UserTasks returns the report rows for one user's visible tasks.
func (h *AdminHandler) UserTasks(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		apierrors.BadRequest(c, "user_id is required")
		return
	}
	if _, ok := h.users.FindByID(userID); !ok {
		apierrors.NotFound(c, "User not found")
		return
	}

	now := time.Now().UnixMilli()
	tasks := h.taskService.VisibleTasks(userID)
	rows := make([]taskReportRow, len(tasks))
	for i, t := range tasks {
		end := now
		if t.CompletedTime != nil {
			end = *t.CompletedTime
		}
		rows[i] = taskReportRow{Task: t, Duration: utils.FormatDuration(end - t.StartTime)}
	}

	c.JSON(http.StatusOK, gin.H{"tasks": rows})
}

// ImportUsers replaces the user directory with the uploaded records.
func (h *AdminHandler) ImportUsers(c *gin.Context) {
	type ImportRequest struct {
		Users []models.User `json:"users" binding:"required"`
	}

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	imported := h.authService.ImportUsers(req.Users, h.defaultPassword)

	c.JSON(http.StatusOK, gin.H{
		"imported": len(imported),
	})
}
