package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apierrors "github.com/Wind28111988/QLCV-DLRR/internal/errors"
	"github.com/Wind28111988/QLCV-DLRR/internal/middleware"
	"github.com/Wind28111988/QLCV-DLRR/internal/models"
	"github.com/Wind28111988/QLCV-DLRR/internal/services"
)

// TaskHandler coordinates task lifecycle HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// ListTasks returns the tasks visible to the current user: created by,
// led by, or collaborated on.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": h.taskService.VisibleTasks(user.ID),
	})
}

// CreateTask creates a self-assigned task for the current user.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTaskRequest struct {
		Content    string                `json:"content" binding:"required"`
		Complexity models.TaskComplexity `json:"complexity" binding:"required,oneof=MEDIUM HARD VERY_HARD"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task := h.taskService.Create(services.CreateTaskInput{
		Actor:      user,
		Content:    req.Content,
		Complexity: req.Complexity,
	})

	c.JSON(http.StatusCreated, task)
}

// UpdateStatus applies a status transition to a task.
func (h *TaskHandler) UpdateStatus(c *gin.Context) {
	type UpdateStatusRequest struct {
		Status models.TaskStatus `json:"status" binding:"required,oneof=TODO IN_PROGRESS COMPLETED"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	h.taskService.UpdateStatus(c.Param("id"), req.Status)
	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}

// UpdateTask applies a partial edit to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	type UpdateTaskRequest struct {
		Content         *string                `json:"content"`
		Complexity      *models.TaskComplexity `json:"complexity"`
		Status          *models.TaskStatus     `json:"status"`
		LeadID          *string                `json:"leadId"`
		CollaboratorIDs *[]string              `json:"collaboratorIds"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, found := h.taskService.Update(c.Param("id"), services.UpdateTaskInput{
		Content:         req.Content,
		Complexity:      req.Complexity,
		Status:          req.Status,
		LeadID:          req.LeadID,
		CollaboratorIDs: req.CollaboratorIDs,
	})
	if !found {
		apierrors.NotFound(c, "Task not found")
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask permanently removes a task. The confirmation prompt is the
// client's responsibility; the operation itself is unconditional.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	h.taskService.Delete(c.Param("id"))
	c.Status(http.StatusNoContent)
}
