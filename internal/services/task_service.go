package services

import (
	"time"

	"github.com/Wind28111988/QLCV-DLRR/internal/models"
	"github.com/Wind28111988/QLCV-DLRR/internal/repository"
	"github.com/Wind28111988/QLCV-DLRR/internal/utils"
)

// TaskService owns the task lifecycle: creation, the status state
// machine with its timestamp bookkeeping, permissive edits, deletion,
// and visibility.
type TaskService struct {
	tasks repository.TaskRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks repository.TaskRepository) *TaskService {
	return &TaskService{tasks: tasks}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	Actor      models.User
	Content    string
	Complexity models.TaskComplexity
	// LeadID defaults to the actor when empty.
	LeadID          string
	CollaboratorIDs []string
}

// Create creates a task in TODO state with the clock started now. The
// content is stored exactly as given; non-emptiness is the caller's
// responsibility.
func (s *TaskService) Create(input CreateTaskInput) models.Task {
	leadID := input.LeadID
	if leadID == "" {
		leadID = input.Actor.ID
	}
	collaborators := input.CollaboratorIDs
	if collaborators == nil {
		collaborators = []string{}
	}

	task := models.Task{
		ID:              utils.NewTaskID(),
		UserID:          input.Actor.ID,
		Content:         input.Content,
		StartTime:       time.Now().UnixMilli(),
		Status:          models.TaskStatusTodo,
		Complexity:      input.Complexity,
		LeadID:          leadID,
		CollaboratorIDs: collaborators,
		Unit:            input.Actor.Unit,
	}

	s.tasks.Create(task)
	return task
}

// UpdateStatus applies a status transition. Unknown task IDs are a
// silent no-op. A completed task exposes no further transitions. Moving
// from TODO to IN_PROGRESS restarts the clock; entering COMPLETED stamps
// the completion time once and never overwrites it.
func (s *TaskService) UpdateStatus(taskID string, status models.TaskStatus) {
	task, ok := s.tasks.FindByID(taskID)
	if !ok || task.Status == models.TaskStatusCompleted {
		return
	}

	now := time.Now().UnixMilli()
	if status == models.TaskStatusInProgress && task.Status == models.TaskStatusTodo {
		task.StartTime = now
	}
	if status == models.TaskStatusCompleted && task.CompletedTime == nil {
		task.CompletedTime = &now
	}

	task.Status = status
	s.tasks.Update(task)
}

// UpdateTaskInput represents a partial edit. Nil fields are left
// untouched. No field-level validation is applied; this is a permissive
// edit capability and the status field bypasses the transition rules.
type UpdateTaskInput struct {
	Content         *string
	Complexity      *models.TaskComplexity
	Status          *models.TaskStatus
	LeadID          *string
	CollaboratorIDs *[]string
}

// Update shallow-merges the given fields into the task. Unknown task IDs
// are a silent no-op.
func (s *TaskService) Update(taskID string, input UpdateTaskInput) (models.Task, bool) {
	task, ok := s.tasks.FindByID(taskID)
	if !ok {
		return models.Task{}, false
	}

	if input.Content != nil {
		task.Content = *input.Content
	}
	if input.Complexity != nil {
		task.Complexity = *input.Complexity
	}
	if input.Status != nil {
		task.Status = *input.Status
	}
	if input.LeadID != nil {
		task.LeadID = *input.LeadID
	}
	if input.CollaboratorIDs != nil {
		task.CollaboratorIDs = *input.CollaboratorIDs
	}

	s.tasks.Update(task)
	return task, true
}

// Delete permanently removes a task. Unknown task IDs are a silent
// no-op. Confirmation prompts belong to the caller.
func (s *TaskService) Delete(taskID string) {
	s.tasks.Delete(taskID)
}

// VisibleTasks returns the tasks a user may see: those they created,
// lead, or collaborate on.
func (s *TaskService) VisibleTasks(userID string) []models.Task {
	var visible []models.Task
	for _, t := range s.tasks.All() {
		if t.InvolvesUser(userID) {
			visible = append(visible, t)
		}
	}
	if visible == nil {
		visible = []models.Task{}
	}
	return visible
}

// Stats aggregates the whole task collection for the overview screen.
func (s *TaskService) Stats() models.DashboardStats {
	stats := models.DashboardStats{TasksByUnit: map[string]int{}}

	for _, t := range s.tasks.All() {
		stats.TotalTasks++
		switch t.Status {
		case models.TaskStatusCompleted:
			stats.CompletedTasks++
		case models.TaskStatusInProgress:
			stats.InProgressTasks++
		}
		stats.TasksByUnit[t.Unit]++
	}
	return stats
}
