package models

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "TODO"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
)

type TaskComplexity string

const (
	TaskComplexityMedium   TaskComplexity = "MEDIUM"
	TaskComplexityHard     TaskComplexity = "HARD"
	TaskComplexityVeryHard TaskComplexity = "VERY_HARD"
)

// Task is a unit of work. The JSON tags define the persisted layout of
// the tm_tasks collection. Timestamps are epoch milliseconds.
type Task struct {
	ID      string `json:"id"`
	UserID  string `json:"userId"`
	Content string `json:"content"`
	// StartTime is set at creation and reset when the task moves from
	// TODO to IN_PROGRESS.
	StartTime int64 `json:"startTime"`
	// CompletedTime is stamped once, the first time the task enters
	// COMPLETED, and is never cleared afterwards.
	CompletedTime   *int64         `json:"completedTime,omitempty"`
	Status          TaskStatus     `json:"status"`
	Complexity      TaskComplexity `json:"complexity"`
	LeadID          string         `json:"leadId"`
	CollaboratorIDs []string       `json:"collaboratorIds"`
	// Unit is the assigner's unit at creation time, an immutable
	// provenance snapshot.
	Unit string `json:"unit"`
}

// InvolvesUser reports whether the user created, leads, or collaborates
// on the task. This is the visibility rule for task listings.
func (t Task) InvolvesUser(userID string) bool {
	if t.UserID == userID || t.LeadID == userID {
		return true
	}
	for _, id := range t.CollaboratorIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// DashboardStats aggregates task counts for the overview screen.
type DashboardStats struct {
	TotalTasks      int            `json:"totalTasks"`
	CompletedTasks  int            `json:"completedTasks"`
	InProgressTasks int            `json:"inProgressTasks"`
	TasksByUnit     map[string]int `json:"tasksByUnit"`
}
