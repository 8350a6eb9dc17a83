package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Wind28111988/QLCV-DLRR/internal/models"
)

var actor = models.User{ID: "u1", Name: "An", Unit: "A", DelegateLevel: "X1"}

func TestCreateDefaults(t *testing.T) {
	env := setupTestEnv(t)

	before := time.Now().UnixMilli()
	task := env.tasks.Create(CreateTaskInput{
		Actor:      actor,
		Content:    "Draft report",
		Complexity: models.TaskComplexityMedium,
	})

	require.NotEmpty(t, task.ID)
	require.Equal(t, "u1", task.UserID)
	require.Equal(t, "Draft report", task.Content)
	require.Equal(t, models.TaskStatusTodo, task.Status)
	require.Equal(t, "u1", task.LeadID, "lead defaults to the creator")
	require.Equal(t, []string{}, task.CollaboratorIDs)
	require.Nil(t, task.CompletedTime)
	require.Equal(t, "A", task.Unit)
	require.GreaterOrEqual(t, task.StartTime, before)
}

func TestCreatePreservesExplicitLead(t *testing.T) {
	env := setupTestEnv(t)

	task := env.tasks.Create(CreateTaskInput{
		Actor:           actor,
		Content:         "Delegated work",
		Complexity:      models.TaskComplexityHard,
		LeadID:          "u9",
		CollaboratorIDs: []string{"u2", "u3"},
	})

	require.Equal(t, "u9", task.LeadID)
	require.Equal(t, []string{"u2", "u3"}, task.CollaboratorIDs)
}

func TestCreateGeneratesUniqueIDs(t *testing.T) {
	env := setupTestEnv(t)

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		task := env.tasks.Create(CreateTaskInput{Actor: actor, Content: "x"})
		_, dup := seen[task.ID]
		require.False(t, dup)
		seen[task.ID] = struct{}{}
	}
}

func TestStartingWorkRestartsClock(t *testing.T) {
	env := setupTestEnv(t)

	task := env.tasks.Create(CreateTaskInput{Actor: actor, Content: "queued work"})

	// Backdate the queued task so the clock reset is observable.
	backdated := task.StartTime - 60_000
	stored, _ := env.tasks.tasks.FindByID(task.ID)
	stored.StartTime = backdated
	env.tasks.tasks.Update(stored)

	env.tasks.UpdateStatus(task.ID, models.TaskStatusInProgress)

	updated, ok := env.tasks.tasks.FindByID(task.ID)
	require.True(t, ok)
	require.Equal(t, models.TaskStatusInProgress, updated.Status)
	require.Greater(t, updated.StartTime, backdated, "TODO -> IN_PROGRESS restarts the clock")
}

func TestCompletingFromInProgressKeepsStartTime(t *testing.T) {
	env := setupTestEnv(t)

	task := env.tasks.Create(CreateTaskInput{Actor: actor, Content: "work"})
	env.tasks.UpdateStatus(task.ID, models.TaskStatusInProgress)

	started, _ := env.tasks.tasks.FindByID(task.ID)
	env.tasks.UpdateStatus(task.ID, models.TaskStatusCompleted)

	completed, _ := env.tasks.tasks.FindByID(task.ID)
	require.Equal(t, models.TaskStatusCompleted, completed.Status)
	require.Equal(t, started.StartTime, completed.StartTime)
	require.NotNil(t, completed.CompletedTime)
}

func TestDirectCompletionFromTodoIsAllowed(t *testing.T) {
	env := setupTestEnv(t)

	task := env.tasks.Create(CreateTaskInput{Actor: actor, Content: "quick win"})
	env.tasks.UpdateStatus(task.ID, models.TaskStatusCompleted)

	completed, _ := env.tasks.tasks.FindByID(task.ID)
	require.Equal(t, models.TaskStatusCompleted, completed.Status)
	require.NotNil(t, completed.CompletedTime)
}

func TestCompletionTimeIsStampedOnce(t *testing.T) {
	env := setupTestEnv(t)

	task := env.tasks.Create(CreateTaskInput{Actor: actor, Content: "work"})
	env.tasks.UpdateStatus(task.ID, models.TaskStatusCompleted)

	first, _ := env.tasks.tasks.FindByID(task.ID)
	require.NotNil(t, first.CompletedTime)

	// A second fire must change neither the status nor the stamp.
	env.tasks.UpdateStatus(task.ID, models.TaskStatusCompleted)
	env.tasks.UpdateStatus(task.ID, models.TaskStatusTodo)

	second, _ := env.tasks.tasks.FindByID(task.ID)
	require.Equal(t, models.TaskStatusCompleted, second.Status, "no transition leaves COMPLETED")
	require.Equal(t, first.CompletedTime, second.CompletedTime)
}

func TestUpdateStatusUnknownIDIsNoOp(t *testing.T) {
	env := setupTestEnv(t)
	env.tasks.UpdateStatus("ghost", models.TaskStatusCompleted)
	require.Empty(t, env.tasks.VisibleTasks("u1"))
}

func TestUpdateMergesOnlyProvidedFields(t *testing.T) {
	env := setupTestEnv(t)

	task := env.tasks.Create(CreateTaskInput{
		Actor:      actor,
		Content:    "original",
		Complexity: models.TaskComplexityMedium,
	})

	newContent := "edited"
	newComplexity := models.TaskComplexityVeryHard
	updated, ok := env.tasks.Update(task.ID, UpdateTaskInput{
		Content:    &newContent,
		Complexity: &newComplexity,
	})
	require.True(t, ok)
	require.Equal(t, "edited", updated.Content)
	require.Equal(t, models.TaskComplexityVeryHard, updated.Complexity)
	require.Equal(t, task.LeadID, updated.LeadID)
	require.Equal(t, task.StartTime, updated.StartTime)

	_, ok = env.tasks.Update("ghost", UpdateTaskInput{Content: &newContent})
	require.False(t, ok)
}

func TestVisibleTasksThreeWayOr(t *testing.T) {
	env := setupTestEnv(t)

	created := env.tasks.Create(CreateTaskInput{Actor: actor, Content: "mine", LeadID: "other"})
	lead := env.tasks.Create(CreateTaskInput{
		Actor:   models.User{ID: "boss", Unit: "A"},
		Content: "delegated to u1",
		LeadID:  "u1",
	})
	collab := env.tasks.Create(CreateTaskInput{
		Actor:           models.User{ID: "boss", Unit: "A"},
		Content:         "u1 assists",
		LeadID:          "other",
		CollaboratorIDs: []string{"x", "u1"},
	})
	env.tasks.Create(CreateTaskInput{
		Actor:   models.User{ID: "boss", Unit: "A"},
		Content: "unrelated",
		LeadID:  "other",
	})

	visible := env.tasks.VisibleTasks("u1")
	ids := make([]string, 0, len(visible))
	for _, t := range visible {
		ids = append(ids, t.ID)
	}
	require.ElementsMatch(t, []string{created.ID, lead.ID, collab.ID}, ids)
}

func TestDeleteRemovesFromEveryVisibleSet(t *testing.T) {
	env := setupTestEnv(t)

	task := env.tasks.Create(CreateTaskInput{
		Actor:           actor,
		Content:         "shared",
		LeadID:          "u2",
		CollaboratorIDs: []string{"u3"},
	})

	env.tasks.Delete(task.ID)
	env.tasks.Delete(task.ID) // repeated delete is a no-op

	for _, userID := range []string{"u1", "u2", "u3"} {
		require.Empty(t, env.tasks.VisibleTasks(userID))
	}
}

func TestStats(t *testing.T) {
	env := setupTestEnv(t)

	a := env.tasks.Create(CreateTaskInput{Actor: actor, Content: "one"})
	b := env.tasks.Create(CreateTaskInput{Actor: actor, Content: "two"})
	env.tasks.Create(CreateTaskInput{Actor: models.User{ID: "u9", Unit: "B"}, Content: "three"})

	env.tasks.UpdateStatus(a.ID, models.TaskStatusCompleted)
	env.tasks.UpdateStatus(b.ID, models.TaskStatusInProgress)

	stats := env.tasks.Stats()
	require.Equal(t, 3, stats.TotalTasks)
	require.Equal(t, 1, stats.CompletedTasks)
	require.Equal(t, 1, stats.InProgressTasks)
	require.Equal(t, map[string]int{"A": 2, "B": 1}, stats.TasksByUnit)
}
