package repository

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Wind28111988/QLCV-DLRR/internal/constants"
	"github.com/Wind28111988/QLCV-DLRR/internal/models"
	"github.com/Wind28111988/QLCV-DLRR/internal/store"
)

// KVTaskRepository is a TaskRepository backed by the key-value store.
type KVTaskRepository struct {
	mu    sync.RWMutex
	tasks []models.Task
	store store.Store
	log   *slog.Logger
}

// NewTaskRepository loads the task collection from the store. A missing
// or unreadable collection starts empty.
func NewTaskRepository(ctx context.Context, st store.Store, log *slog.Logger) TaskRepository {
	r := &KVTaskRepository{store: st, log: log}

	found, err := st.Get(ctx, constants.StorageKeyTasks, &r.tasks)
	if err != nil {
		log.Error("failed to load task collection", "error", err)
	}
	if !found || r.tasks == nil {
		r.tasks = []models.Task{}
	}
	return r
}

// All returns a snapshot of every task.
func (r *KVTaskRepository) All() []models.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tasks := make([]models.Task, len(r.tasks))
	copy(tasks, r.tasks)
	return tasks
}

// FindByID finds a task by ID.
func (r *KVTaskRepository) FindByID(id string) (models.Task, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, t := range r.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return models.Task{}, false
}

// Create prepends a new task, newest first, and persists the collection.
func (r *KVTaskRepository) Create(task models.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = append([]models.Task{task}, r.tasks...)
	r.persist()
}

// Update replaces the task with the same ID and persists the collection.
func (r *KVTaskRepository) Update(task models.Task) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.tasks {
		if t.ID == task.ID {
			r.tasks[i] = task
			r.persist()
			return
		}
	}
}

// Delete permanently removes a task and persists the collection.
func (r *KVTaskRepository) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, t := range r.tasks {
		if t.ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			r.persist()
			return
		}
	}
}

func (r *KVTaskRepository) persist() {
	if err := r.store.Set(context.Background(), constants.StorageKeyTasks, r.tasks); err != nil {
		r.log.Error("failed to persist task collection", "error", err)
	}
}
