// Package repository holds the in-memory user and task collections and
// keeps them persisted through the store after every mutation. The
// in-memory collections are authoritative: mutations are applied to them
// first, and a persistence failure only leaves the mirror stale, never
// the collections inconsistent. Failures are therefore logged, not
// returned.
package repository

import "github.com/Wind28111988/QLCV-DLRR/internal/models"

// UserRepository defines access to the user directory.
type UserRepository interface {
	// All returns a snapshot of every user record.
	All() []models.User

	// FindByID finds a user by ID.
	FindByID(id string) (models.User, bool)

	// FindByEmail finds a user by case-insensitive email match.
	FindByEmail(email string) (models.User, bool)

	// Update replaces the record with the same ID and persists the
	// collection. Unknown IDs are a no-op.
	Update(user models.User)

	// ReplaceAll swaps in a new user directory and persists it.
	ReplaceAll(users []models.User)

	// Save re-persists the current collection unchanged.
	Save()
}

// TaskRepository defines access to the task collection.
type TaskRepository interface {
	// All returns a snapshot of every task.
	All() []models.Task

	// FindByID finds a task by ID.
	FindByID(id string) (models.Task, bool)

	// Create prepends a new task and persists the collection.
	Create(task models.Task)

	// Update replaces the task with the same ID and persists the
	// collection. Unknown IDs are a no-op.
	Update(task models.Task)

	// Delete permanently removes a task and persists the collection.
	// Unknown IDs are a no-op.
	Delete(id string)
}

// SessionRepository persists the current-actor record so a restart can
// resume the session.
type SessionRepository interface {
	// Current returns the persisted session user, if any.
	Current() (models.User, bool)

	// SetCurrent persists the session user.
	SetCurrent(user models.User)

	// Clear removes the persisted session entry entirely.
	Clear()
}
