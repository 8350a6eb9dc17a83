package repository

import (
	"context"
	"log/slog"

	"github.com/Wind28111988/QLCV-DLRR/internal/constants"
	"github.com/Wind28111988/QLCV-DLRR/internal/models"
	"github.com/Wind28111988/QLCV-DLRR/internal/store"
)

// KVSessionRepository persists the current-actor record under its own
// storage key. Unlike the collections it is read through the store on
// every call, so a session written by another device is picked up.
type KVSessionRepository struct {
	store store.Store
	log   *slog.Logger
}

// NewSessionRepository creates a SessionRepository over the store.
func NewSessionRepository(st store.Store, log *slog.Logger) SessionRepository {
	return &KVSessionRepository{store: st, log: log}
}

// Current returns the persisted session user, if any.
func (r *KVSessionRepository) Current() (models.User, bool) {
	var user models.User
	found, err := r.store.Get(context.Background(), constants.StorageKeyCurrentUser, &user)
	if err != nil {
		r.log.Error("failed to load session record", "error", err)
		return models.User{}, false
	}
	return user, found
}

// SetCurrent persists the session user.
func (r *KVSessionRepository) SetCurrent(user models.User) {
	if err := r.store.Set(context.Background(), constants.StorageKeyCurrentUser, user); err != nil {
		r.log.Error("failed to persist session record", "error", err)
	}
}

// Clear removes the persisted session entry entirely.
func (r *KVSessionRepository) Clear() {
	if err := r.store.Delete(context.Background(), constants.StorageKeyCurrentUser); err != nil {
		r.log.Error("failed to clear session record", "error", err)
	}
}
