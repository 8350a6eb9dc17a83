package repository

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/Wind28111988/QLCV-DLRR/internal/constants"
	"github.com/Wind28111988/QLCV-DLRR/internal/models"
	"github.com/Wind28111988/QLCV-DLRR/internal/store"
)

// KVUserRepository is a UserRepository backed by the key-value store.
type KVUserRepository struct {
	mu    sync.RWMutex
	users []models.User
	store store.Store
	log   *slog.Logger
}

// NewUserRepository loads the user directory from the store. A missing
// or unreadable collection starts empty.
func NewUserRepository(ctx context.Context, st store.Store, log *slog.Logger) UserRepository {
	r := &KVUserRepository{store: st, log: log}

	found, err := st.Get(ctx, constants.StorageKeyUsers, &r.users)
	if err != nil {
		log.Error("failed to load user directory", "error", err)
	}
	if !found || r.users == nil {
		r.users = []models.User{}
	}
	return r
}

// All returns a snapshot of every user record.
func (r *KVUserRepository) All() []models.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]models.User, len(r.users))
	copy(users, r.users)
	return users
}

// FindByID finds a user by ID.
func (r *KVUserRepository) FindByID(id string) (models.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

// FindByEmail finds a user by case-insensitive email match.
func (r *KVUserRepository) FindByEmail(email string) (models.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, true
		}
	}
	return models.User{}, false
}

// Update replaces the record with the same ID and persists the
// collection.
func (r *KVUserRepository) Update(user models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == user.ID {
			r.users[i] = user
			r.persist()
			return
		}
	}
}

// ReplaceAll swaps in a new user directory and persists it.
func (r *KVUserRepository) ReplaceAll(users []models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users = make([]models.User, len(users))
	copy(r.users, users)
	r.persist()
}

// Save re-persists the current collection unchanged.
func (r *KVUserRepository) Save() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	r.persist()
}

func (r *KVUserRepository) persist() {
	if err := r.store.Set(context.Background(), constants.StorageKeyUsers, r.users); err != nil {
		r.log.Error("failed to persist user directory", "error", err)
	}
}
