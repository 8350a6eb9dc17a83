package services

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Wind28111988/QLCV-DLRR/internal/repository"
	"github.com/Wind28111988/QLCV-DLRR/internal/store"
)

// testEnv wires the services over a real in-memory store, the same way
// the server wires them in production.
type testEnv struct {
	users      repository.UserRepository
	sessions   repository.SessionRepository
	auth       *AuthService
	tasks      *TaskService
	delegation *DelegationService
}

func setupTestEnv(t *testing.T) testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	local, err := store.NewLocal(db)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	kv := store.New(local, nil, log)
	t.Cleanup(func() {
		kv.Close()
	})

	ctx := context.Background()
	users := repository.NewUserRepository(ctx, kv, log)
	tasks := repository.NewTaskRepository(ctx, kv, log)
	sessions := repository.NewSessionRepository(kv, log)

	taskService := NewTaskService(tasks)
	return testEnv{
		users:      users,
		sessions:   sessions,
		auth:       NewAuthService(users, sessions),
		tasks:      taskService,
		delegation: NewDelegationService(users, taskService),
	}
}
