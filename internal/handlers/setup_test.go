package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Wind28111988/QLCV-DLRR/internal/constants"
	"github.com/Wind28111988/QLCV-DLRR/internal/middleware"
	"github.com/Wind28111988/QLCV-DLRR/internal/models"
	"github.com/Wind28111988/QLCV-DLRR/internal/repository"
	"github.com/Wind28111988/QLCV-DLRR/internal/services"
	"github.com/Wind28111988/QLCV-DLRR/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type handlerTestEnv struct {
	router   *gin.Engine
	users    repository.UserRepository
	sessions repository.SessionRepository
	tasks    *services.TaskService
}

// setupHandlerTestEnv wires the full router over an in-memory store,
// mirroring the wiring in cmd/server.
func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
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
	sessionRepo := repository.NewSessionRepository(kv, log)

	authService := services.NewAuthService(users, sessionRepo)
	taskService := services.NewTaskService(tasks)
	delegationService := services.NewDelegationService(users, taskService)

	authHandler := NewAuthHandler(authService)
	taskHandler := NewTaskHandler(taskService)
	delegationHandler := NewDelegationHandler(delegationService)
	dashboardHandler := NewDashboardHandler(taskService)
	adminHandler := NewAdminHandler(authService, taskService, users, "default-pass")

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("secret"))))

	api := r.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.GET("/me", middleware.RequireAuth(users), authHandler.GetCurrentUser)
	auth.POST("/change-password", middleware.RequireAuth(users), authHandler.ChangePassword)

	protected := api.Group("")
	protected.Use(middleware.RequireAuth(users), middleware.RequirePasswordChanged())
	protected.GET("/tasks", taskHandler.ListTasks)
	protected.POST("/tasks", taskHandler.CreateTask)
	protected.PATCH("/tasks/:id", taskHandler.UpdateTask)
	protected.POST("/tasks/:id/status", taskHandler.UpdateStatus)
	protected.DELETE("/tasks/:id", taskHandler.DeleteTask)
	protected.GET("/delegation/units", delegationHandler.ListUnits)
	protected.GET("/delegation/targets", delegationHandler.ListTargets)
	protected.POST("/delegation/assign", delegationHandler.Assign)
	protected.GET("/dashboard", dashboardHandler.GetStats)

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.GET("/users", adminHandler.ListUsers)
	admin.GET("/tasks", adminHandler.UserTasks)
	admin.POST("/import", adminHandler.ImportUsers)

	return handlerTestEnv{
		router:   r,
		users:    users,
		sessions: sessionRepo,
		tasks:    taskService,
	}
}

func seedDirectory(env handlerTestEnv) {
	env.users.ReplaceAll([]models.User{
		{
			ID:            "u1",
			Name:          "An",
			Position:      "Head",
			Unit:          "A",
			Email:         "an@example.com",
			Password:      "secret",
			DelegateLevel: "X1",
			Notes:         "AD",
		},
		{
			ID:            "u2",
			Name:          "Binh",
			Position:      "Deputy",
			Unit:          "A",
			Email:         "binh@example.com",
			Password:      "secret",
			DelegateLevel: "X2",
		},
		{
			ID:            "u3",
			Name:          "Chi",
			Position:      "Staff",
			Unit:          "A",
			Email:         "chi@example.com",
			Password:      "secret",
			DelegateLevel: "X3",
		},
		{
			ID:                 "u4",
			Name:               "Dung",
			Position:           "Staff",
			Unit:               "B",
			Email:              "dung@example.com",
			Password:           "initial",
			DelegateLevel:      "X3",
			MustChangePassword: true,
		},
	})
}

// doRequest performs a request against the test router, carrying any
// session cookies.
func doRequest(t *testing.T, env handlerTestEnv, method, path string, body any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

// login authenticates and returns the session cookies.
func login(t *testing.T, env handlerTestEnv, email, password string) []*http.Cookie {
	t.Helper()

	w := doRequest(t, env, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
	return cookies
}
