package services

import (
	"errors"
	"strings"

	"github.com/Wind28111988/QLCV-DLRR/internal/models"
	"github.com/Wind28111988/QLCV-DLRR/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordRequired   = errors.New("password is required")
)

// AuthService handles authentication and credential management.
//
// Passwords are stored and compared as plain values. That is a stated
// property of this tool's trust model (single trusted operator, a
// directory imported from a staff spreadsheet with resettable shared
// secrets), not an oversight.
type AuthService struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(users repository.UserRepository, sessions repository.SessionRepository) *AuthService {
	return &AuthService{users: users, sessions: sessions}
}

// Login verifies credentials and records the session. Email matching is
// case-insensitive; the password must match exactly.
func (s *AuthService) Login(email, password string) (models.User, error) {
	user, ok := s.users.FindByEmail(email)
	if !ok || user.Password != password {
		return models.User{}, ErrInvalidCredentials
	}

	s.sessions.SetCurrent(user)
	s.users.Save()
	return user, nil
}

// Logout removes the persisted session record.
func (s *AuthService) Logout() {
	s.sessions.Clear()
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id string) (models.User, error) {
	user, ok := s.users.FindByID(id)
	if !ok {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}

// ChangePassword sets a new password for the user and clears the
// forced-change flag. The persisted session record is refreshed so the
// resumed session sees the updated record.
func (s *AuthService) ChangePassword(userID, newPassword string) (models.User, error) {
	if newPassword == "" {
		return models.User{}, ErrPasswordRequired
	}

	user, ok := s.users.FindByID(userID)
	if !ok {
		return models.User{}, ErrUserNotFound
	}

	user.Password = newPassword
	user.MustChangePassword = false
	s.users.Update(user)

	if current, ok := s.sessions.Current(); ok && current.ID == user.ID {
		s.sessions.SetCurrent(user)
	}
	return user, nil
}

// ResetPassword sets a new password for the user with the given email
// and clears the forced-change flag. It requires no authenticated actor
// and silently no-ops on an unknown email; both are preserved behavior
// of the self-service reset flow.
func (s *AuthService) ResetPassword(email, newPassword string) error {
	if newPassword == "" {
		return ErrPasswordRequired
	}

	user, ok := s.users.FindByEmail(email)
	if !ok {
		return nil
	}

	user.Password = newPassword
	user.MustChangePassword = false
	s.users.Update(user)
	return nil
}

// ImportUsers replaces the whole user directory. Records arriving
// without a password are provisioned with the default password and
// forced through the password-change flow on first login.
func (s *AuthService) ImportUsers(users []models.User, defaultPassword string) []models.User {
	imported := make([]models.User, len(users))
	copy(imported, users)

	for i := range imported {
		if strings.TrimSpace(imported[i].Password) == "" {
			imported[i].Password = defaultPassword
			imported[i].MustChangePassword = true
		}
	}

	s.users.ReplaceAll(imported)
	return imported
}
