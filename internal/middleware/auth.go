package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/Wind28111988/QLCV-DLRR/internal/constants"
	apierrors "github.com/Wind28111988/QLCV-DLRR/internal/errors"
	"github.com/Wind28111988/QLCV-DLRR/internal/models"
	"github.com/Wind28111988/QLCV-DLRR/internal/repository"
)

// RequireAuth checks the session cookie and resolves the user record
// into the request context.
func RequireAuth(users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID, ok := session.Get(constants.ContextKeyUserID).(string)
		if !ok || userID == "" {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, found := users.FindByID(userID)
		if !found {
			// Stale session for a user removed from the directory.
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// RequirePasswordChanged blocks users still in the forced password
// change flow from everything except the change-password endpoint.
func RequirePasswordChanged() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if user.MustChangePassword {
			apierrors.PasswordChangeRequired(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin restricts a route to users carrying the administrator
// sentinel.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}
		if !user.IsAdmin() {
			apierrors.Forbidden(c, "Administrator access required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser retrieves the resolved user record from the request
// context.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
