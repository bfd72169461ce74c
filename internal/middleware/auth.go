package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/mizuki-dev/task-manager-api/internal/constants"
	apierrors "github.com/mizuki-dev/task-manager-api/internal/errors"
	"github.com/mizuki-dev/task-manager-api/internal/rbac"
	"github.com/mizuki-dev/task-manager-api/internal/services"
)

// RequireAuth checks the session and resolves the current user into an
// rbac.Actor stored in the request context. The user row is re-read on
// every request so role or organization changes take effect without
// re-login.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		sessionUserID := session.Get(constants.ContextKeyUserID)

		if sessionUserID == nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		userID, ok := toUint64(sessionUserID)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, err := authService.GetUser(userID)
		if err != nil {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, user.ID)
		c.Set(constants.ContextKeyActor, services.ActorFor(user))
		c.Next()
	}
}

// GetActor retrieves the current actor from context
func GetActor(c *gin.Context) (rbac.Actor, bool) {
	value, exists := c.Get(constants.ContextKeyActor)
	if !exists {
		return rbac.Actor{}, false
	}

	actor, ok := value.(rbac.Actor)
	if !ok || actor.IsZero() {
		return rbac.Actor{}, false
	}
	return actor, true
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (uint64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	return toUint64(userID)
}

func toUint64(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
