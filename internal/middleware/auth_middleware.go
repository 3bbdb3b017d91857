package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deniz/careerhub/internal/app/models"
	"github.com/deniz/careerhub/internal/pkg/auth"
	"github.com/deniz/careerhub/internal/pkg/flash"
)

// Context keys set by SessionAuth
const (
	ctxUserID   = "userID"
	ctxUsername = "username"
	ctxRole     = "role"
)

// AuthMiddleware resolves the session cookie into a request identity and
// gates handlers by role.
type AuthMiddleware struct {
	sessions   *auth.SessionService
	cookieName string
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(sessions *auth.SessionService, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
	}
}

// SessionAuth parses the session cookie when present and stores the
// identity in the request context. It never rejects: public pages run
// under it too, and an invalid or expired cookie just reads as signed out.
func (m *AuthMiddleware) SessionAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(m.cookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := m.sessions.ValidateToken(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxUsername, claims.Username)
		c.Set(ctxRole, claims.Role)

		c.Next()
	}
}

// RequireAuth redirects signed-out visitors to the login page with a
// message instead of serving the page.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			flash.Set(c, flash.Info, "Please sign in to continue.")
			c.Redirect(http.StatusSeeOther, "/accounts/login/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole rejects authenticated users whose role does not match,
// redirecting them to their own home view with a message. Run after
// RequireAuth.
func (m *AuthMiddleware) RequireRole(required models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CurrentRole(c)
		if role != required {
			flash.Set(c, flash.Warning, "You don't have access to that page.")
			c.Redirect(http.StatusSeeOther, RoleHome(role))
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated account ID, if any.
func CurrentUserID(c *gin.Context) (int64, bool) {
	value, exists := c.Get(ctxUserID)
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

// CurrentUsername returns the authenticated username, or "" when signed out.
func CurrentUsername(c *gin.Context) string {
	value, exists := c.Get(ctxUsername)
	if !exists {
		return ""
	}
	username, _ := value.(string)
	return username
}

// CurrentRole returns the authenticated role, defaulting to student.
func CurrentRole(c *gin.Context) models.RoleType {
	value, exists := c.Get(ctxRole)
	if !exists {
		return models.RoleStudent
	}
	role, ok := value.(models.RoleType)
	if !ok {
		return models.RoleStudent
	}
	return role
}

// RoleHome maps a role to its landing view: lecturers manage, students browse.
func RoleHome(role models.RoleType) string {
	if role == models.RoleLecturer {
		return "/manage/"
	}
	return "/list/"
}
