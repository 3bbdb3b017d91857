package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deniz/careerhub/internal/pkg/apperrors"
	"github.com/deniz/careerhub/internal/pkg/flash"
	"github.com/deniz/careerhub/internal/pkg/logger"
)

// HandlePageError resolves a handler error into a rendered page or a
// redirect with a message. Every error path ends at a page; nothing
// propagates to the client as a bare fault.
func HandlePageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound),
		errors.Is(err, apperrors.ErrOpportunityNotFound),
		errors.Is(err, apperrors.ErrUserNotFound),
		errors.Is(err, apperrors.ErrProfileNotFound):
		c.HTML(http.StatusNotFound, "404.html", gin.H{})

	case errors.Is(err, apperrors.ErrPermissionDenied):
		flash.Set(c, flash.Warning, "You don't have access to that page.")
		c.Redirect(http.StatusSeeOther, RoleHome(CurrentRole(c)))

	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled page error")
		c.HTML(http.StatusInternalServerError, "500.html", gin.H{})
	}
}
