package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deniz/careerhub/internal/app/services"
	"github.com/deniz/careerhub/internal/middleware"
)

// NotificationController handles the student notification feed.
type NotificationController struct {
	notificationService *services.NotificationService
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService) *NotificationController {
	return &NotificationController{notificationService: notificationService}
}

// Feed renders the newest notifications. Viewing marks everything read.
func (ctl *NotificationController) Feed(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)

	notifications, err := ctl.notificationService.Feed(c.Request.Context(), userID)
	if err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	render(c, http.StatusOK, "notifications.html", gin.H{
		"Notifications": notifications,
	})
}
