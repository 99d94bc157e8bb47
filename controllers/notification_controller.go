package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stylu-app/backend/models"
	"github.com/stylu-app/backend/services"
)

type NotificationController struct {
	Notifications *services.NotificationService
	Log           *logrus.Logger
}

func NewNotificationController(notifications *services.NotificationService, log *logrus.Logger) *NotificationController {
	return &NotificationController{Notifications: notifications, Log: log}
}

// POST /api/notifications
//
// Writes with the service credential so the app can record notification
// history after a push arrives while the user is logged out.
func (nc *NotificationController) Save(c *gin.Context) {
	var req models.SaveNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		nc.Log.WithError(err).Warn("malformed notification save")
		c.JSON(http.StatusBadRequest, gin.H{"error": "userId, title and body are required"})
		return
	}

	if err := nc.Notifications.Save(c.Request.Context(), req); err != nil {
		respondServiceError(c, err, "failed to save notification")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}
