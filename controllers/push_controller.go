package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stylu-app/backend/models"
	"github.com/stylu-app/backend/services"
)

type PushController struct {
	Push *services.PushService
	Log  *logrus.Logger
}

func NewPushController(push *services.PushService, log *logrus.Logger) *PushController {
	return &PushController{Push: push, Log: log}
}

// POST /api/push/register
func (pc *PushController) Register(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req models.RegisterTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		pc.Log.WithError(err).Warn("malformed token registration")
		c.JSON(http.StatusBadRequest, gin.H{"error": "fcmToken is required"})
		return
	}

	if err := pc.Push.RegisterToken(c.Request.Context(), bearerToken(c), userID, req); err != nil {
		respondServiceError(c, err, "failed to register token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Token registered successfully"})
}

// POST /api/push/unregister
func (pc *PushController) Unregister(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	if err := pc.Push.UnregisterTokens(c.Request.Context(), bearerToken(c), userID); err != nil {
		respondServiceError(c, err, "failed to unregister token")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Token unregistered successfully"})
}

// POST /api/push/send
func (pc *PushController) Send(c *gin.Context) {
	if _, ok := callerID(c); !ok {
		respondUnauthorized(c)
		return
	}

	var req models.SendPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		pc.Log.WithError(err).Warn("malformed push request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "title and body are required"})
		return
	}

	// fan-out to every active device is reserved for the service role
	if req.UserID == nil && c.GetString("role") != "service_role" {
		c.JSON(http.StatusForbidden, gin.H{"error": "broadcast requires the service role"})
		return
	}

	report, err := pc.Push.Send(c.Request.Context(), bearerToken(c), req)
	if err != nil {
		if errors.Is(err, services.ErrNoActiveTokens) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no active tokens found"})
			return
		}
		respondServiceError(c, err, "failed to send notification")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      "Notifications sent",
		"successCount": report.SuccessCount,
		"failureCount": report.FailureCount,
	})
}

// POST /api/push/send-to-topic
func (pc *PushController) SendToTopic(c *gin.Context) {
	if _, ok := callerID(c); !ok {
		respondUnauthorized(c)
		return
	}

	var req models.TopicPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		pc.Log.WithError(err).Warn("malformed topic push request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic, title and body are required"})
		return
	}

	messageID, err := pc.Push.SendToTopic(c.Request.Context(), req)
	if err != nil {
		pc.Log.WithError(err).Error("topic push failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to send topic notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Topic notification sent successfully",
		"messageId": messageID,
	})
}
