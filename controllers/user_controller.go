package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GET /api/user/profile
func Profile(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"userId":  c.GetString("userID"),
		"email":   c.GetString("email"),
		"role":    c.GetString("role"),
	})
}

// GET /api/user/test — public liveness probe.
func Test(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "API is working correctly",
		"timestamp": time.Now().UTC(),
	})
}
