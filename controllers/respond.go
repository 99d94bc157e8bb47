package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/stylu-app/backend/services"
	"github.com/stylu-app/backend/utils"
)

func bearerToken(c *gin.Context) string {
	return strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
}

// callerID returns the verified subject from the auth middleware, falling
// back to decoding the raw token's sub claim. A missing identity is always
// unauthenticated, never anonymous.
func callerID(c *gin.Context) (string, bool) {
	if id := c.GetString("userID"); id != "" {
		return id, true
	}
	if sub, err := utils.ExtractSubject(bearerToken(c)); err == nil {
		return sub, true
	}
	return "", false
}

func respondUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
}

// respondServiceError maps a service failure onto the wire. Data-API
// failures keep their downstream status and body verbatim; anything else
// (transport, decoding) becomes a bad gateway.
func respondServiceError(c *gin.Context, err error, message string) {
	var sbErr *services.SupabaseError
	if errors.As(err, &sbErr) {
		c.JSON(sbErr.Status, gin.H{"error": message, "details": sbErr.Body})
		return
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": message})
}

func validDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}
