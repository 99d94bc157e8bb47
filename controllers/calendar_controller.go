package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stylu-app/backend/models"
	"github.com/stylu-app/backend/services"
)

type CalendarController struct {
	Calendar *services.CalendarService
	Log      *logrus.Logger
}

func NewCalendarController(calendar *services.CalendarService, log *logrus.Logger) *CalendarController {
	return &CalendarController{Calendar: calendar, Log: log}
}

// POST /api/calendar/schedule
func (cc *CalendarController) Schedule(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req models.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		cc.Log.WithError(err).Warn("malformed schedule request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if !validDate(req.EventDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventDate must be YYYY-MM-DD"})
		return
	}

	created, err := cc.Calendar.Schedule(c.Request.Context(), bearerToken(c), userID, req)
	if err != nil {
		respondServiceError(c, err, "failed to schedule outfit")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GET /api/calendar/scheduled?startDate=2024-01-01&endDate=2024-01-31
func (cc *CalendarController) Scheduled(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if !validDate(startDate) || !validDate(endDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "startDate and endDate must be YYYY-MM-DD"})
		return
	}

	listing, err := cc.Calendar.ScheduledOutfits(c.Request.Context(), bearerToken(c), userID, startDate, endDate)
	if err != nil {
		respondServiceError(c, err, "failed to fetch schedules")
		return
	}
	c.JSON(http.StatusOK, listing)
}

// PUT /api/calendar/schedule/:id
func (cc *CalendarController) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}
	scheduleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return
	}

	var req models.ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		cc.Log.WithError(err).Warn("malformed schedule update")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.EventDate != nil && !validDate(*req.EventDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "eventDate must be YYYY-MM-DD"})
		return
	}

	if err := cc.Calendar.UpdateSchedule(c.Request.Context(), bearerToken(c), userID, scheduleID, req); err != nil {
		respondServiceError(c, err, "failed to update schedule")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule updated successfully"})
}

// DELETE /api/calendar/schedule/:id
func (cc *CalendarController) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}
	scheduleID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return
	}

	if err := cc.Calendar.DeleteSchedule(c.Request.Context(), bearerToken(c), userID, scheduleID); err != nil {
		respondServiceError(c, err, "failed to delete schedule")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Schedule deleted successfully"})
}

// GET /api/calendar/debug/check-schedules
func (cc *CalendarController) CheckSchedules(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	startDate := c.Query("startDate")
	endDate := c.Query("endDate")
	if (startDate != "" && !validDate(startDate)) || (endDate != "" && !validDate(endDate)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD"})
		return
	}

	debug, err := cc.Calendar.CheckSchedules(c.Request.Context(), bearerToken(c), userID, startDate, endDate)
	if err != nil {
		respondServiceError(c, err, "debug query failed")
		return
	}
	c.JSON(http.StatusOK, debug)
}
