package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stylu-app/backend/models"
	"github.com/stylu-app/backend/services"
)

const jsonContentType = "application/json; charset=utf-8"

type OutfitController struct {
	Outfits *services.OutfitService
	Log     *logrus.Logger
}

func NewOutfitController(outfits *services.OutfitService, log *logrus.Logger) *OutfitController {
	return &OutfitController{Outfits: outfits, Log: log}
}

// GET /api/outfits
func (oc *OutfitController) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	raw, err := oc.Outfits.List(c.Request.Context(), bearerToken(c), userID)
	if err != nil {
		respondServiceError(c, err, "failed to fetch outfits")
		return
	}
	c.Data(http.StatusOK, jsonContentType, raw)
}

// POST /api/outfits
func (oc *OutfitController) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}

	var req models.CreateOutfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		oc.Log.WithError(err).Warn("malformed outfit request")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := oc.Outfits.Create(c.Request.Context(), bearerToken(c), userID, req)
	if err != nil {
		var partial *services.PartialCreateError
		if errors.As(err, &partial) {
			var sbErr *services.SupabaseError
			status := http.StatusBadGateway
			details := ""
			if errors.As(partial.Cause, &sbErr) {
				status = sbErr.Status
				details = sbErr.Body
			}
			c.JSON(status, gin.H{
				"error":    "outfit created but failed to add items",
				"outfitId": partial.OutfitID,
				"details":  details,
			})
			return
		}
		respondServiceError(c, err, "failed to create outfit")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Outfit created successfully",
		"outfitId": created.OutfitID,
		"data":     created.Data,
	})
}

// PUT /api/outfits/:id
func (oc *OutfitController) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}
	outfitID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid outfit id"})
		return
	}

	var req models.UpdateOutfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		oc.Log.WithError(err).Warn("malformed outfit update")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := oc.Outfits.Update(c.Request.Context(), bearerToken(c), userID, outfitID, req); err != nil {
		respondServiceError(c, err, "failed to update outfit")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Outfit updated successfully"})
}

// GET /api/outfits/:id/items
func (oc *OutfitController) Items(c *gin.Context) {
	if _, ok := callerID(c); !ok {
		respondUnauthorized(c)
		return
	}
	outfitID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid outfit id"})
		return
	}

	raw, err := oc.Outfits.Items(c.Request.Context(), bearerToken(c), outfitID)
	if err != nil {
		respondServiceError(c, err, "failed to fetch outfit items")
		return
	}
	c.Data(http.StatusOK, jsonContentType, raw)
}

// DELETE /api/outfits/:id
func (oc *OutfitController) Delete(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		respondUnauthorized(c)
		return
	}
	outfitID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid outfit id"})
		return
	}

	if err := oc.Outfits.Delete(c.Request.Context(), bearerToken(c), userID, outfitID); err != nil {
		respondServiceError(c, err, "failed to delete outfit")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Outfit deleted successfully"})
}
