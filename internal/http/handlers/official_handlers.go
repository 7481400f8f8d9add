package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/services"
)

// OfficialHandlers serves the roster and announcement endpoints reserved
// for agricultural officials
type OfficialHandlers struct {
	roster *services.RosterService
}

// NewOfficialHandlers creates new official handlers
func NewOfficialHandlers(roster *services.RosterService) *OfficialHandlers {
	return &OfficialHandlers{roster: roster}
}

// ListFarmers returns the roster
func (h *OfficialHandlers) ListFarmers(c *gin.Context) {
	farmers, err := h.roster.ListFarmers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load roster"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": farmers})
}

// AddFarmerRequest represents a roster registration
type AddFarmerRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Location string `json:"location,omitempty"`
}

// AddFarmer registers a farmer on the roster
func (h *OfficialHandlers) AddFarmer(c *gin.Context) {
	var req AddFarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	farmer, err := h.roster.AddFarmer(c.Request.Context(), req.Name, req.Phone, req.Location)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPhone):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid name or phone number"})
		case errors.Is(err, domain.ErrFarmerExists):
			c.JSON(http.StatusConflict, gin.H{"error": "Farmer already registered"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add farmer"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": farmer})
}

// RemoveFarmer deletes a roster entry
func (h *OfficialHandlers) RemoveFarmer(c *gin.Context) {
	if err := h.roster.RemoveFarmer(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrFarmerNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Farmer not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove farmer"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Farmer removed"}})
}

// BroadcastRequest represents an announcement
type BroadcastRequest struct {
	Body string `json:"body" binding:"required"`
}

// Broadcast records an announcement and notifies the roster by SMS
func (h *OfficialHandlers) Broadcast(c *gin.Context) {
	var req BroadcastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ann, err := h.roster.Broadcast(c.Request.Context(), req.Body)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyAnnouncement) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Announcement body is empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to broadcast"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": ann})
}

// ListAnnouncements returns past announcements, newest first. Farmers can
// read these too, so the route lives outside the official group.
func (h *OfficialHandlers) ListAnnouncements(c *gin.Context) {
	anns, err := h.roster.Announcements(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load announcements"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": anns})
}
