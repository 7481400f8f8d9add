package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/services"
)

// watchTimeout bounds the one-shot read. Subscriptions deliver the
// current value first, so this only trips when the backend is down.
const watchTimeout = 5 * time.Second

// ProfileHandlers serves profile and gamification reads
type ProfileHandlers struct {
	profiles *services.ProfileStore
}

// NewProfileHandlers creates new profile handlers
func NewProfileHandlers(profiles *services.ProfileStore) *ProfileHandlers {
	return &ProfileHandlers{profiles: profiles}
}

// GetProfile returns the caller's profile document. An absent document
// is a normal 200 with exists=false, not an error.
func (h *ProfileHandlers) GetProfile(c *gin.Context) {
	userID := c.GetString("user_id")

	sub, err := h.profiles.WatchProfile(userID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Profile backend unavailable"})
		return
	}
	defer sub.Cancel()

	select {
	case snap := <-sub.C:
		if !snap.Exists {
			c.JSON(http.StatusOK, gin.H{"data": gin.H{"exists": false}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"exists": true, "profile": snap.Profile}})
	case <-time.After(watchTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Profile read timed out"})
	}
}

// GetGamification returns the caller's gamification document.
func (h *ProfileHandlers) GetGamification(c *gin.Context) {
	userID := c.GetString("user_id")

	sub, err := h.profiles.WatchGamification(userID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Gamification backend unavailable"})
		return
	}
	defer sub.Cancel()

	select {
	case snap := <-sub.C:
		if !snap.Exists {
			c.JSON(http.StatusOK, gin.H{"data": gin.H{"exists": false}})
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": gin.H{"exists": true, "gamification": snap.Gamification}})
	case <-time.After(watchTimeout):
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Gamification read timed out"})
	}
}
