package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/services"
)

// AuthHandlers handles phone verification HTTP requests
type AuthHandlers struct {
	gateway  *services.AuthGateway
	tokenSvc domain.TokenService
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(gateway *services.AuthGateway, tokenSvc domain.TokenService) *AuthHandlers {
	return &AuthHandlers{
		gateway:  gateway,
		tokenSvc: tokenSvc,
	}
}

// OTPRequestRequest represents a verification code request
type OTPRequestRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// OTPVerifyRequest represents a code submission
type OTPVerifyRequest struct {
	Code string `json:"code" binding:"required"`
	// Role is self declared at login, like the profile toggle in the
	// mobile client. Defaults to farmer.
	Role string `json:"role,omitempty"`
}

// RequestOTP handles verification code requests
func (h *AuthHandlers) RequestOTP(c *gin.Context) {
	var req OTPRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.gateway.RequestCode(c.Request.Context(), req.Phone); err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidPhone):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number. Use international format."})
		case errors.Is(err, domain.ErrSessionActive):
			c.JSON(http.StatusConflict, gin.H{"error": "Already signed in"})
		case errors.Is(err, domain.ErrResendThrottled):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Please wait before requesting another code"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to send verification code"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"message": "Verification code sent",
			"state":   h.gateway.State().String(),
		},
	})
}

// VerifyOTP handles code submission and issues an access token
func (h *AuthHandlers) VerifyOTP(c *gin.Context) {
	var req OTPVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	role := req.Role
	if role == "" {
		role = domain.RoleFarmer
	}
	if role != domain.RoleFarmer && role != domain.RoleOfficial {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	session, err := h.gateway.SubmitCode(c.Request.Context(), req.Code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoChallenge):
			c.JSON(http.StatusConflict, gin.H{"error": "No verification in progress"})
		case errors.Is(err, domain.ErrInvalidCode):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid verification code"})
		case errors.Is(err, domain.ErrChallengeExpired):
			c.JSON(http.StatusGone, gin.H{"error": "Verification code expired. Request a new one."})
		case errors.Is(err, domain.ErrCodeMaxAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many attempts. Request a new code."})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Verification failed"})
		}
		return
	}

	token, err := h.tokenSvc.GenerateAccessToken(session.UserID, role, session.Phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"access_token": token,
			"token_type":   "Bearer",
			"user": gin.H{
				"id":           session.UserID,
				"phone":        session.Phone,
				"display_name": session.DisplayName,
				"role":         role,
			},
		},
	})
}

// Logout clears the active session
func (h *AuthHandlers) Logout(c *gin.Context) {
	if err := h.gateway.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Signed out"}})
}

// Me returns the token identity and current gateway state
func (h *AuthHandlers) Me(c *gin.Context) {
	userID, _ := c.Get("user_id")
	role, _ := c.Get("role")
	phone, _ := c.Get("phone")

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"user_id": userID,
			"role":    role,
			"phone":   phone,
			"state":   h.gateway.State().String(),
		},
	})
}
