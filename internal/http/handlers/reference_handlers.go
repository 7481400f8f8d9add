package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/services"
)

// simulationPoints is granted once per completed simulation run.
const simulationPoints = 25

// ReferenceHandlers serves advisory reference data and the profit simulator
type ReferenceHandlers struct {
	reference *services.ReferenceService
	profiles  *services.ProfileStore
}

// NewReferenceHandlers creates new reference handlers
func NewReferenceHandlers(reference *services.ReferenceService, profiles *services.ProfileStore) *ReferenceHandlers {
	return &ReferenceHandlers{
		reference: reference,
		profiles:  profiles,
	}
}

// ListCrops returns the crop economics table
func (h *ReferenceHandlers) ListCrops(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.reference.Crops()})
}

// ListSchemes returns all government schemes
func (h *ReferenceHandlers) ListSchemes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.reference.Schemes()})
}

// GetScheme returns one scheme by id
func (h *ReferenceHandlers) GetScheme(c *gin.Context) {
	scheme, err := h.reference.SchemeByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Scheme not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": scheme})
}

// ListMandiPrices returns recent mandi price quotes
func (h *ReferenceHandlers) ListMandiPrices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.reference.MandiPrices()})
}

// ListFPOs returns the farmer producer organisation directory
func (h *ReferenceHandlers) ListFPOs(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.reference.FPOs()})
}

// SimulateRequest represents a profit simulation run
type SimulateRequest struct {
	Crop             string  `json:"crop" binding:"required"`
	Acres            float64 `json:"acres" binding:"required"`
	MarketPrice      float64 `json:"market_price,omitempty"`
	PricePerKg       bool    `json:"price_per_kg,omitempty"`
	YieldVariability float64 `json:"yield_variability,omitempty"`
}

// Simulate runs a profitability simulation and credits engagement points.
// The award is fire-and-forget; a failed award never fails the run.
func (h *ReferenceHandlers) Simulate(c *gin.Context) {
	var req SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.reference.Simulate(services.SimulationInput{
		Crop:             req.Crop,
		Acres:            req.Acres,
		MarketPrice:      req.MarketPrice,
		PricePerKg:       req.PricePerKg,
		YieldVariability: req.YieldVariability,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCropNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Crop not found"})
		case errors.Is(err, domain.ErrInvalidSimulation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Simulation failed"})
		}
		return
	}

	userID := c.GetString("user_id")
	h.profiles.AwardPoints(c.Request.Context(), userID, simulationPoints)

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"result":         result,
			"points_awarded": simulationPoints,
		},
	})
}
