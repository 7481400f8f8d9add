package services

import (
	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
)

// ReferenceService serves the static agronomy reference tables and the
// profitability arithmetic over them. All data is compiled in; there is no
// backing store to fail.
type ReferenceService struct{}

func NewReferenceService() *ReferenceService {
	return &ReferenceService{}
}

// Crops returns the crop economics table in its published order.
func (s *ReferenceService) Crops() []domain.Crop {
	out := make([]domain.Crop, len(cropTable))
	copy(out, cropTable)
	return out
}

// CropByName looks up one crop row.
func (s *ReferenceService) CropByName(name string) (*domain.Crop, error) {
	for i := range cropTable {
		if cropTable[i].Name == name {
			c := cropTable[i]
			return &c, nil
		}
	}
	return nil, domain.ErrCropNotFound
}

// Profit is the per-acre profit at table prices:
// yield*price - cost + subsidy.
func (s *ReferenceService) Profit(c domain.Crop) float64 {
	return c.Yield*c.Price - c.Cost + c.Subsidy
}

// Schemes returns the government scheme directory.
func (s *ReferenceService) Schemes() []domain.Scheme {
	out := make([]domain.Scheme, len(schemeTable))
	copy(out, schemeTable)
	return out
}

// SchemeByID looks up one scheme.
func (s *ReferenceService) SchemeByID(id string) (*domain.Scheme, error) {
	for i := range schemeTable {
		if schemeTable[i].ID == id {
			sc := schemeTable[i]
			return &sc, nil
		}
	}
	return nil, domain.ErrSchemeNotFound
}

// MandiPrices returns the market price list.
func (s *ReferenceService) MandiPrices() []domain.MandiPrice {
	out := make([]domain.MandiPrice, len(mandiTable))
	copy(out, mandiTable)
	return out
}

// FPOs returns the farmer producer organisation directory.
func (s *ReferenceService) FPOs() []domain.FPO {
	out := make([]domain.FPO, len(fpoTable))
	copy(out, fpoTable)
	return out
}

// SimulationInput describes one profitability simulation run.
type SimulationInput struct {
	Crop string
	// Acres under cultivation; must be positive.
	Acres float64
	// MarketPrice overrides the table price when positive.
	MarketPrice float64
	// PricePerKg marks MarketPrice as rupees per kg; it is normalised to
	// per quintal (x100) for the calculation.
	PricePerKg bool
	// YieldVariability is the +/- percentage applied to yield for the
	// profit range.
	YieldVariability float64
}

// SimulationResult is the computed outcome.
type SimulationResult struct {
	Crop            string  `json:"crop"`
	Acres           float64 `json:"acres"`
	PricePerQuintal float64 `json:"price_per_quintal"`
	ProfitPerAcre   float64 `json:"profit_per_acre"`
	TotalProfit     float64 `json:"total_profit"`
	ProfitRangeLow  float64 `json:"profit_range_low"`
	ProfitRangeHigh float64 `json:"profit_range_high"`
}

// Simulate computes projected profit for a crop over a number of acres,
// with an optional market-price override and a yield-variability band.
func (s *ReferenceService) Simulate(in SimulationInput) (*SimulationResult, error) {
	crop, err := s.CropByName(in.Crop)
	if err != nil {
		return nil, err
	}
	if in.Acres <= 0 {
		return nil, domain.ErrInvalidSimulation
	}

	price := crop.Price
	if in.MarketPrice > 0 {
		price = in.MarketPrice
		if in.PricePerKg {
			price *= 100
		}
	}

	perAcre := crop.Yield*price - crop.Cost + crop.Subsidy
	lowYield := crop.Yield * (1 - in.YieldVariability/100)
	highYield := crop.Yield * (1 + in.YieldVariability/100)

	return &SimulationResult{
		Crop:            crop.Name,
		Acres:           in.Acres,
		PricePerQuintal: price,
		ProfitPerAcre:   perAcre,
		TotalProfit:     perAcre * in.Acres,
		ProfitRangeLow:  (lowYield*price - crop.Cost + crop.Subsidy) * in.Acres,
		ProfitRangeHigh: (highYield*price - crop.Cost + crop.Subsidy) * in.Acres,
	}, nil
}
