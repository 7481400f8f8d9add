package mocks

import (
	"fmt"
	"time"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	GenerateAccessTokenFunc func(userID, role, phone string) (string, error)
	ValidateFunc            func(token string) (*domain.TokenClaims, error)
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// GenerateAccessToken generates an access token for the user
func (m *MockTokenService) GenerateAccessToken(userID, role, phone string) (string, error) {
	if m.GenerateAccessTokenFunc != nil {
		return m.GenerateAccessTokenFunc(userID, role, phone)
	}
	// Default behavior: return a mock access token
	return fmt.Sprintf("access_token_%s_%s", userID, role), nil
}

// Validate validates an access token and returns claims
func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}
	now := time.Now().Unix()
	return &domain.TokenClaims{
		UserID:    "TEST_UID",
		Role:      domain.RoleFarmer,
		Phone:     "+919999999999",
		IssuedAt:  now,
		ExpiresAt: now + 900,
	}, nil
}
