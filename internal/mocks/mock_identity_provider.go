package mocks

import (
	"context"
	"time"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
)

// MockIdentityProvider implements domain.IdentityProvider for testing
type MockIdentityProvider struct {
	ObserveSessionFunc func(cb domain.SessionCallback) domain.CancelFunc
	RequestCodeFunc    func(ctx context.Context, phone string) (*domain.OtpChallenge, error)
	SubmitCodeFunc     func(ctx context.Context, challenge *domain.OtpChallenge, code string) (*domain.Session, error)
	SignOutFunc        func(ctx context.Context) error
}

// NewMockIdentityProvider creates a new MockIdentityProvider with default behaviors
func NewMockIdentityProvider() *MockIdentityProvider {
	return &MockIdentityProvider{}
}

// ObserveSession registers a session observer
func (m *MockIdentityProvider) ObserveSession(cb domain.SessionCallback) domain.CancelFunc {
	if m.ObserveSessionFunc != nil {
		return m.ObserveSessionFunc(cb)
	}
	// Default behavior: deliver a nil initial session, never publish again
	go cb(nil)
	return func() {}
}

// RequestCode issues a verification challenge
func (m *MockIdentityProvider) RequestCode(ctx context.Context, phone string) (*domain.OtpChallenge, error) {
	if m.RequestCodeFunc != nil {
		return m.RequestCodeFunc(ctx, phone)
	}
	return &domain.OtpChallenge{
		Phone:     phone,
		Handle:    "mock-handle",
		CreatedAt: time.Now(),
	}, nil
}

// SubmitCode resolves a verification challenge
func (m *MockIdentityProvider) SubmitCode(ctx context.Context, challenge *domain.OtpChallenge, code string) (*domain.Session, error) {
	if m.SubmitCodeFunc != nil {
		return m.SubmitCodeFunc(ctx, challenge, code)
	}
	return &domain.Session{
		UserID:      "mock-user",
		Phone:       challenge.Phone,
		DisplayName: "Mock Farmer",
		CreatedAt:   time.Now(),
	}, nil
}

// SignOut clears the session
func (m *MockIdentityProvider) SignOut(ctx context.Context) error {
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx)
	}
	return nil
}
