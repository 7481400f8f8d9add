package identity

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
)

// The single simulated identity the mock provider can sign in.
const (
	MockUserID      = "TEST_UID"
	MockPhone       = "+919999999999"
	MockDisplayName = "Test Farmer"
)

// mockCodeLen is the only check the mock applies to submitted codes.
const mockCodeLen = 6

// Mock is the in-process stand-in for the phone verification provider,
// used when no backend credentials are configured. It holds one simulated
// identity and a single session slot, and behaves like the real provider
// from the caller's side: codes are never delivered, any 6-character code
// verifies, and session changes reach observers asynchronously.
type Mock struct {
	hub *sessionHub

	mu        sync.Mutex
	session   *domain.Session
	challenge string // handle of the live challenge, "" when none
}

// NewMock creates a mock identity provider with no active session.
func NewMock() *Mock {
	return &Mock{hub: newSessionHub()}
}

var _ domain.IdentityProvider = (*Mock)(nil)

// ObserveSession implements domain.IdentityProvider.
func (m *Mock) ObserveSession(cb domain.SessionCallback) domain.CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hub.observe(cb, m.session)
}

// RequestCode implements domain.IdentityProvider. It always succeeds; the
// returned challenge supersedes any previous one.
func (m *Mock) RequestCode(ctx context.Context, phone string) (*domain.OtpChallenge, error) {
	ch := &domain.OtpChallenge{
		Phone:     phone,
		Handle:    uuid.NewString(),
		CreatedAt: time.Now(),
	}
	m.mu.Lock()
	m.challenge = ch.Handle
	m.mu.Unlock()
	return ch, nil
}

// SubmitCode implements domain.IdentityProvider. A code of exactly six
// characters establishes the simulated session; anything else is rejected
// and the challenge stays usable for a retry.
func (m *Mock) SubmitCode(ctx context.Context, challenge *domain.OtpChallenge, code string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if challenge == nil || m.challenge == "" || challenge.Handle != m.challenge {
		return nil, domain.ErrChallengeStale
	}
	if len(code) != mockCodeLen {
		return nil, domain.ErrInvalidCode
	}

	m.challenge = ""
	s := &domain.Session{
		UserID:      MockUserID,
		Phone:       MockPhone,
		DisplayName: MockDisplayName,
		CreatedAt:   time.Now(),
	}
	m.session = s
	m.hub.publish(s)
	return s, nil
}

// SignOut implements domain.IdentityProvider. Signing out twice is a no-op
// with no redundant notification.
func (m *Mock) SignOut(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return nil
	}
	m.session = nil
	m.hub.publish(nil)
	return nil
}
