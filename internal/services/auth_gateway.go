package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/logger"
)

// AuthState names the gateway's position in the sign-in flow.
type AuthState int

const (
	StateUnauthenticated AuthState = iota
	StateCodeRequested
	StateAuthenticated
)

func (s AuthState) String() string {
	switch s {
	case StateCodeRequested:
		return "code_requested"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Length heuristics tied to the "+91" country-code format of the deployed
// app. Kept as literal constants on purpose.
const (
	minPhoneLen = 13
	codeLen     = 6
)

// AuthGateway drives the phone-number, code-issuance, code-verification
// flow against whichever identity provider was wired at startup, and
// exposes the session as a subscribable stream. The gateway holds at most
// one live challenge; requesting a new code supersedes the previous one.
type AuthGateway struct {
	identity domain.IdentityProvider
	log      *logger.Logger

	mu        sync.Mutex
	state     AuthState
	challenge *domain.OtpChallenge
	session   *domain.Session
	subs      []*SessionSubscription
	nextSubID uint64
	synced    bool

	cancelObserve domain.CancelFunc
}

// SessionSubscription carries session changes to one subscriber. The
// current value is delivered first; a nil session means signed out.
type SessionSubscription struct {
	C <-chan *domain.Session

	ch     chan *domain.Session
	id     uint64
	cancel func()
	once   sync.Once

	// deliverMu fences deliveries against cancellation so a push can
	// never land on a closed channel.
	deliverMu sync.Mutex
	done      bool
}

// Cancel stops deliveries and releases the subscription.
func (s *SessionSubscription) Cancel() {
	s.once.Do(s.cancel)
}

func (s *SessionSubscription) deliver(v *domain.Session) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	if s.done {
		return
	}
	pushLatest(s.ch, v)
}

// NewAuthGateway builds a gateway in the Unauthenticated state and asks
// the provider for the current session, so a returning user's session is
// picked up without a fresh sign-in.
func NewAuthGateway(identity domain.IdentityProvider, log *logger.Logger) *AuthGateway {
	g := &AuthGateway{
		identity: identity,
		log:      log,
		state:    StateUnauthenticated,
	}
	g.cancelObserve = identity.ObserveSession(g.onSession)
	return g
}

// Close detaches the gateway from the provider and ends all subscriptions.
func (g *AuthGateway) Close() {
	if g.cancelObserve != nil {
		g.cancelObserve()
	}
	g.mu.Lock()
	subs := append([]*SessionSubscription(nil), g.subs...)
	g.mu.Unlock()
	for _, sub := range subs {
		sub.Cancel()
	}
}

// onSession tracks the provider's session slot. The registration snapshot
// is delivered asynchronously; an empty one can land after a sign-in has
// already completed, so it is dropped rather than treated as a sign-out.
func (g *AuthGateway) onSession(s *domain.Session) {
	g.mu.Lock()
	first := !g.synced
	g.synced = true
	if first && s == nil {
		g.mu.Unlock()
		return
	}
	if s != nil {
		g.state = StateAuthenticated
		g.session = s
		g.challenge = nil
	} else {
		g.session = nil
		if g.state == StateAuthenticated {
			g.state = StateUnauthenticated
		}
	}
	subs := append([]*SessionSubscription(nil), g.subs...)
	g.mu.Unlock()

	for _, sub := range subs {
		sub.deliver(s)
	}
}

// RequestCode validates the phone number shape and asks the provider for a
// verification challenge. A fresh request while one is already outstanding
// replaces it without leaving the code-requested state.
func (g *AuthGateway) RequestCode(ctx context.Context, phone string) error {
	if len(phone) < minPhoneLen || !strings.HasPrefix(phone, "+") {
		return domain.ErrInvalidPhone
	}

	g.mu.Lock()
	if g.state == StateAuthenticated {
		g.mu.Unlock()
		return domain.ErrSessionActive
	}
	g.mu.Unlock()

	challenge, err := g.identity.RequestCode(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrResendThrottled) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}

	g.mu.Lock()
	g.state = StateCodeRequested
	g.challenge = challenge
	g.mu.Unlock()

	g.log.Infow("verification challenge issued", "phone", phone)
	return nil
}

// SubmitCode resolves the outstanding challenge. A wrong code surfaces as
// ErrInvalidCode and leaves the challenge usable for another attempt.
func (g *AuthGateway) SubmitCode(ctx context.Context, code string) (*domain.Session, error) {
	g.mu.Lock()
	if g.state != StateCodeRequested || g.challenge == nil {
		g.mu.Unlock()
		return nil, domain.ErrNoChallenge
	}
	challenge := g.challenge
	g.mu.Unlock()

	if len(code) != codeLen {
		return nil, domain.ErrInvalidCode
	}

	session, err := g.identity.SubmitCode(ctx, challenge, code)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCode),
			errors.Is(err, domain.ErrChallengeStale),
			errors.Is(err, domain.ErrChallengeExpired),
			errors.Is(err, domain.ErrCodeMaxAttempts):
			return nil, err
		default:
			return nil, fmt.Errorf("%w: %v", domain.ErrProvider, err)
		}
	}

	g.mu.Lock()
	g.state = StateAuthenticated
	g.session = session
	g.challenge = nil
	g.mu.Unlock()

	g.log.Infow("session established", "user_id", session.UserID)
	return session, nil
}

// Logout clears the session. It always succeeds.
func (g *AuthGateway) Logout(ctx context.Context) error {
	if err := g.identity.SignOut(ctx); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrProvider, err)
	}
	g.mu.Lock()
	g.state = StateUnauthenticated
	g.session = nil
	g.challenge = nil
	g.mu.Unlock()
	return nil
}

// State returns the current flow state.
func (g *AuthGateway) State() AuthState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Session returns the active session, or nil.
func (g *AuthGateway) Session() *domain.Session {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session
}

// Sessions subscribes to session changes. The current value is queued
// immediately and received on the subscription's channel.
func (g *AuthGateway) Sessions() *SessionSubscription {
	g.mu.Lock()
	ch := make(chan *domain.Session, 16)
	sub := &SessionSubscription{C: ch, ch: ch, id: g.nextSubID}
	g.nextSubID++
	sub.cancel = func() { g.removeSub(sub.id) }
	g.subs = append(g.subs, sub)
	pushLatest(ch, g.session)
	g.mu.Unlock()
	return sub
}

func (g *AuthGateway) removeSub(id uint64) {
	var target *SessionSubscription
	g.mu.Lock()
	for i, sub := range g.subs {
		if sub.id == id {
			g.subs = append(g.subs[:i], g.subs[i+1:]...)
			target = sub
			break
		}
	}
	g.mu.Unlock()
	if target == nil {
		return
	}

	target.deliverMu.Lock()
	target.done = true
	close(target.ch)
	target.deliverMu.Unlock()
}

// pushLatest enqueues without blocking: when the buffer is full the oldest
// value is dropped so the subscriber always converges on the newest state.
func pushLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
