package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/infrastructure/identity"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/logger"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/mocks"
)

const testPhone = "+919999999999"

func newTestGateway(t *testing.T) *AuthGateway {
	t.Helper()
	g := NewAuthGateway(identity.NewMock(), logger.NewNop())
	t.Cleanup(g.Close)
	return g
}

// receiveSession waits for the next delivery on sub, failing the test on
// timeout.
func receiveSession(t *testing.T, sub *SessionSubscription) *domain.Session {
	t.Helper()
	select {
	case s := <-sub.C:
		return s
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for session delivery")
		return nil
	}
}

func TestAuthGateway_InitialState(t *testing.T) {
	g := newTestGateway(t)
	if got := g.State(); got != StateUnauthenticated {
		t.Errorf("State() = %v, want StateUnauthenticated", got)
	}
	if g.Session() != nil {
		t.Error("Session() = non-nil on a fresh gateway")
	}
}

func TestAuthGateway_FullFlow(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	if err := g.RequestCode(ctx, testPhone); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}
	if got := g.State(); got != StateCodeRequested {
		t.Fatalf("State() after request = %v, want StateCodeRequested", got)
	}

	session, err := g.SubmitCode(ctx, "123456")
	if err != nil {
		t.Fatalf("SubmitCode: %v", err)
	}
	if session.UserID != identity.MockUserID {
		t.Errorf("session.UserID = %q, want %q", session.UserID, identity.MockUserID)
	}
	if got := g.State(); got != StateAuthenticated {
		t.Fatalf("State() after verify = %v, want StateAuthenticated", got)
	}

	// A second code request while signed in is refused.
	if err := g.RequestCode(ctx, testPhone); !errors.Is(err, domain.ErrSessionActive) {
		t.Errorf("RequestCode while authenticated = %v, want ErrSessionActive", err)
	}

	if err := g.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if got := g.State(); got != StateUnauthenticated {
		t.Errorf("State() after logout = %v, want StateUnauthenticated", got)
	}
	if g.Session() != nil {
		t.Error("Session() non-nil after logout")
	}
}

func TestAuthGateway_RequestCodeValidation(t *testing.T) {
	tests := []struct {
		name  string
		phone string
	}{
		{"too short", "+9198765"},
		{"missing plus", "919999999999x"},
		{"empty", ""},
	}

	g := newTestGateway(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.RequestCode(context.Background(), tt.phone)
			if !errors.Is(err, domain.ErrInvalidPhone) {
				t.Errorf("RequestCode(%q) = %v, want ErrInvalidPhone", tt.phone, err)
			}
			if got := g.State(); got != StateUnauthenticated {
				t.Errorf("rejected request moved state to %v", got)
			}
		})
	}
}

func TestAuthGateway_SubmitWithoutChallenge(t *testing.T) {
	g := newTestGateway(t)
	if _, err := g.SubmitCode(context.Background(), "123456"); !errors.Is(err, domain.ErrNoChallenge) {
		t.Errorf("SubmitCode with no challenge = %v, want ErrNoChallenge", err)
	}
}

func TestAuthGateway_WrongCodeKeepsChallenge(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	if err := g.RequestCode(ctx, testPhone); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}

	if _, err := g.SubmitCode(ctx, "123"); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("SubmitCode(short) = %v, want ErrInvalidCode", err)
	}
	if got := g.State(); got != StateCodeRequested {
		t.Fatalf("failed attempt moved state to %v, want StateCodeRequested", got)
	}

	// The challenge survives the failed attempt; a retry succeeds.
	if _, err := g.SubmitCode(ctx, "654321"); err != nil {
		t.Fatalf("retry SubmitCode: %v", err)
	}
	if got := g.State(); got != StateAuthenticated {
		t.Errorf("State() after retry = %v, want StateAuthenticated", got)
	}
}

func TestAuthGateway_RerequestSupersedesChallenge(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	if err := g.RequestCode(ctx, testPhone); err != nil {
		t.Fatalf("first RequestCode: %v", err)
	}
	if err := g.RequestCode(ctx, testPhone); err != nil {
		t.Fatalf("second RequestCode: %v", err)
	}
	if got := g.State(); got != StateCodeRequested {
		t.Fatalf("State() = %v, want StateCodeRequested", got)
	}

	// The gateway always resolves against the newest challenge.
	if _, err := g.SubmitCode(ctx, "123456"); err != nil {
		t.Fatalf("SubmitCode against superseded flow: %v", err)
	}
}

func TestAuthGateway_ProviderErrorsWrapped(t *testing.T) {
	provider := mocks.NewMockIdentityProvider()
	provider.RequestCodeFunc = func(ctx context.Context, phone string) (*domain.OtpChallenge, error) {
		return nil, errors.New("twilio unreachable")
	}

	g := NewAuthGateway(provider, logger.NewNop())
	t.Cleanup(g.Close)

	err := g.RequestCode(context.Background(), testPhone)
	if !errors.Is(err, domain.ErrProvider) {
		t.Errorf("RequestCode = %v, want wrapped ErrProvider", err)
	}
}

func TestAuthGateway_SessionSubscription(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	sub := g.Sessions()
	defer sub.Cancel()

	// Current value first: nobody signed in yet.
	if s := receiveSession(t, sub); s != nil {
		t.Fatalf("initial delivery = %+v, want nil", s)
	}

	if err := g.RequestCode(ctx, testPhone); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}
	if _, err := g.SubmitCode(ctx, "123456"); err != nil {
		t.Fatalf("SubmitCode: %v", err)
	}
	if s := receiveSession(t, sub); s == nil || s.UserID != identity.MockUserID {
		t.Fatalf("post-verify delivery = %+v, want mock session", s)
	}

	if err := g.Logout(ctx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if s := receiveSession(t, sub); s != nil {
		t.Fatalf("post-logout delivery = %+v, want nil", s)
	}
}

func TestAuthGateway_SubscriptionCancel(t *testing.T) {
	g := newTestGateway(t)

	sub := g.Sessions()
	receiveSession(t, sub) // drain the initial nil
	sub.Cancel()
	sub.Cancel() // safe to call twice

	// The channel closes once removed; nothing further is delivered.
	select {
	case _, ok := <-sub.C:
		if ok {
			t.Fatal("received delivery after cancel")
		}
	case <-time.After(time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestAuthGateway_LateRegistrationSnapshotIgnored(t *testing.T) {
	provider := mocks.NewMockIdentityProvider()
	var notify domain.SessionCallback
	provider.ObserveSessionFunc = func(cb domain.SessionCallback) domain.CancelFunc {
		notify = cb
		return func() {}
	}

	g := NewAuthGateway(provider, logger.NewNop())
	t.Cleanup(g.Close)
	ctx := context.Background()

	sub := g.Sessions()
	defer sub.Cancel()
	if s := receiveSession(t, sub); s != nil {
		t.Fatalf("initial delivery = %+v, want nil", s)
	}

	if err := g.RequestCode(ctx, testPhone); err != nil {
		t.Fatalf("RequestCode: %v", err)
	}
	session, err := g.SubmitCode(ctx, "123456")
	if err != nil {
		t.Fatalf("SubmitCode: %v", err)
	}

	// The provider's registration snapshot lands only now, after the
	// sign-in already finished. It must not read as a sign-out.
	notify(nil)
	if got := g.State(); got != StateAuthenticated {
		t.Fatalf("State() after late snapshot = %v, want StateAuthenticated", got)
	}
	if g.Session() == nil {
		t.Fatal("Session() = nil after late snapshot")
	}

	// The provider then reports the session it established. The very next
	// delivery the subscriber sees is that session, never a second nil.
	notify(session)
	if s := receiveSession(t, sub); s == nil || s.UserID != session.UserID {
		t.Fatalf("delivery after sign-in = %+v, want the established session", s)
	}

	// Genuine sign-outs still flow through.
	notify(nil)
	if s := receiveSession(t, sub); s != nil {
		t.Fatalf("sign-out delivery = %+v, want nil", s)
	}
}

func TestAuthGateway_CancelFencesInFlightDelivery(t *testing.T) {
	provider := mocks.NewMockIdentityProvider()
	var notify domain.SessionCallback
	provider.ObserveSessionFunc = func(cb domain.SessionCallback) domain.CancelFunc {
		notify = cb
		return func() {}
	}

	g := NewAuthGateway(provider, logger.NewNop())
	t.Cleanup(g.Close)

	sub := g.Sessions()
	receiveSession(t, sub) // drain the initial nil
	sub.Cancel()

	// A fan-out racing the cancel must hit the fence, not the closed
	// channel.
	sub.deliver(&domain.Session{UserID: "late"})
	notify(&domain.Session{UserID: "later"})

	if _, ok := <-sub.C; ok {
		t.Fatal("received delivery after cancel")
	}
}

func TestPushLatestDropsOldest(t *testing.T) {
	ch := make(chan int, 2)
	for i := 1; i <= 5; i++ {
		pushLatest(ch, i)
	}
	// The newest value is always retained.
	var last int
	for {
		select {
		case v := <-ch:
			last = v
			continue
		default:
		}
		break
	}
	if last != 5 {
		t.Errorf("last buffered value = %d, want 5", last)
	}
}
