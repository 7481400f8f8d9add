package identity

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/logger"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/mocks"
)

const otpTestPhone = "+919876543210"

func newTestOTPProvider(t *testing.T) (*OTPProvider, *miniredis.Miniredis, *mocks.MockNotificationService, *mocks.MockFarmerRepository) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	notify := mocks.NewMockNotificationService()
	farmers := mocks.NewMockFarmerRepository()

	p := NewOTPProvider(rdb, notify, farmers, logger.NewNop(), OTPConfig{
		Length:       6,
		TTL:          5 * time.Minute,
		MaxAttempts:  3,
		ResendWindow: 60 * time.Second,
	})
	return p, mr, notify, farmers
}

// storedCode reads the code the provider persisted for phone.
func storedCode(t *testing.T, mr *miniredis.Miniredis, phone string) string {
	t.Helper()
	code, err := mr.Get(otpKey(phone))
	if err != nil {
		t.Fatalf("read stored code: %v", err)
	}
	return code
}

func TestOTPProvider_RequestCode(t *testing.T) {
	p, mr, notify, _ := newTestOTPProvider(t)

	ch, err := p.RequestCode(context.Background(), otpTestPhone)
	if err != nil {
		t.Fatalf("RequestCode: %v", err)
	}
	if ch.Phone != otpTestPhone || ch.Handle == "" {
		t.Errorf("challenge = %+v", ch)
	}

	code := storedCode(t, mr, otpTestPhone)
	if len(code) != 6 {
		t.Errorf("stored code %q, want 6 digits", code)
	}
	if len(notify.Sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(notify.Sent))
	}
	if !strings.Contains(notify.Sent[0].Message, code) {
		t.Errorf("SMS %q does not carry the code %q", notify.Sent[0].Message, code)
	}
}

func TestOTPProvider_ResendThrottled(t *testing.T) {
	p, mr, _, _ := newTestOTPProvider(t)
	ctx := context.Background()

	if _, err := p.RequestCode(ctx, otpTestPhone); err != nil {
		t.Fatalf("first RequestCode: %v", err)
	}
	if _, err := p.RequestCode(ctx, otpTestPhone); !errors.Is(err, domain.ErrResendThrottled) {
		t.Fatalf("second RequestCode = %v, want ErrResendThrottled", err)
	}

	// Past the resend window a new code goes out.
	mr.FastForward(61 * time.Second)
	if _, err := p.RequestCode(ctx, otpTestPhone); err != nil {
		t.Fatalf("RequestCode after window: %v", err)
	}
}

func TestOTPProvider_SMSFailureCleansUp(t *testing.T) {
	p, mr, notify, _ := newTestOTPProvider(t)
	notify.SendSMSFunc = func(to, message string) error {
		return errors.New("twilio 30007")
	}

	if _, err := p.RequestCode(context.Background(), otpTestPhone); err == nil {
		t.Fatal("expected error when SMS delivery fails")
	}
	if mr.Exists(otpKey(otpTestPhone)) {
		t.Error("code left behind after failed send")
	}
	if mr.Exists(resendKey(otpTestPhone)) {
		t.Error("resend throttle left behind after failed send")
	}
}

func TestOTPProvider_SubmitCode(t *testing.T) {
	p, mr, _, farmers := newTestOTPProvider(t)
	ctx := context.Background()

	var created *domain.Farmer
	farmers.CreateFunc = func(ctx context.Context, f *domain.Farmer) error {
		created = f
		return nil
	}

	ch, err := p.RequestCode(ctx, otpTestPhone)
	if err != nil {
		t.Fatalf("RequestCode: %v", err)
	}

	s, err := p.SubmitCode(ctx, ch, storedCode(t, mr, otpTestPhone))
	if err != nil {
		t.Fatalf("SubmitCode: %v", err)
	}
	if created == nil {
		t.Fatal("first sign-in did not create a farmer account")
	}
	if s.UserID != created.ID || s.Phone != otpTestPhone {
		t.Errorf("session = %+v, want identity of created farmer", s)
	}
	if mr.Exists(otpKey(otpTestPhone)) {
		t.Error("code not consumed on success")
	}
}

func TestOTPProvider_SubmitCodeExistingFarmer(t *testing.T) {
	p, mr, _, farmers := newTestOTPProvider(t)
	ctx := context.Background()

	farmers.FindByPhoneFunc = func(ctx context.Context, phone string) (*domain.Farmer, error) {
		return &domain.Farmer{ID: "farmer-7", Name: "Anita Devi", Phone: phone}, nil
	}

	ch, _ := p.RequestCode(ctx, otpTestPhone)
	s, err := p.SubmitCode(ctx, ch, storedCode(t, mr, otpTestPhone))
	if err != nil {
		t.Fatalf("SubmitCode: %v", err)
	}
	if s.UserID != "farmer-7" || s.DisplayName != "Anita Devi" {
		t.Errorf("session = %+v, want existing farmer identity", s)
	}
}

func TestOTPProvider_WrongCodeThenRetry(t *testing.T) {
	p, mr, _, _ := newTestOTPProvider(t)
	ctx := context.Background()

	ch, _ := p.RequestCode(ctx, otpTestPhone)
	code := storedCode(t, mr, otpTestPhone)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	if _, err := p.SubmitCode(ctx, ch, wrong); !errors.Is(err, domain.ErrInvalidCode) {
		t.Fatalf("SubmitCode(wrong) = %v, want ErrInvalidCode", err)
	}

	// The challenge is still live within the attempt budget.
	if _, err := p.SubmitCode(ctx, ch, code); err != nil {
		t.Fatalf("retry with correct code: %v", err)
	}
}

func TestOTPProvider_MaxAttempts(t *testing.T) {
	p, mr, _, _ := newTestOTPProvider(t)
	ctx := context.Background()

	ch, _ := p.RequestCode(ctx, otpTestPhone)
	code := storedCode(t, mr, otpTestPhone)
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	for i := 0; i < 3; i++ {
		if _, err := p.SubmitCode(ctx, ch, wrong); !errors.Is(err, domain.ErrInvalidCode) {
			t.Fatalf("attempt %d = %v, want ErrInvalidCode", i+1, err)
		}
	}
	if _, err := p.SubmitCode(ctx, ch, wrong); !errors.Is(err, domain.ErrCodeMaxAttempts) {
		t.Fatalf("over-budget attempt = %v, want ErrCodeMaxAttempts", err)
	}

	// The burned challenge cannot verify even with the right code.
	if _, err := p.SubmitCode(ctx, ch, code); !errors.Is(err, domain.ErrChallengeStale) {
		t.Errorf("post-burn submit = %v, want ErrChallengeStale", err)
	}
}

func TestOTPProvider_ExpiredCode(t *testing.T) {
	p, mr, _, _ := newTestOTPProvider(t)
	ctx := context.Background()

	ch, _ := p.RequestCode(ctx, otpTestPhone)
	code := storedCode(t, mr, otpTestPhone)

	mr.FastForward(6 * time.Minute)

	if _, err := p.SubmitCode(ctx, ch, code); !errors.Is(err, domain.ErrChallengeExpired) {
		t.Fatalf("SubmitCode after TTL = %v, want ErrChallengeExpired", err)
	}
}

func TestOTPProvider_StaleChallenge(t *testing.T) {
	p, mr, _, _ := newTestOTPProvider(t)
	ctx := context.Background()

	old, _ := p.RequestCode(ctx, otpTestPhone)
	mr.FastForward(61 * time.Second)
	if _, err := p.RequestCode(ctx, otpTestPhone); err != nil {
		t.Fatalf("second RequestCode: %v", err)
	}

	if _, err := p.SubmitCode(ctx, old, storedCode(t, mr, otpTestPhone)); !errors.Is(err, domain.ErrChallengeStale) {
		t.Fatalf("SubmitCode(old handle) = %v, want ErrChallengeStale", err)
	}
}
