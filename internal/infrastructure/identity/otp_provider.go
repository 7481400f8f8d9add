package identity

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/logger"
)

// OTPConfig carries the verification-code policy.
type OTPConfig struct {
	Length       int
	TTL          time.Duration
	MaxAttempts  int
	ResendWindow time.Duration
}

// OTPProvider implements domain.IdentityProvider against Redis-held
// one-time codes delivered over SMS. A farmer record is resolved (or
// created on first sign-in) when a code verifies.
type OTPProvider struct {
	rdb     *redis.Client
	notify  domain.NotificationService
	farmers domain.FarmerRepository
	log     *logger.Logger
	cfg     OTPConfig
	hub     *sessionHub

	mu        sync.Mutex
	session   *domain.Session
	challenge string
}

// NewOTPProvider creates the real identity provider.
func NewOTPProvider(rdb *redis.Client, notify domain.NotificationService, farmers domain.FarmerRepository, log *logger.Logger, cfg OTPConfig) *OTPProvider {
	return &OTPProvider{
		rdb:     rdb,
		notify:  notify,
		farmers: farmers,
		log:     log,
		cfg:     cfg,
		hub:     newSessionHub(),
	}
}

var _ domain.IdentityProvider = (*OTPProvider)(nil)

func otpKey(phone string) string     { return "otp:code:" + phone }
func attemptKey(phone string) string { return "otp:att:" + phone }
func resendKey(phone string) string  { return "otp:res:" + phone }

// ObserveSession implements domain.IdentityProvider.
func (p *OTPProvider) ObserveSession(cb domain.SessionCallback) domain.CancelFunc {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hub.observe(cb, p.session)
}

// RequestCode implements domain.IdentityProvider. It generates a code,
// stores it with its attempt counter, and sends it by SMS. The resend
// window is the provider's own throttle.
func (p *OTPProvider) RequestCode(ctx context.Context, phone string) (*domain.OtpChallenge, error) {
	ttl, err := p.rdb.TTL(ctx, resendKey(phone)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check resend throttle: %w", err)
	}
	if ttl > 0 {
		return nil, fmt.Errorf("%w: retry in %ds", domain.ErrResendThrottled, int64(ttl.Seconds()))
	}

	code, err := p.generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}

	if err := p.rdb.Set(ctx, otpKey(phone), code, p.cfg.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to store verification code: %w", err)
	}
	if err := p.rdb.Set(ctx, attemptKey(phone), 0, p.cfg.TTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to initialize attempts counter: %w", err)
	}
	if err := p.rdb.Set(ctx, resendKey(phone), 1, p.cfg.ResendWindow).Err(); err != nil {
		return nil, fmt.Errorf("failed to set resend throttle: %w", err)
	}

	message := fmt.Sprintf("Your Oilseed Mitra verification code is %s. Valid for %d minutes.", code, int(p.cfg.TTL.Minutes()))
	if err := p.notify.SendSMS(phone, message); err != nil {
		p.rdb.Del(ctx, otpKey(phone), attemptKey(phone), resendKey(phone))
		return nil, fmt.Errorf("failed to send verification SMS: %w", err)
	}

	ch := &domain.OtpChallenge{
		Phone:     phone,
		Handle:    uuid.NewString(),
		CreatedAt: time.Now(),
	}
	p.mu.Lock()
	p.challenge = ch.Handle
	p.mu.Unlock()

	p.log.Infow("verification code sent", "phone", phone)
	return ch, nil
}

// SubmitCode implements domain.IdentityProvider. A wrong code leaves the
// challenge usable until the attempt budget runs out.
func (p *OTPProvider) SubmitCode(ctx context.Context, challenge *domain.OtpChallenge, code string) (*domain.Session, error) {
	p.mu.Lock()
	live := p.challenge
	p.mu.Unlock()
	if challenge == nil || live == "" || challenge.Handle != live {
		return nil, domain.ErrChallengeStale
	}

	phone := challenge.Phone
	attempts, err := p.rdb.Incr(ctx, attemptKey(phone)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to count attempt: %w", err)
	}
	if attempts > int64(p.cfg.MaxAttempts) {
		p.rdb.Del(ctx, otpKey(phone), attemptKey(phone))
		p.clearChallenge()
		return nil, domain.ErrCodeMaxAttempts
	}

	stored, err := p.rdb.Get(ctx, otpKey(phone)).Result()
	if err == redis.Nil {
		return nil, domain.ErrChallengeExpired
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read verification code: %w", err)
	}
	if stored != code {
		return nil, domain.ErrInvalidCode
	}

	p.rdb.Del(ctx, otpKey(phone), attemptKey(phone))

	farmer, err := p.farmers.FindByPhone(ctx, phone)
	if errors.Is(err, domain.ErrFarmerNotFound) {
		farmer = &domain.Farmer{
			ID:    uuid.NewString(),
			Phone: phone,
		}
		if err := p.farmers.Create(ctx, farmer); err != nil {
			return nil, fmt.Errorf("failed to create farmer account: %w", err)
		}
		p.log.Infow("farmer account created on first sign-in", "user_id", farmer.ID)
	} else if err != nil {
		return nil, fmt.Errorf("failed to resolve farmer account: %w", err)
	}

	s := &domain.Session{
		UserID:      farmer.ID,
		Phone:       phone,
		DisplayName: farmer.Name,
		CreatedAt:   time.Now(),
	}

	p.mu.Lock()
	p.challenge = ""
	p.session = s
	p.hub.publish(s)
	p.mu.Unlock()

	return s, nil
}

// SignOut implements domain.IdentityProvider.
func (p *OTPProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.session == nil {
		return nil
	}
	p.session = nil
	p.hub.publish(nil)
	return nil
}

func (p *OTPProvider) clearChallenge() {
	p.mu.Lock()
	p.challenge = ""
	p.mu.Unlock()
}

// generateCode draws each digit from crypto/rand.
func (p *OTPProvider) generateCode() (string, error) {
	digits := make([]byte, p.cfg.Length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
