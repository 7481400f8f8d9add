package domain

import "context"

// SessionCallback receives session changes. A nil session means nobody is
// signed in.
type SessionCallback func(*Session)

// SnapshotCallback receives document snapshots for a watched path.
type SnapshotCallback func(DocumentSnapshot)

// CancelFunc stops future deliveries to the callback it was returned for.
// It is safe to call more than once and never affects other subscribers.
type CancelFunc func()

// IdentityProvider is the phone verification backend. Both the real
// provider and the in-process mock satisfy it, so callers carry no
// backend awareness.
type IdentityProvider interface {
	// ObserveSession registers cb and delivers the current session value
	// (possibly nil) asynchronously, followed by every later change.
	ObserveSession(cb SessionCallback) CancelFunc
	// RequestCode issues a fresh verification challenge for phone,
	// invalidating any previous challenge.
	RequestCode(ctx context.Context, phone string) (*OtpChallenge, error)
	// SubmitCode resolves a challenge. On success the session is
	// established and observers are notified exactly once.
	SubmitCode(ctx context.Context, challenge *OtpChallenge, code string) (*Session, error)
	// SignOut clears the session. Observers are notified once, or not at
	// all when no session existed.
	SignOut(ctx context.Context) error
}

// DocumentStore is the per-user document backend.
type DocumentStore interface {
	// Subscribe registers cb for the document at path and delivers the
	// current value before any change notification. Delivery to one
	// subscription is monotonic.
	Subscribe(path string, cb SnapshotCallback) (CancelFunc, error)
	// AddPoints atomically adds amount to the user's gamification points,
	// creating the record with an empty badge list when absent. Concurrent
	// invocations must not lose an addition.
	AddPoints(ctx context.Context, userID string, amount int) error
}

// NotificationService delivers messages to farmers.
type NotificationService interface {
	SendSMS(to, message string) error
}

// TokenService mints and validates API access tokens.
type TokenService interface {
	GenerateAccessToken(userID, role, phone string) (string, error)
	Validate(token string) (*TokenClaims, error)
}

// TokenClaims are the verified claims of an access token.
type TokenClaims struct {
	UserID    string `json:"user_id"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// FarmerRepository defines roster data access.
type FarmerRepository interface {
	Create(ctx context.Context, farmer *Farmer) error
	FindByID(ctx context.Context, id string) (*Farmer, error)
	FindByPhone(ctx context.Context, phone string) (*Farmer, error)
	List(ctx context.Context) ([]Farmer, error)
	Delete(ctx context.Context, id string) error
}

// AnnouncementRepository defines announcement data access.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *Announcement) error
	// List returns announcements newest first.
	List(ctx context.Context) ([]Announcement, error)
}

// CasbinEnforcer is the slice of the casbin enforcer the middleware needs.
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
	GetPolicy() ([][]string, error)
	SavePolicy() error
}
