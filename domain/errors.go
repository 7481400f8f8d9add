package domain

import "errors"

// Validation errors, detected locally before any backend call.
var (
	ErrInvalidPhone = errors.New("phone number must start with a country code and be at least 13 characters")
	ErrInvalidCode  = errors.New("invalid verification code")
)

// Verification flow errors.
var (
	ErrProvider         = errors.New("verification provider failure")
	ErrNoChallenge      = errors.New("no verification in progress")
	ErrChallengeStale   = errors.New("verification challenge superseded")
	ErrChallengeExpired = errors.New("verification challenge expired")
	ErrCodeMaxAttempts  = errors.New("maximum verification attempts exceeded")
	ErrResendThrottled  = errors.New("verification code requested too recently")
	ErrSessionActive    = errors.New("a session is already active")
)

// Token errors.
var (
	ErrTokenInvalid   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token has expired")
	ErrTokenMalformed = errors.New("malformed token")
)

// Reference data errors.
var (
	ErrCropNotFound      = errors.New("crop not found")
	ErrSchemeNotFound    = errors.New("scheme not found")
	ErrInvalidSimulation = errors.New("acres must be positive")
)

// Roster errors.
var (
	ErrFarmerNotFound       = errors.New("farmer not found")
	ErrFarmerExists         = errors.New("farmer already registered")
	ErrEmptyAnnouncement    = errors.New("announcement body is empty")
	ErrAnnouncementNotFound = errors.New("announcement not found")
)
