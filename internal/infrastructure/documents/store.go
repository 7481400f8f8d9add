package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/logger"
)

// ProfileRecord is the database row behind a profile document.
type ProfileRecord struct {
	UserID    string `gorm:"primaryKey;size:128"`
	Name      string `gorm:"size:255"`
	Phone     string `gorm:"size:32"`
	Location  string `gorm:"size:255"`
	UpdatedAt time.Time
}

func (ProfileRecord) TableName() string { return "profiles" }

// GamificationRecord is the database row behind a gamification document.
// Badges are stored JSON-encoded.
type GamificationRecord struct {
	UserID    string `gorm:"primaryKey;size:128"`
	Points    int
	Badges    string `gorm:"size:2048"`
	UpdatedAt time.Time
}

func (GamificationRecord) TableName() string { return "gamification" }

// Store implements domain.DocumentStore over database rows, with change
// fan-out on Redis pub/sub so every process watching a document sees
// updates. Channel names mirror the document paths.
type Store struct {
	db    *gorm.DB
	rdb   *redis.Client
	log   *logger.Logger
	appID string
}

// NewStore creates the real document store.
func NewStore(db *gorm.DB, rdb *redis.Client, log *logger.Logger, appID string) *Store {
	return &Store{db: db, rdb: rdb, log: log, appID: appID}
}

var _ domain.DocumentStore = (*Store)(nil)

func channelFor(path string) string { return "docs:" + path }

// parsePath validates the addressing scheme
// artifacts/<appID>/users/<uid>/<leaf> and extracts the user id and kind.
func (s *Store) parsePath(path string) (string, domain.DocumentKind, error) {
	parts := strings.Split(path, "/")
	if len(parts) != 5 || parts[0] != "artifacts" || parts[2] != "users" {
		return "", 0, fmt.Errorf("malformed document path %q", path)
	}
	switch parts[4] {
	case "profile":
		return parts[3], domain.DocumentProfile, nil
	case "gamification":
		return parts[3], domain.DocumentGamification, nil
	default:
		return "", 0, fmt.Errorf("unknown document %q in path %q", parts[4], path)
	}
}

// Subscribe implements domain.DocumentStore. The initial value is read
// from the database and delivered before change notifications start.
func (s *Store) Subscribe(path string, cb domain.SnapshotCallback) (domain.CancelFunc, error) {
	userID, kind, err := s.parsePath(path)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	pubsub := s.rdb.Subscribe(ctx, channelFor(path))
	// Force the subscription onto the wire before the initial read, so no
	// update published after the read can be missed.
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", path, err)
	}

	initial, err := s.read(ctx, path, userID, kind)
	if err != nil {
		pubsub.Close()
		return nil, err
	}
	cb(initial)

	go func() {
		// Concurrent awards commit and publish independently, so a
		// smaller total can arrive after a larger one. Points only ever
		// grow, so older snapshots are the ones that compare lower.
		lastPoints := -1
		if initial.Exists && initial.Gamification != nil {
			lastPoints = initial.Gamification.Points
		}
		for msg := range pubsub.Channel() {
			var snap domain.DocumentSnapshot
			if err := json.Unmarshal([]byte(msg.Payload), &snap); err != nil {
				s.log.Warnw("dropping undecodable document notification", "path", path, "error", err)
				continue
			}
			if kind == domain.DocumentGamification && snap.Gamification != nil {
				if snap.Gamification.Points < lastPoints {
					continue
				}
				lastPoints = snap.Gamification.Points
			}
			cb(snap)
		}
	}()

	return func() { _ = pubsub.Close() }, nil
}

// AddPoints implements domain.DocumentStore. The read-modify-write runs
// inside one transaction with an in-database increment, so concurrent
// awards for the same user cannot lose an addition.
func (s *Store) AddPoints(ctx context.Context, userID string, amount int) error {
	var rec GamificationRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&GamificationRecord{}).
			Where("user_id = ?", userID).
			UpdateColumn("points", gorm.Expr("points + ?", amount))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			rec = GamificationRecord{UserID: userID, Points: amount, Badges: "[]"}
			return tx.Create(&rec).Error
		}
		return tx.Where("user_id = ?", userID).First(&rec).Error
	})
	if err != nil {
		return fmt.Errorf("failed to add points for user %s: %w", userID, err)
	}

	path := domain.GamificationPath(s.appID, userID)
	snap := domain.DocumentSnapshot{
		Path:   path,
		Kind:   domain.DocumentGamification,
		Exists: true,
		Gamification: &domain.Gamification{
			Points: rec.Points,
			Badges: decodeBadges(rec.Badges),
		},
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode gamification snapshot: %w", err)
	}
	if err := s.rdb.Publish(ctx, channelFor(path), payload).Err(); err != nil {
		// The write is durable; only the notification was lost.
		s.log.Warnw("failed to publish gamification change", "user_id", userID, "error", err)
	}
	return nil
}

// read loads the current snapshot for a document.
func (s *Store) read(ctx context.Context, path, userID string, kind domain.DocumentKind) (domain.DocumentSnapshot, error) {
	snap := domain.DocumentSnapshot{Path: path, Kind: kind}
	switch kind {
	case domain.DocumentProfile:
		var rec ProfileRecord
		err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return snap, nil
		}
		if err != nil {
			return snap, fmt.Errorf("failed to read profile: %w", err)
		}
		snap.Exists = true
		snap.Profile = &domain.Profile{Name: rec.Name, Phone: rec.Phone, Location: rec.Location}
	case domain.DocumentGamification:
		var rec GamificationRecord
		err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return snap, nil
		}
		if err != nil {
			return snap, fmt.Errorf("failed to read gamification: %w", err)
		}
		snap.Exists = true
		snap.Gamification = &domain.Gamification{Points: rec.Points, Badges: decodeBadges(rec.Badges)}
	}
	return snap, nil
}

// Seed writes a user's profile and gamification documents directly,
// bypassing the award path. Intended for provisioning test data.
func (s *Store) Seed(ctx context.Context, userID string, profile domain.Profile, g domain.Gamification) error {
	if err := s.db.WithContext(ctx).Save(&ProfileRecord{
		UserID:   userID,
		Name:     profile.Name,
		Phone:    profile.Phone,
		Location: profile.Location,
	}).Error; err != nil {
		return fmt.Errorf("failed to seed profile: %w", err)
	}
	if err := s.db.WithContext(ctx).Save(&GamificationRecord{
		UserID: userID,
		Points: g.Points,
		Badges: encodeBadges(g.Badges),
	}).Error; err != nil {
		return fmt.Errorf("failed to seed gamification: %w", err)
	}
	return nil
}

func decodeBadges(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var badges []string
	if err := json.Unmarshal([]byte(raw), &badges); err != nil {
		return []string{}
	}
	return badges
}

func encodeBadges(badges []string) string {
	if badges == nil {
		badges = []string{}
	}
	raw, _ := json.Marshal(badges)
	return string(raw)
}
