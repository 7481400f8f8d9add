package services

import (
	"context"
	"sync"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/logger"
)

// ProfileSnapshot is one delivered value of a profile watch. Exists is
// false when the user has no profile document.
type ProfileSnapshot struct {
	Exists  bool
	Profile domain.Profile
}

// GamificationSnapshot is one delivered value of a gamification watch.
type GamificationSnapshot struct {
	Exists       bool
	Gamification domain.Gamification
}

// ProfileSubscription streams profile snapshots: the current value first,
// then every change, until cancelled.
type ProfileSubscription struct {
	C <-chan ProfileSnapshot

	cancel domain.CancelFunc
	once   sync.Once
}

func (s *ProfileSubscription) Cancel() { s.once.Do(s.cancel) }

// GamificationSubscription streams gamification snapshots.
type GamificationSubscription struct {
	C <-chan GamificationSnapshot

	cancel domain.CancelFunc
	once   sync.Once
}

func (s *GamificationSubscription) Cancel() { s.once.Do(s.cancel) }

// ProfileStore presents a live view of a user's profile and gamification
// documents and performs the point-award mutation. It is the only caller
// of the document store, so the rest of the service never sees paths.
type ProfileStore struct {
	docs  domain.DocumentStore
	log   *logger.Logger
	appID string
}

// NewProfileStore creates a profile store over the wired document backend.
func NewProfileStore(docs domain.DocumentStore, log *logger.Logger, appID string) *ProfileStore {
	return &ProfileStore{docs: docs, log: log, appID: appID}
}

// WatchProfile subscribes to a user's profile document. A fresh
// subscription always re-delivers current state first. The caller must
// Cancel the subscription to release it.
func (ps *ProfileStore) WatchProfile(userID string) (*ProfileSubscription, error) {
	ch := make(chan ProfileSnapshot, 8)
	cancel, err := ps.docs.Subscribe(domain.ProfilePath(ps.appID, userID), func(snap domain.DocumentSnapshot) {
		out := ProfileSnapshot{Exists: snap.Exists}
		if snap.Exists && snap.Profile != nil {
			out.Profile = *snap.Profile
		}
		pushLatest(ch, out)
	})
	if err != nil {
		return nil, err
	}
	return &ProfileSubscription{C: ch, cancel: cancel}, nil
}

// WatchGamification subscribes to a user's gamification document.
func (ps *ProfileStore) WatchGamification(userID string) (*GamificationSubscription, error) {
	ch := make(chan GamificationSnapshot, 8)
	cancel, err := ps.docs.Subscribe(domain.GamificationPath(ps.appID, userID), func(snap domain.DocumentSnapshot) {
		out := GamificationSnapshot{Exists: snap.Exists}
		if snap.Exists && snap.Gamification != nil {
			out.Gamification = *snap.Gamification
		}
		pushLatest(ch, out)
	})
	if err != nil {
		return nil, err
	}
	return &GamificationSubscription{C: ch, cancel: cancel}, nil
}

// AwardPoints adds amount to the user's points. Failures are logged and
// swallowed: a missed award is acceptable for an engagement counter, so
// callers never see an error. Revisit if points ever back a redeemable
// reward.
func (ps *ProfileStore) AwardPoints(ctx context.Context, userID string, amount int) {
	if err := ps.docs.AddPoints(ctx, userID, amount); err != nil {
		ps.log.Errorw("point award failed", "user_id", userID, "amount", amount, "error", err)
	}
}
