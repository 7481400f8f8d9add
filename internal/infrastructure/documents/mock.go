package documents

import (
	"context"
	"strings"
	"sync"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
)

// Mock is the in-memory document store used when no backend credentials
// are configured. It holds one shared profile and one shared gamification
// record regardless of the user segment in the path, pre-populated with
// fixed seed values, and notifies subscribers synchronously on mutation.
type Mock struct {
	mu           sync.Mutex
	profile      domain.Profile
	gamification domain.Gamification
	subscribers  map[domain.DocumentKind][]*docSubscriber
	nextID       uint64
}

type docSubscriber struct {
	id   uint64
	path string
	cb   domain.SnapshotCallback

	// deliverMu keeps deliveries to one subscriber in order and lets
	// cancellation fence out in-flight callbacks.
	deliverMu sync.Mutex
	cancelled bool
}

// NewMock creates a mock store with the standard seed records.
func NewMock() *Mock {
	return &Mock{
		profile: domain.Profile{
			Name:     "Test Farmer (Mock)",
			Phone:    "+919999999999",
			Location: "Ruralville (Mock)",
		},
		gamification: domain.Gamification{
			Points: 1250,
			Badges: []string{"Early Adopter", "Top Simulator"},
		},
		subscribers: make(map[domain.DocumentKind][]*docSubscriber),
	}
}

var _ domain.DocumentStore = (*Mock)(nil)

// classify resolves a path to a document kind the way the store routes
// notifications: any path mentioning gamification shares the gamification
// channel, everything else the profile channel.
func classify(path string) domain.DocumentKind {
	if strings.Contains(path, "gamification") {
		return domain.DocumentGamification
	}
	return domain.DocumentProfile
}

// Subscribe implements domain.DocumentStore. The current value is
// delivered before Subscribe returns.
func (m *Mock) Subscribe(path string, cb domain.SnapshotCallback) (domain.CancelFunc, error) {
	kind := classify(path)

	m.mu.Lock()
	sub := &docSubscriber{id: m.nextID, path: path, cb: cb}
	m.nextID++
	m.subscribers[kind] = append(m.subscribers[kind], sub)
	snap := m.snapshotLocked(path, kind)
	m.mu.Unlock()

	sub.deliver(snap)

	return func() { m.remove(kind, sub) }, nil
}

// AddPoints implements domain.DocumentStore. The mutation and the fan-out
// happen synchronously from the caller's perspective.
func (m *Mock) AddPoints(ctx context.Context, userID string, amount int) error {
	m.mu.Lock()
	m.gamification.Points += amount
	kind := domain.DocumentGamification
	subs := append([]*docSubscriber(nil), m.subscribers[kind]...)
	snaps := make([]domain.DocumentSnapshot, len(subs))
	for i, sub := range subs {
		snaps[i] = m.snapshotLocked(sub.path, kind)
	}
	m.mu.Unlock()

	for i, sub := range subs {
		sub.deliver(snaps[i])
	}
	return nil
}

// snapshotLocked builds the current snapshot for a path. Callers hold m.mu.
func (m *Mock) snapshotLocked(path string, kind domain.DocumentKind) domain.DocumentSnapshot {
	snap := domain.DocumentSnapshot{Path: path, Kind: kind, Exists: true}
	switch kind {
	case domain.DocumentGamification:
		g := m.gamification
		g.Badges = append([]string(nil), m.gamification.Badges...)
		snap.Gamification = &g
	default:
		p := m.profile
		snap.Profile = &p
	}
	return snap
}

func (m *Mock) remove(kind domain.DocumentKind, target *docSubscriber) {
	m.mu.Lock()
	subs := m.subscribers[kind]
	for i, sub := range subs {
		if sub.id == target.id {
			m.subscribers[kind] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	target.deliverMu.Lock()
	target.cancelled = true
	target.deliverMu.Unlock()
}

func (s *docSubscriber) deliver(snap domain.DocumentSnapshot) {
	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()
	if s.cancelled {
		return
	}
	s.cb(snap)
}
