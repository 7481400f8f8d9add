package mocks

import (
	"context"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
)

// MockDocumentStore implements domain.DocumentStore interface for testing
type MockDocumentStore struct {
	SubscribeFunc func(path string, cb domain.SnapshotCallback) (domain.CancelFunc, error)
	AddPointsFunc func(ctx context.Context, userID string, amount int) error
}

// NewMockDocumentStore creates a new MockDocumentStore with default behaviors
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{}
}

// Subscribe registers a snapshot callback for path
func (m *MockDocumentStore) Subscribe(path string, cb domain.SnapshotCallback) (domain.CancelFunc, error) {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(path, cb)
	}
	// Default behavior: deliver one absent snapshot
	cb(domain.DocumentSnapshot{Path: path, Exists: false})
	return func() {}, nil
}

// AddPoints adds points to a user's gamification record
func (m *MockDocumentStore) AddPoints(ctx context.Context, userID string, amount int) error {
	if m.AddPointsFunc != nil {
		return m.AddPointsFunc(ctx, userID, amount)
	}
	return nil
}
