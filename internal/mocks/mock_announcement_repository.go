package mocks

import (
	"context"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
)

// MockAnnouncementRepository implements domain.AnnouncementRepository interface for testing
type MockAnnouncementRepository struct {
	CreateFunc func(ctx context.Context, a *domain.Announcement) error
	ListFunc   func(ctx context.Context) ([]domain.Announcement, error)
}

// NewMockAnnouncementRepository creates a new MockAnnouncementRepository with default behaviors
func NewMockAnnouncementRepository() *MockAnnouncementRepository {
	return &MockAnnouncementRepository{}
}

// Create stores an announcement
func (m *MockAnnouncementRepository) Create(ctx context.Context, a *domain.Announcement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	return nil
}

// List returns announcements newest first
func (m *MockAnnouncementRepository) List(ctx context.Context) ([]domain.Announcement, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}
