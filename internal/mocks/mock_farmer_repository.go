package mocks

import (
	"context"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
)

// MockFarmerRepository implements domain.FarmerRepository interface for testing
type MockFarmerRepository struct {
	CreateFunc      func(ctx context.Context, farmer *domain.Farmer) error
	FindByIDFunc    func(ctx context.Context, id string) (*domain.Farmer, error)
	FindByPhoneFunc func(ctx context.Context, phone string) (*domain.Farmer, error)
	ListFunc        func(ctx context.Context) ([]domain.Farmer, error)
	DeleteFunc      func(ctx context.Context, id string) error
}

// NewMockFarmerRepository creates a new MockFarmerRepository with default behaviors
func NewMockFarmerRepository() *MockFarmerRepository {
	return &MockFarmerRepository{}
}

// Create stores a farmer
func (m *MockFarmerRepository) Create(ctx context.Context, farmer *domain.Farmer) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, farmer)
	}
	return nil
}

// FindByID looks up a farmer by id
func (m *MockFarmerRepository) FindByID(ctx context.Context, id string) (*domain.Farmer, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrFarmerNotFound
}

// FindByPhone looks up a farmer by phone number
func (m *MockFarmerRepository) FindByPhone(ctx context.Context, phone string) (*domain.Farmer, error) {
	if m.FindByPhoneFunc != nil {
		return m.FindByPhoneFunc(ctx, phone)
	}
	return nil, domain.ErrFarmerNotFound
}

// List returns the roster
func (m *MockFarmerRepository) List(ctx context.Context) ([]domain.Farmer, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

// Delete removes a farmer by id
func (m *MockFarmerRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
