package mocks

import (
	"context"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// MockStoreRepository implements domain.StoreRepository for testing.
type MockStoreRepository struct {
	FindByIDFunc     func(ctx context.Context, id uint) (*domain.Store, error)
	FindBySellerFunc func(ctx context.Context, sellerID uint) (*domain.Store, error)
}

// NewMockStoreRepository creates a mock with default behaviors.
func NewMockStoreRepository() *MockStoreRepository {
	return &MockStoreRepository{}
}

func (m *MockStoreRepository) FindByID(ctx context.Context, id uint) (*domain.Store, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrStoreNotFound
}

func (m *MockStoreRepository) FindBySeller(ctx context.Context, sellerID uint) (*domain.Store, error) {
	if m.FindBySellerFunc != nil {
		return m.FindBySellerFunc(ctx, sellerID)
	}
	return nil, domain.ErrStoreNotFound
}

var _ domain.StoreRepository = (*MockStoreRepository)(nil)
