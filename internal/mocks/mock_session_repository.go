package mocks

import (
	"context"
	"time"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// MockSessionRepository implements domain.SessionRepository for testing.
type MockSessionRepository struct {
	CreateFunc        func(ctx context.Context, session *domain.Session) error
	FindByIDFunc      func(ctx context.Context, sessionID string) (*domain.Session, error)
	UpdateTokensFunc  func(ctx context.Context, sessionID, token, refreshToken string, expiresAt time.Time) error
	DeleteFunc        func(ctx context.Context, sessionID string) error
	DeleteByUserFunc  func(ctx context.Context, userID uint) error
	DeleteExpiredFunc func(ctx context.Context, now time.Time) (int64, error)
}

// NewMockSessionRepository creates a mock with default behaviors.
func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{}
}

func (m *MockSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, session)
	}
	return nil
}

func (m *MockSessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, sessionID)
	}
	return nil, domain.ErrSessionNotFound
}

func (m *MockSessionRepository) UpdateTokens(ctx context.Context, sessionID, token, refreshToken string, expiresAt time.Time) error {
	if m.UpdateTokensFunc != nil {
		return m.UpdateTokensFunc(ctx, sessionID, token, refreshToken, expiresAt)
	}
	return nil
}

func (m *MockSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, sessionID)
	}
	return nil
}

func (m *MockSessionRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if m.DeleteByUserFunc != nil {
		return m.DeleteByUserFunc(ctx, userID)
	}
	return nil
}

func (m *MockSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.DeleteExpiredFunc != nil {
		return m.DeleteExpiredFunc(ctx, now)
	}
	return 0, nil
}

var _ domain.SessionRepository = (*MockSessionRepository)(nil)
