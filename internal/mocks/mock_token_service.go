package mocks

import (
	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// MockTokenService implements domain.TokenService for testing.
type MockTokenService struct {
	IssueAccessTokenFunc  func(userID uint, role domain.Role, sessionID string) (string, error)
	IssueRefreshTokenFunc func(userID uint, sessionID string) (string, error)
	VerifyFunc            func(token string, audience domain.TokenAudience) (*domain.TokenClaims, error)
}

// NewMockTokenService creates a mock with default behaviors.
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) IssueAccessToken(userID uint, role domain.Role, sessionID string) (string, error) {
	if m.IssueAccessTokenFunc != nil {
		return m.IssueAccessTokenFunc(userID, role, sessionID)
	}
	return "mock_access_token", nil
}

func (m *MockTokenService) IssueRefreshToken(userID uint, sessionID string) (string, error) {
	if m.IssueRefreshTokenFunc != nil {
		return m.IssueRefreshTokenFunc(userID, sessionID)
	}
	return "mock_refresh_token", nil
}

func (m *MockTokenService) Verify(token string, audience domain.TokenAudience) (*domain.TokenClaims, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(token, audience)
	}
	return nil, domain.ErrInvalidToken
}

var _ domain.TokenService = (*MockTokenService)(nil)
