package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
	"github.com/OmarEhab007/cargoparts-sub000/internal/mocks"
)

func testSessionConfig() SessionConfig {
	return SessionConfig{AccessTTL: 15 * time.Minute, RefreshTTL: 24 * time.Hour}
}

// sessionFixture wires the session service to an in-memory session map and a
// token service minting distinguishable tokens, so rotation and revocation
// can be observed without real signatures.
type sessionFixture struct {
	sessions *mocks.MockSessionRepository
	users    *mocks.MockUserRepository
	tokens   *mocks.MockTokenService
	svc      *SessionService

	stored map[string]*domain.Session
}

func newSessionFixture() *sessionFixture {
	f := &sessionFixture{
		sessions: mocks.NewMockSessionRepository(),
		users:    mocks.NewMockUserRepository(),
		tokens:   mocks.NewMockTokenService(),
		stored:   make(map[string]*domain.Session),
	}

	f.sessions.CreateFunc = func(ctx context.Context, s *domain.Session) error {
		copied := *s
		f.stored[s.ID] = &copied
		return nil
	}
	f.sessions.FindByIDFunc = func(ctx context.Context, id string) (*domain.Session, error) {
		s, ok := f.stored[id]
		if !ok {
			return nil, domain.ErrSessionNotFound
		}
		copied := *s
		return &copied, nil
	}
	f.sessions.UpdateTokensFunc = func(ctx context.Context, id, token, refresh string, expiresAt time.Time) error {
		s, ok := f.stored[id]
		if !ok {
			return domain.ErrSessionNotFound
		}
		s.Token = token
		s.RefreshToken = refresh
		s.ExpiresAt = expiresAt
		return nil
	}
	f.sessions.DeleteFunc = func(ctx context.Context, id string) error {
		delete(f.stored, id)
		return nil
	}
	f.sessions.DeleteByUserFunc = func(ctx context.Context, userID uint) error {
		for id, s := range f.stored {
			if s.UserID == userID {
				delete(f.stored, id)
			}
		}
		return nil
	}

	mintCount := 0
	f.tokens.IssueAccessTokenFunc = func(userID uint, role domain.Role, sessionID string) (string, error) {
		mintCount++
		return fmt.Sprintf("access|%s|%d", sessionID, mintCount), nil
	}
	f.tokens.IssueRefreshTokenFunc = func(userID uint, sessionID string) (string, error) {
		mintCount++
		return fmt.Sprintf("refresh|%s|%d", sessionID, mintCount), nil
	}
	f.tokens.VerifyFunc = func(token string, audience domain.TokenAudience) (*domain.TokenClaims, error) {
		parts := strings.Split(token, "|")
		if len(parts) != 3 {
			return nil, domain.ErrInvalidToken
		}
		kind, sessionID := parts[0], parts[1]
		if _, err := strconv.Atoi(parts[2]); err != nil {
			return nil, domain.ErrInvalidToken
		}
		if (audience == domain.AudienceAccess) != (kind == "access") {
			return nil, domain.ErrInvalidToken
		}
		return &domain.TokenClaims{UserID: 1, SessionID: sessionID, Audience: audience}, nil
	}

	f.users.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		return activeUser(id), nil
	}

	f.svc = NewSessionService(f.sessions, f.users, f.tokens, testSessionConfig(), testLogger())
	return f
}

func TestSessionCreateStoresMintedPair(t *testing.T) {
	f := newSessionFixture()

	result, err := f.svc.Create(context.Background(), activeUser(1), "agent", "10.0.0.1")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	row := f.stored[result.SessionID]
	if row == nil {
		t.Fatal("session row not created")
	}
	if row.Token != result.AccessToken || row.RefreshToken != result.RefreshToken {
		t.Error("stored pair does not match the returned pair")
	}
	if result.ExpiresIn != int64((15 * time.Minute).Seconds()) {
		t.Errorf("ExpiresIn = %d", result.ExpiresIn)
	}
}

func TestSessionValidate(t *testing.T) {
	f := newSessionFixture()

	result, err := f.svc.Create(context.Background(), activeUser(1), "agent", "10.0.0.1")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	sess, err := f.svc.Validate(context.Background(), result.AccessToken)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if sess == nil {
		t.Fatal("valid token rejected")
	}
	if sess.SessionID != result.SessionID {
		t.Errorf("session id = %s, want %s", sess.SessionID, result.SessionID)
	}
}

func TestSessionValidateUnauthenticatedOutcomes(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()

	result, err := f.svc.Create(ctx, activeUser(1), "agent", "10.0.0.1")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	t.Run("garbage token", func(t *testing.T) {
		sess, err := f.svc.Validate(ctx, "garbage")
		if err != nil || sess != nil {
			t.Errorf("got (%v, %v), want (nil, nil)", sess, err)
		}
	})

	t.Run("refresh token is not an access credential", func(t *testing.T) {
		sess, err := f.svc.Validate(ctx, result.RefreshToken)
		if err != nil || sess != nil {
			t.Errorf("got (%v, %v), want (nil, nil)", sess, err)
		}
	})

	t.Run("revoked session", func(t *testing.T) {
		if err := f.svc.Invalidate(ctx, result.SessionID); err != nil {
			t.Fatalf("Invalidate() error: %v", err)
		}
		sess, err := f.svc.Validate(ctx, result.AccessToken)
		if err != nil || sess != nil {
			t.Errorf("got (%v, %v), want (nil, nil)", sess, err)
		}
	})
}

func TestSessionValidateBannedUser(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()

	result, err := f.svc.Create(ctx, activeUser(1), "agent", "10.0.0.1")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	f.users.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		u := activeUser(id)
		u.Status = domain.StatusBanned
		return u, nil
	}

	sess, err := f.svc.Validate(ctx, result.AccessToken)
	if err != nil || sess != nil {
		t.Errorf("banned user's token must validate to (nil, nil), got (%v, %v)", sess, err)
	}
}

func TestSessionValidateExpiredSession(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()

	result, err := f.svc.Create(ctx, activeUser(1), "agent", "10.0.0.1")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	f.svc.WithClock(func() time.Time { return time.Now().Add(25 * time.Hour) })

	sess, err := f.svc.Validate(ctx, result.AccessToken)
	if err != nil || sess != nil {
		t.Errorf("expired session must validate to (nil, nil), got (%v, %v)", sess, err)
	}
}

func TestSessionRefreshRotatesOnce(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()

	first, err := f.svc.Create(ctx, activeUser(1), "agent", "10.0.0.1")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	second, err := f.svc.Refresh(ctx, first.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh() error: %v", err)
	}
	if second.AccessToken == first.AccessToken || second.RefreshToken == first.RefreshToken {
		t.Error("rotation must mint a fresh pair")
	}
	if second.SessionID != first.SessionID {
		t.Error("rotation must keep the session id")
	}

	// The superseded access token no longer matches the row.
	if sess, _ := f.svc.Validate(ctx, first.AccessToken); sess != nil {
		t.Error("superseded access token still validates")
	}
	if sess, err := f.svc.Validate(ctx, second.AccessToken); err != nil || sess == nil {
		t.Error("fresh access token rejected")
	}

	// Replaying the consumed refresh token fails.
	if _, err := f.svc.Refresh(ctx, first.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("replayed refresh token err = %v, want ErrInvalidToken", err)
	}

	// The fresh one still works.
	if _, err := f.svc.Refresh(ctx, second.RefreshToken); err != nil {
		t.Errorf("fresh refresh token rejected: %v", err)
	}
}

func TestSessionRefreshRejectsAccessToken(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()

	result, err := f.svc.Create(ctx, activeUser(1), "agent", "10.0.0.1")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	if _, err := f.svc.Refresh(ctx, result.AccessToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Errorf("access token accepted for refresh, err = %v", err)
	}
}

func TestSessionRefreshInactiveUser(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()

	result, err := f.svc.Create(ctx, activeUser(1), "agent", "10.0.0.1")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	f.users.FindByIDFunc = func(ctx context.Context, id uint) (*domain.User, error) {
		u := activeUser(id)
		u.Status = domain.StatusInactive
		return u, nil
	}

	if _, err := f.svc.Refresh(ctx, result.RefreshToken); !errors.Is(err, domain.ErrAccountNotActive) {
		t.Errorf("err = %v, want ErrAccountNotActive", err)
	}
}

func TestSessionInvalidateAllRevokesEverySession(t *testing.T) {
	f := newSessionFixture()
	ctx := context.Background()

	one, _ := f.svc.Create(ctx, activeUser(1), "laptop", "10.0.0.1")
	two, _ := f.svc.Create(ctx, activeUser(1), "phone", "10.0.0.2")
	other, _ := f.svc.Create(ctx, activeUser(2), "tablet", "10.0.0.3")

	if err := f.svc.InvalidateAll(ctx, 1); err != nil {
		t.Fatalf("InvalidateAll() error: %v", err)
	}

	for _, token := range []string{one.AccessToken, two.AccessToken} {
		if sess, _ := f.svc.Validate(ctx, token); sess != nil {
			t.Error("revoked session still validates")
		}
	}
	if sess, _ := f.svc.Validate(ctx, other.AccessToken); sess == nil {
		t.Error("other user's session revoked")
	}
}
