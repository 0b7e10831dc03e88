package auth

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// JWTService implements domain.TokenService using HS256 over a shared secret.
// The audience claim separates access tokens from refresh tokens so a refresh
// token can never be replayed as an access token.
type JWTService struct {
	secretKey  []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTService creates a new token signer.
func NewJWTService(secretKey, issuer string, accessTTL, refreshTTL time.Duration) *JWTService {
	return &JWTService{
		secretKey:  []byte(secretKey),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// generateJTI creates a unique JWT ID so two tokens minted in the same second
// never collide.
func (j *JWTService) generateJTI() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func (j *JWTService) sign(userID uint, role domain.Role, sessionID string, audience domain.TokenAudience, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":    userID,
		"role":       string(role),
		"session_id": sessionID,
		"iss":        j.issuer,
		"aud":        string(audience),
		"iat":        now.Unix(),
		"exp":        now.Add(ttl).Unix(),
		"jti":        j.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// IssueAccessToken implements domain.TokenService.
func (j *JWTService) IssueAccessToken(userID uint, role domain.Role, sessionID string) (string, error) {
	return j.sign(userID, role, sessionID, domain.AudienceAccess, j.accessTTL)
}

// IssueRefreshToken implements domain.TokenService. Refresh tokens carry no
// role claim; the role is re-read from the session's user on rotation.
func (j *JWTService) IssueRefreshToken(userID uint, sessionID string) (string, error) {
	return j.sign(userID, "", sessionID, domain.AudienceRefresh, j.refreshTTL)
}

// Verify implements domain.TokenService. It is a pure function with no I/O;
// the session-store check is layered by the caller.
func (j *JWTService) Verify(tokenString string, audience domain.TokenAudience) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrInvalidToken
		}
		return j.secretKey, nil
	},
		jwt.WithIssuer(j.issuer),
		jwt.WithAudience(string(audience)),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, domain.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	role, ok := claims["role"].(string)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	sessionID, ok := claims["session_id"].(string)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, domain.ErrInvalidToken
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	return &domain.TokenClaims{
		UserID:    uint(userID),
		Role:      domain.Role(role),
		SessionID: sessionID,
		Audience:  audience,
		IssuedAt:  time.Unix(int64(iat), 0),
		ExpiresAt: time.Unix(int64(exp), 0),
	}, nil
}

var _ domain.TokenService = (*JWTService)(nil)
