package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// SessionRepository implements domain.SessionRepository using GORM. Sessions
// live in the relational store so revocation survives process restarts.
type SessionRepository struct {
	db *gorm.DB
}

// DBSession is the database model for Session. Token and RefreshToken hold
// the currently valid pair; rotation overwrites both.
type DBSession struct {
	ID           string `gorm:"primaryKey;size:64"`
	UserID       uint   `gorm:"index;not null"`
	Token        string `gorm:"size:1024;not null"`
	RefreshToken string `gorm:"size:1024;not null"`
	UserAgent    string `gorm:"size:512"`
	IPAddress    string `gorm:"size:64"`
	ExpiresAt    time.Time `gorm:"index;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM.
func (DBSession) TableName() string {
	return "sessions"
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create implements domain.SessionRepository.
func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) error {
	return r.db.WithContext(ctx).Create(r.domainToDB(session)).Error
}

// FindByID implements domain.SessionRepository.
func (r *SessionRepository) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	var dbSession DBSession
	err := r.db.WithContext(ctx).Where("id = ?", sessionID).First(&dbSession).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbSession), nil
}

// UpdateTokens rotates the stored token pair and extends the expiry.
func (r *SessionRepository) UpdateTokens(ctx context.Context, sessionID, token, refreshToken string, expiresAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&DBSession{}).Where("id = ?", sessionID).
		Updates(map[string]any{
			"token":         token,
			"refresh_token": refreshToken,
			"expires_at":    expiresAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// Delete implements domain.SessionRepository.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Where("id = ?", sessionID).Delete(&DBSession{}).Error
}

// DeleteByUser is the revocation primitive: it removes every session the
// user holds.
func (r *SessionRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&DBSession{}).Error
}

// DeleteExpired removes sessions past their expiry. Invoked by the periodic
// cleanup sweep.
func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&DBSession{})
	return res.RowsAffected, res.Error
}

func (r *SessionRepository) domainToDB(session *domain.Session) *DBSession {
	return &DBSession{
		ID:           session.ID,
		UserID:       session.UserID,
		Token:        session.Token,
		RefreshToken: session.RefreshToken,
		UserAgent:    session.UserAgent,
		IPAddress:    session.IPAddress,
		ExpiresAt:    session.ExpiresAt,
		CreatedAt:    session.CreatedAt,
		UpdatedAt:    session.UpdatedAt,
	}
}

func (r *SessionRepository) dbToDomain(dbSession *DBSession) *domain.Session {
	return &domain.Session{
		ID:           dbSession.ID,
		UserID:       dbSession.UserID,
		Token:        dbSession.Token,
		RefreshToken: dbSession.RefreshToken,
		UserAgent:    dbSession.UserAgent,
		IPAddress:    dbSession.IPAddress,
		ExpiresAt:    dbSession.ExpiresAt,
		CreatedAt:    dbSession.CreatedAt,
		UpdatedAt:    dbSession.UpdatedAt,
	}
}

var _ domain.SessionRepository = (*SessionRepository)(nil)
