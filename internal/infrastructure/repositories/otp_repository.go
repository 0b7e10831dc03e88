package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// OTPRepository implements domain.OTPRepository using GORM.
type OTPRepository struct {
	db *gorm.DB
}

// DBOTPCode is the database model for OTPCode.
type DBOTPCode struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index:idx_otp_user_purpose;not null"`
	Code      string `gorm:"size:16;not null"`
	Purpose   string `gorm:"index:idx_otp_user_purpose;size:32;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	Attempts  int    `gorm:"not null;default:0"`
	Verified  bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM.
func (DBOTPCode) TableName() string {
	return "otp_codes"
}

// NewOTPRepository creates a new OTP repository.
func NewOTPRepository(db *gorm.DB) *OTPRepository {
	return &OTPRepository{db: db}
}

// ReplaceActive deletes prior unverified codes for the (user, purpose) pair
// and inserts the new one in a single transaction, preserving the
// at-most-one-active invariant under concurrent re-issuance.
func (r *OTPRepository) ReplaceActive(ctx context.Context, code *domain.OTPCode) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND purpose = ? AND verified = ?",
			code.UserID, string(code.Purpose), false).
			Delete(&DBOTPCode{}).Error; err != nil {
			return err
		}
		dbCode := r.domainToDB(code)
		if err := tx.Create(dbCode).Error; err != nil {
			return err
		}
		code.ID = dbCode.ID
		return nil
	})
}

// FindActive returns the newest unexpired, unverified code for the pair.
func (r *OTPRepository) FindActive(ctx context.Context, userID uint, purpose domain.OTPPurpose, now time.Time) (*domain.OTPCode, error) {
	var dbCode DBOTPCode
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ? AND verified = ? AND expires_at >= ?",
			userID, string(purpose), false, now).
		Order("created_at DESC").
		First(&dbCode).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOTPInvalidOrExpired
		}
		return nil, err
	}
	return r.dbToDomain(&dbCode), nil
}

// IncrementAttempts implements domain.OTPRepository.
func (r *OTPRepository) IncrementAttempts(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&DBOTPCode{}).Where("id = ?", id).
		UpdateColumn("attempts", gorm.Expr("attempts + 1")).Error
}

// MarkVerified implements domain.OTPRepository.
func (r *OTPRepository) MarkVerified(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Model(&DBOTPCode{}).Where("id = ?", id).
		Update("verified", true).Error
}

// Delete implements domain.OTPRepository.
func (r *OTPRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&DBOTPCode{}).Error
}

// DeleteByPurpose removes every code for the pair, verified or not. Callers
// use it to consume codes once the dependent action completed.
func (r *OTPRepository) DeleteByPurpose(ctx context.Context, userID uint, purpose domain.OTPPurpose) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND purpose = ?", userID, string(purpose)).
		Delete(&DBOTPCode{}).Error
}

// DeleteExpired removes all codes past their expiry regardless of
// verification state. Invoked by the periodic cleanup sweep.
func (r *OTPRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&DBOTPCode{})
	return res.RowsAffected, res.Error
}

func (r *OTPRepository) domainToDB(code *domain.OTPCode) *DBOTPCode {
	return &DBOTPCode{
		ID:        code.ID,
		UserID:    code.UserID,
		Code:      code.Code,
		Purpose:   string(code.Purpose),
		ExpiresAt: code.ExpiresAt,
		Attempts:  code.Attempts,
		Verified:  code.Verified,
		CreatedAt: code.CreatedAt,
	}
}

func (r *OTPRepository) dbToDomain(dbCode *DBOTPCode) *domain.OTPCode {
	return &domain.OTPCode{
		ID:        dbCode.ID,
		UserID:    dbCode.UserID,
		Code:      dbCode.Code,
		Purpose:   domain.OTPPurpose(dbCode.Purpose),
		ExpiresAt: dbCode.ExpiresAt,
		Attempts:  dbCode.Attempts,
		Verified:  dbCode.Verified,
		CreatedAt: dbCode.CreatedAt,
	}
}

var _ domain.OTPRepository = (*OTPRepository)(nil)
