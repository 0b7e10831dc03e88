package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// UserRepository implements domain.UserRepository using GORM.
type UserRepository struct {
	db *gorm.DB
}

// DBUser is the database model for User. Email is stored lowercased so the
// unique index enforces case-insensitive uniqueness.
type DBUser struct {
	ID            uint                `gorm:"primaryKey"`
	Email         string              `gorm:"uniqueIndex;size:255;not null"`
	Phone         *string             `gorm:"uniqueIndex;size:32"`
	Name          string              `gorm:"size:255"`
	Role          string              `gorm:"index;size:32;not null"`
	Status        string              `gorm:"index;size:32;not null"`
	Locale        string              `gorm:"size:8"`
	EmailVerified domain.Verification `gorm:"column:email_verified_at;type:timestamptz"`
	PhoneVerified domain.Verification `gorm:"column:phone_verified_at;type:timestamptz"`
	LastLoginAt   *time.Time
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

// TableName returns the table name for GORM.
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create implements domain.UserRepository.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		return err
	}
	user.ID = dbUser.ID
	return nil
}

// FindByEmail implements domain.UserRepository. Lookup is case-insensitive.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByPhone implements domain.UserRepository.
func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// FindByID implements domain.UserRepository.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbUser), nil
}

// Update implements domain.UserRepository.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(r.domainToDB(user)).Error
}

// UpdateRole implements domain.UserRepository.
func (r *UserRepository) UpdateRole(ctx context.Context, userID uint, role domain.Role) error {
	return r.updateColumns(ctx, userID, map[string]any{"role": string(role)})
}

// UpdateStatus implements domain.UserRepository.
func (r *UserRepository) UpdateStatus(ctx context.Context, userID uint, status domain.UserStatus) error {
	return r.updateColumns(ctx, userID, map[string]any{"status": string(status)})
}

// MarkEmailVerified implements domain.UserRepository.
func (r *UserRepository) MarkEmailVerified(ctx context.Context, userID uint, at time.Time) error {
	return r.updateColumns(ctx, userID, map[string]any{"email_verified_at": at})
}

// MarkPhoneVerified implements domain.UserRepository.
func (r *UserRepository) MarkPhoneVerified(ctx context.Context, userID uint, at time.Time) error {
	return r.updateColumns(ctx, userID, map[string]any{"phone_verified_at": at})
}

// TouchLastLogin implements domain.UserRepository.
func (r *UserRepository) TouchLastLogin(ctx context.Context, userID uint, at time.Time) error {
	return r.updateColumns(ctx, userID, map[string]any{"last_login_at": at})
}

// CountActiveByRole implements domain.UserRepository.
func (r *UserRepository) CountActiveByRole(ctx context.Context, role domain.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&DBUser{}).
		Where("role = ? AND status = ?", string(role), string(domain.StatusActive)).
		Count(&count).Error
	return count, err
}

func (r *UserRepository) updateColumns(ctx context.Context, userID uint, cols map[string]any) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", userID).Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) domainToDB(user *domain.User) *DBUser {
	var phone *string
	if user.Phone != "" {
		p := user.Phone
		phone = &p
	}
	return &DBUser{
		ID:            user.ID,
		Email:         strings.ToLower(user.Email),
		Phone:         phone,
		Name:          user.Name,
		Role:          string(user.Role),
		Status:        string(user.Status),
		Locale:        user.Locale,
		EmailVerified: user.EmailVerified,
		PhoneVerified: user.PhoneVerified,
		LastLoginAt:   user.LastLoginAt,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}

func (r *UserRepository) dbToDomain(dbUser *DBUser) *domain.User {
	phone := ""
	if dbUser.Phone != nil {
		phone = *dbUser.Phone
	}
	return &domain.User{
		ID:            dbUser.ID,
		Email:         dbUser.Email,
		Phone:         phone,
		Name:          dbUser.Name,
		Role:          domain.Role(dbUser.Role),
		Status:        domain.UserStatus(dbUser.Status),
		Locale:        dbUser.Locale,
		EmailVerified: dbUser.EmailVerified,
		PhoneVerified: dbUser.PhoneVerified,
		LastLoginAt:   dbUser.LastLoginAt,
		CreatedAt:     dbUser.CreatedAt,
		UpdatedAt:     dbUser.UpdatedAt,
	}
}

var _ domain.UserRepository = (*UserRepository)(nil)
