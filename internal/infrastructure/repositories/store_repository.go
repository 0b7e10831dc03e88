package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/OmarEhab007/cargoparts-sub000/domain"
)

// StoreRepository implements domain.StoreRepository using GORM.
type StoreRepository struct {
	db *gorm.DB
}

// DBStore is the database model for a seller's store.
type DBStore struct {
	ID        uint   `gorm:"primaryKey"`
	SellerID  uint   `gorm:"uniqueIndex;not null"`
	Name      string `gorm:"size:255;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (DBStore) TableName() string {
	return "stores"
}

// NewStoreRepository creates a new store repository.
func NewStoreRepository(db *gorm.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// FindByID implements domain.StoreRepository.
func (r *StoreRepository) FindByID(ctx context.Context, id uint) (*domain.Store, error) {
	var dbStore DBStore
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbStore).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbStore), nil
}

// FindBySeller implements domain.StoreRepository.
func (r *StoreRepository) FindBySeller(ctx context.Context, sellerID uint) (*domain.Store, error) {
	var dbStore DBStore
	err := r.db.WithContext(ctx).Where("seller_id = ?", sellerID).First(&dbStore).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrStoreNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbStore), nil
}

func (r *StoreRepository) dbToDomain(dbStore *DBStore) *domain.Store {
	return &domain.Store{
		ID:        dbStore.ID,
		SellerID:  dbStore.SellerID,
		Name:      dbStore.Name,
		CreatedAt: dbStore.CreatedAt,
		UpdatedAt: dbStore.UpdatedAt,
	}
}

var _ domain.StoreRepository = (*StoreRepository)(nil)
