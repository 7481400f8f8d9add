package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
)

// FarmerRepositoryImpl implements domain.FarmerRepository using GORM.
type FarmerRepositoryImpl struct {
	db *gorm.DB
}

// FarmerRecord is the database model for a roster entry.
type FarmerRecord struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"size:255"`
	Phone     string `gorm:"uniqueIndex;size:32"`
	Location  string `gorm:"size:255"`
	CreatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (FarmerRecord) TableName() string { return "farmers" }

// NewFarmerRepository creates a new farmer repository.
func NewFarmerRepository(db *gorm.DB) domain.FarmerRepository {
	return &FarmerRepositoryImpl{db: db}
}

// Create implements domain.FarmerRepository.
func (r *FarmerRepositoryImpl) Create(ctx context.Context, farmer *domain.Farmer) error {
	rec := &FarmerRecord{
		ID:        farmer.ID,
		Name:      farmer.Name,
		Phone:     farmer.Phone,
		Location:  farmer.Location,
		CreatedAt: farmer.CreatedAt,
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return err
	}
	farmer.CreatedAt = rec.CreatedAt
	return nil
}

// FindByID implements domain.FarmerRepository.
func (r *FarmerRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Farmer, error) {
	var rec FarmerRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrFarmerNotFound
	}
	if err != nil {
		return nil, err
	}
	return recordToFarmer(&rec), nil
}

// FindByPhone implements domain.FarmerRepository.
func (r *FarmerRepositoryImpl) FindByPhone(ctx context.Context, phone string) (*domain.Farmer, error) {
	var rec FarmerRecord
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrFarmerNotFound
	}
	if err != nil {
		return nil, err
	}
	return recordToFarmer(&rec), nil
}

// List implements domain.FarmerRepository, oldest registrations first.
func (r *FarmerRepositoryImpl) List(ctx context.Context) ([]domain.Farmer, error) {
	var recs []FarmerRecord
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&recs).Error; err != nil {
		return nil, err
	}
	farmers := make([]domain.Farmer, len(recs))
	for i := range recs {
		farmers[i] = *recordToFarmer(&recs[i])
	}
	return farmers, nil
}

// Delete implements domain.FarmerRepository.
func (r *FarmerRepositoryImpl) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&FarmerRecord{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrFarmerNotFound
	}
	return nil
}

func recordToFarmer(rec *FarmerRecord) *domain.Farmer {
	return &domain.Farmer{
		ID:        rec.ID,
		Name:      rec.Name,
		Phone:     rec.Phone,
		Location:  rec.Location,
		CreatedAt: rec.CreatedAt,
	}
}
