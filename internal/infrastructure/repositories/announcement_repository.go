package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
)

// AnnouncementRepositoryImpl implements domain.AnnouncementRepository
// using GORM.
type AnnouncementRepositoryImpl struct {
	db *gorm.DB
}

// AnnouncementRecord is the database model for a broadcast announcement.
type AnnouncementRecord struct {
	ID        string    `gorm:"primaryKey;size:64"`
	Body      string    `gorm:"size:2048"`
	CreatedAt time.Time `gorm:"index"`
}

func (AnnouncementRecord) TableName() string { return "announcements" }

// NewAnnouncementRepository creates a new announcement repository.
func NewAnnouncementRepository(db *gorm.DB) domain.AnnouncementRepository {
	return &AnnouncementRepositoryImpl{db: db}
}

// Create implements domain.AnnouncementRepository.
func (r *AnnouncementRepositoryImpl) Create(ctx context.Context, a *domain.Announcement) error {
	rec := &AnnouncementRecord{ID: a.ID, Body: a.Body, CreatedAt: a.CreatedAt}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return err
	}
	a.CreatedAt = rec.CreatedAt
	return nil
}

// List implements domain.AnnouncementRepository, newest first.
func (r *AnnouncementRepositoryImpl) List(ctx context.Context) ([]domain.Announcement, error) {
	var recs []AnnouncementRecord
	if err := r.db.WithContext(ctx).Order("created_at desc").Find(&recs).Error; err != nil {
		return nil, err
	}
	list := make([]domain.Announcement, len(recs))
	for i, rec := range recs {
		list[i] = domain.Announcement{ID: rec.ID, Body: rec.Body, CreatedAt: rec.CreatedAt}
	}
	return list, nil
}
