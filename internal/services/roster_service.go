package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/logger"
)

// RosterService manages the farmer roster and official announcements.
// Broadcast fan-out is best effort; a farmer with an unreachable phone
// does not block the rest of the roster.
type RosterService struct {
	farmers       domain.FarmerRepository
	announcements domain.AnnouncementRepository
	notify        domain.NotificationService
	log           *logger.Logger
}

func NewRosterService(
	farmers domain.FarmerRepository,
	announcements domain.AnnouncementRepository,
	notify domain.NotificationService,
	log *logger.Logger,
) *RosterService {
	return &RosterService{
		farmers:       farmers,
		announcements: announcements,
		notify:        notify,
		log:           log,
	}
}

// ListFarmers returns the roster in registration order.
func (s *RosterService) ListFarmers(ctx context.Context) ([]domain.Farmer, error) {
	return s.farmers.List(ctx)
}

// AddFarmer registers a farmer. Phone numbers are deduplicated; adding a
// phone already on the roster fails with ErrFarmerExists.
func (s *RosterService) AddFarmer(ctx context.Context, name, phone, location string) (*domain.Farmer, error) {
	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || len(phone) < minPhoneLen || !strings.HasPrefix(phone, "+") {
		return nil, domain.ErrInvalidPhone
	}

	if _, err := s.farmers.FindByPhone(ctx, phone); err == nil {
		return nil, domain.ErrFarmerExists
	} else if !errors.Is(err, domain.ErrFarmerNotFound) {
		return nil, err
	}

	farmer := &domain.Farmer{
		ID:       uuid.NewString(),
		Name:     name,
		Phone:    phone,
		Location: strings.TrimSpace(location),
	}
	if err := s.farmers.Create(ctx, farmer); err != nil {
		return nil, err
	}
	s.log.Infow("farmer added to roster", "farmer_id", farmer.ID)
	return farmer, nil
}

// RemoveFarmer deletes a roster entry by id.
func (s *RosterService) RemoveFarmer(ctx context.Context, id string) error {
	return s.farmers.Delete(ctx, id)
}

// Announcements returns past announcements, newest first.
func (s *RosterService) Announcements(ctx context.Context) ([]domain.Announcement, error) {
	return s.announcements.List(ctx)
}

// Broadcast records an announcement and sends it by SMS to every farmer
// on the roster. The announcement is durable even when some sends fail.
func (s *RosterService) Broadcast(ctx context.Context, body string) (*domain.Announcement, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.ErrEmptyAnnouncement
	}

	ann := &domain.Announcement{
		ID:        uuid.NewString(),
		Body:      body,
		CreatedAt: time.Now(),
	}
	if err := s.announcements.Create(ctx, ann); err != nil {
		return nil, err
	}

	roster, err := s.farmers.List(ctx)
	if err != nil {
		s.log.Errorw("broadcast roster read failed", "error", err)
		return ann, nil
	}
	sent := 0
	for _, f := range roster {
		if err := s.notify.SendSMS(f.Phone, body); err != nil {
			s.log.Warnw("broadcast send failed", "farmer_id", f.ID, "error", err)
			continue
		}
		sent++
	}
	s.log.Infow("announcement broadcast", "announcement_id", ann.ID, "recipients", sent, "roster", len(roster))
	return ann, nil
}
