package app

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/domain"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/config"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/infrastructure/auth"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/infrastructure/database"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/infrastructure/documents"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/infrastructure/identity"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/infrastructure/notifications"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/infrastructure/repositories"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/logger"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/services"
)

// Container holds all dependencies. NewContainer decides the backend once
// from the credential block; nothing downstream re-checks it.
type Container struct {
	Config *config.Config
	Log    *logger.Logger

	// Infrastructure
	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService

	// Backends
	Identity  domain.IdentityProvider
	Documents domain.DocumentStore

	// Repositories
	FarmerRepo       domain.FarmerRepository
	AnnouncementRepo domain.AnnouncementRepository

	// Services
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	AuthGateway     *services.AuthGateway
	ProfileStore    *services.ProfileStore
	Reference       *services.ReferenceService
	Roster          *services.RosterService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config, log *logger.Logger) (*Container, error) {
	c := &Container{Config: cfg, Log: log}

	backend := cfg.Backend()
	log.Infow("backend selected", "backend", backend.String())

	var err error
	if backend == config.BackendReal {
		err = c.initReal()
	} else {
		err = c.initMock()
	}
	if err != nil {
		return nil, err
	}

	c.Casbin, err = auth.NewCasbinService(c.DB, cfg.CasbinModelPath)
	if err != nil {
		return nil, err
	}

	c.TokenSvc = auth.NewJWTService(cfg.JWTSecret, cfg.JWTIssuer, cfg.AccessTTL)
	c.AuthGateway = services.NewAuthGateway(c.Identity, log)
	c.ProfileStore = services.NewProfileStore(c.Documents, log, cfg.AppID)
	c.Reference = services.NewReferenceService()
	c.Roster = services.NewRosterService(c.FarmerRepo, c.AnnouncementRepo, c.NotificationSvc, log)
	return c, nil
}

// initReal wires postgres, redis, twilio and the OTP provider.
func (c *Container) initReal() error {
	db, err := database.OpenPostgres(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := migrate(db); err != nil {
		return err
	}
	c.DB = db

	rdb := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB).Client
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return err
	}
	c.RedisClient = rdb

	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID, c.Config.TwilioToken, c.Config.TwilioFrom, c.Log)

	c.FarmerRepo = repositories.NewFarmerRepository(db)
	c.AnnouncementRepo = repositories.NewAnnouncementRepository(db)

	c.Identity = identity.NewOTPProvider(rdb, c.NotificationSvc, c.FarmerRepo, c.Log, identity.OTPConfig{
		Length:       c.Config.OTP_Length,
		TTL:          c.Config.OTP_TTL,
		MaxAttempts:  c.Config.OTP_MaxAttempts,
		ResendWindow: c.Config.OTP_ResendWindow,
	})
	c.Documents = documents.NewStore(db, rdb, c.Log, c.Config.AppID)
	return nil
}

// initMock wires the in-process backends plus an in-memory sqlite roster,
// so the service runs end to end with no credentials at all.
func (c *Container) initMock() error {
	db, err := database.OpenSQLite("file::memory:?cache=shared")
	if err != nil {
		return err
	}
	if err := migrate(db); err != nil {
		return err
	}
	c.DB = db

	c.NotificationSvc = notifications.NewTwilioService("", "", "", c.Log)

	c.FarmerRepo = repositories.NewFarmerRepository(db)
	c.AnnouncementRepo = repositories.NewAnnouncementRepository(db)

	c.Identity = identity.NewMock()
	c.Documents = documents.NewMock()

	c.seedMockData()
	return nil
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&repositories.FarmerRecord{},
		&repositories.AnnouncementRecord{},
		&documents.ProfileRecord{},
		&documents.GamificationRecord{},
	)
}

// seedMockData fills the roster and announcement feed so the official
// endpoints have something to show out of the box.
func (c *Container) seedMockData() {
	ctx := context.Background()
	farmers := []domain.Farmer{
		{ID: "farmer-1", Name: "Rajesh Kumar", Phone: "+919876543210", Location: "Alwar, Rajasthan"},
		{ID: "farmer-2", Name: "Suresh Patel", Phone: "+919876543211", Location: "Rajkot, Gujarat"},
		{ID: "farmer-3", Name: "Meena Singh", Phone: "+919876543212", Location: "Indore, MP"},
		{ID: "farmer-4", Name: "Amit Verma", Phone: "+919876543213", Location: "Karnal, Haryana"},
		{ID: "farmer-5", Name: "Priya Sharma", Phone: "+919876543214", Location: "Ludhiana, Punjab"},
		{ID: "farmer-6", Name: "Vijay Singh", Phone: "+919876543215", Location: "Jaipur, Rajasthan"},
		{ID: "farmer-7", Name: "Anita Devi", Phone: "+919876543216", Location: "Patna, Bihar"},
		{ID: "farmer-8", Name: "Ramesh Yadav", Phone: "+919876543217", Location: "Lucknow, UP"},
	}
	for i := range farmers {
		if err := c.FarmerRepo.Create(ctx, &farmers[i]); err != nil {
			c.Log.Warnw("mock roster seed failed", "farmer_id", farmers[i].ID, "error", err)
		}
	}

	announcements := []domain.Announcement{
		{ID: "ann-1", Body: "Market prices for mustard are expected to rise next week.", CreatedAt: time.Now().Add(-48 * time.Hour)},
		{ID: "ann-2", Body: "Last date for PMFBY enrollment is approaching.", CreatedAt: time.Now().Add(-24 * time.Hour)},
	}
	for i := range announcements {
		if err := c.AnnouncementRepo.Create(ctx, &announcements[i]); err != nil {
			c.Log.Warnw("mock announcement seed failed", "announcement_id", announcements[i].ID, "error", err)
		}
	}
}
