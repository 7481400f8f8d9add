package app

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/config"
	httpx "github.com/Venkat-Kolasani/Oilseed-Mitra/internal/http"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/http/handlers"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/http/middleware"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/logger"
)

func Run(cfg *config.Config, log *logger.Logger) error {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	c, err := NewContainer(cfg, log)
	if err != nil {
		return err
	}

	authH := handlers.NewAuthHandlers(c.AuthGateway, c.TokenSvc)
	profileH := handlers.NewProfileHandlers(c.ProfileStore)
	referenceH := handlers.NewReferenceHandlers(c.Reference, c.ProfileStore)
	officialH := handlers.NewOfficialHandlers(c.Roster)

	jwtMW := middleware.NewAuthMW(c.TokenSvc)
	casbinMW := middleware.NewCasbinMW(c.Casbin.E)

	r := httpx.BuildRouter(authH, profileH, referenceH, officialH, jwtMW, casbinMW)

	policies, _ := c.Casbin.E.GetPolicy()
	if len(policies) == 0 {
		c.Casbin.E.AddPolicy("role_official", "/*", "(GET|POST|DELETE)")
		c.Casbin.E.AddPolicy("role_farmer", "/auth/me", "GET")
		c.Casbin.E.AddPolicy("role_farmer", "/auth/logout", "POST")
		c.Casbin.E.AddPolicy("role_farmer", "/profile", "GET")
		c.Casbin.E.AddPolicy("role_farmer", "/gamification", "GET")
		c.Casbin.E.AddPolicy("role_farmer", "/crops", "GET")
		c.Casbin.E.AddPolicy("role_farmer", "/schemes", "GET")
		c.Casbin.E.AddPolicy("role_farmer", "/schemes/*", "GET")
		c.Casbin.E.AddPolicy("role_farmer", "/mandis", "GET")
		c.Casbin.E.AddPolicy("role_farmer", "/fpos", "GET")
		c.Casbin.E.AddPolicy("role_farmer", "/simulate", "POST")
		c.Casbin.E.AddPolicy("role_farmer", "/announcements", "GET")
		_ = c.Casbin.E.SavePolicy()
		log.Infow("casbin: seeded default policies")
	}

	addr := ":" + cfg.Port
	log.Infow("listening", "addr", addr, "backend", cfg.Backend().String())
	return http.ListenAndServe(addr, r)
}
