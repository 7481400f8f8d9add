package httpx

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/http/handlers"
	"github.com/Venkat-Kolasani/Oilseed-Mitra/internal/http/middleware"
)

func BuildRouter(
	ah *handlers.AuthHandlers,
	ph *handlers.ProfileHandlers,
	rh *handlers.ReferenceHandlers,
	oh *handlers.OfficialHandlers,
	jwtmw *middleware.AuthMW,
	cb *middleware.CasbinMW,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth")
	auth.POST("/otp/request", ah.RequestOTP)
	auth.POST("/otp/verify", ah.VerifyOTP)

	v := r.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())
	v.GET("/auth/me", ah.Me)
	v.POST("/auth/logout", ah.Logout)

	v.GET("/profile", ph.GetProfile)
	v.GET("/gamification", ph.GetGamification)

	v.GET("/crops", rh.ListCrops)
	v.GET("/schemes", rh.ListSchemes)
	v.GET("/schemes/:id", rh.GetScheme)
	v.GET("/mandis", rh.ListMandiPrices)
	v.GET("/fpos", rh.ListFPOs)
	v.POST("/simulate", rh.Simulate)

	v.GET("/announcements", oh.ListAnnouncements)

	official := r.Group("/official").Use(jwtmw.WithJWT(), cb.Enforce())
	official.GET("/farmers", oh.ListFarmers)
	official.POST("/farmers", oh.AddFarmer)
	official.DELETE("/farmers/:id", oh.RemoveFarmer)
	official.POST("/announcements", oh.Broadcast)

	return r
}
