package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"github.com/Grace-nduta/Airbnb-Platform/internal/infra/config"
	"github.com/Grace-nduta/Airbnb-Platform/internal/infra/obs"
)

type BookingHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	Transition(c *gin.Context)
}

type ListingHTTP interface {
	Catalog(c *gin.Context)
	Overview(c *gin.Context)
	Reviews(c *gin.Context)
}

type ReviewsHTTP interface {
	Submit(c *gin.Context)
}

type MeHTTP interface {
	ListBookings(c *gin.Context)
	ListFavorites(c *gin.Context)
	ListReviews(c *gin.Context)
	ToggleFavorite(c *gin.Context)
}

type HostHTTP interface {
	ListListings(c *gin.Context)
	CreateListing(c *gin.Context)
	UpdateListing(c *gin.Context)
	DeactivateListing(c *gin.Context)
	ListBookings(c *gin.Context)
	Earnings(c *gin.Context)
}

type AdminHTTP interface {
	ListUsers(c *gin.Context)
	ChangeUserRole(c *gin.Context)
	SetUserSuspension(c *gin.Context)
	ApproveListing(c *gin.Context)
	SetListingStatus(c *gin.Context)
	DeleteListing(c *gin.Context)
	Analytics(c *gin.Context)
}

type Handlers struct {
	Auth           AuthHTTP
	Listing        ListingHTTP
	Booking        BookingHTTP
	Reviews        ReviewsHTTP
	Me             MeHTTP
	Host           HostHTTP
	Admin          AdminHTTP
	AuthMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins(cfg.CORSOrigins),
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.AuthMiddleware != nil {
		router.Use(h.AuthMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Auth != nil {
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/logout", h.Auth.Logout)
		api.GET("/auth/me", h.Auth.Me)
	}
	if h.Listing != nil {
		api.GET("/listings", h.Listing.Catalog)
		api.GET("/listings/:id/overview", h.Listing.Overview)
		api.GET("/listings/:id/reviews", h.Listing.Reviews)
	}
	if h.Reviews != nil {
		api.POST("/listings/:id/reviews", h.Reviews.Submit)
	}
	if h.Me != nil {
		api.POST("/listings/:id/favorite", h.Me.ToggleFavorite)
	}
	if h.Booking != nil {
		api.POST("/bookings", h.Booking.Create)
		api.GET("/bookings/:id", h.Booking.Get)
		api.POST("/bookings/:id/transition", h.Booking.Transition)
	}
	if h.Me != nil {
		meGroup := api.Group("/me")
		meGroup.GET("/bookings", h.Me.ListBookings)
		meGroup.GET("/favorites", h.Me.ListFavorites)
		meGroup.GET("/reviews", h.Me.ListReviews)
	}
	if h.Host != nil {
		hostGroup := api.Group("/host")
		hostGroup.GET("/listings", h.Host.ListListings)
		hostGroup.POST("/listings", h.Host.CreateListing)
		hostGroup.PUT("/listings/:id", h.Host.UpdateListing)
		hostGroup.POST("/listings/:id/deactivate", h.Host.DeactivateListing)
		hostGroup.GET("/bookings", h.Host.ListBookings)
		hostGroup.GET("/earnings", h.Host.Earnings)
	}
	if h.Admin != nil {
		adminGroup := api.Group("/admin")
		adminGroup.GET("/users", h.Admin.ListUsers)
		adminGroup.PUT("/users/:id/role", h.Admin.ChangeUserRole)
		adminGroup.PUT("/users/:id/suspension", h.Admin.SetUserSuspension)
		adminGroup.POST("/listings/:id/approve", h.Admin.ApproveListing)
		adminGroup.PUT("/listings/:id/status", h.Admin.SetListingStatus)
		adminGroup.DELETE("/listings/:id", h.Admin.DeleteListing)
		adminGroup.GET("/analytics", h.Admin.Analytics)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func corsOrigins(raw []string) []string {
	if len(raw) == 0 {
		return []string{"*"}
	}
	return raw
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
