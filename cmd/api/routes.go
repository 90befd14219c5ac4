package main

import (
	"database/sql"

	"studio-voice-backend/internal/auth"
	"studio-voice-backend/internal/booking"
	"studio-voice-backend/internal/httpapi"
	"studio-voice-backend/internal/mw"
	"studio-voice-backend/internal/rbac"
	"studio-voice-backend/internal/reporting"
	"studio-voice-backend/internal/session"
	"studio-voice-backend/internal/telephony"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type routeDeps struct {
	Auth     *auth.Manager
	Voice    *telephony.VoiceWebhookHandler
	Bookings booking.Repository
	Sessions session.Store
	Reports  *reporting.Service
	DB       *sql.DB
	Redis    *redis.Client
}

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, deps routeDeps) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		status := gin.H{"status": "ok"}
		code := 200
		if deps.DB != nil {
			if err := deps.DB.PingContext(c.Request.Context()); err != nil {
				status["postgres"] = "down"
				code = 503
			}
		}
		if deps.Redis != nil {
			if err := deps.Redis.Ping(c.Request.Context()).Err(); err != nil {
				status["redis"] = "down"
				code = 503
			}
		}
		c.JSON(code, status)
	})

	// Provider webhooks (public).
	// NOTE: These endpoints should be protected by Twilio signature validation in production.
	webhooks := r.Group("/webhooks/twilio")
	webhooks.Use(mw.RateLimit(10, 30))
	{
		webhooks.POST("/voice", deps.Voice.HandleCallStart)
		webhooks.POST("/voice/turn", deps.Voice.HandleTurn)
		webhooks.POST("/voice/status", deps.Voice.HandleCallStatus)
	}

	h := httpapi.Handlers{
		Auth:     deps.Auth,
		Bookings: deps.Bookings,
		Sessions: deps.Sessions,
		Reports:  deps.Reports,
	}

	// AUTH routes (token issuance).
	r.POST("/v1/auth/login", h.Login)

	// protected API group
	v1 := r.Group("/v1")
	v1.Use(auth.RequireAccessToken(deps.Auth))
	{
		v1.GET("/me", func(c *gin.Context) {
			sid, _ := auth.StaffID(c.Request.Context())
			role, _ := auth.Role(c.Request.Context())
			c.JSON(200, gin.H{"staff_id": sid, "role": role})
		})

		// BOOKINGS routes
		bookings := v1.Group("/bookings")
		bookings.Use(rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleManager, rbac.RoleFrontDesk))
		{
			bookings.GET("", h.ListBookings)
			bookings.GET("/:booking_id", h.GetBooking)
		}

		// CALLS routes (live session inspection)
		calls := v1.Group("/calls")
		calls.Use(rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleManager))
		{
			calls.GET("/:call_id/session", h.GetCallSession)
		}

		// REPORTS routes
		reports := v1.Group("/reports")
		reports.Use(rbac.RequireAnyRole(rbac.RoleOwner, rbac.RoleManager))
		{
			reports.GET("/bookings", h.GetBookingsSummary)
		}
	}
}
