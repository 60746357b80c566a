package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "gig-marketplace.com/gig-marketplace/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int) {
	e.HTTPErrorHandler = ErrorHandler(h.log)
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	e.GET("/health", h.Health)

	e.POST("/gigs", h.CreateGig)
	e.GET("/gigs/search", h.SearchGigs)
	e.GET("/gigs/:id", h.GetGig)
	e.POST("/gigs/:id/publish", h.PublishGig)
	e.POST("/gigs/:id/start", h.StartGig)
	e.POST("/gigs/:id/complete", h.CompleteGig)
	e.POST("/gigs/:id/cancel", h.CancelGig)

	e.POST("/gigs/:id/applications", h.Apply)
	e.GET("/gigs/:id/applications", h.ListApplications)
	e.POST("/gigs/:id/applications/:appId/accept", h.AcceptApplication)
	e.POST("/gigs/:id/applications/:appId/reject", h.RejectApplication)
	e.POST("/gigs/:id/applications/:appId/withdraw", h.WithdrawApplication)

	e.GET("/users/me/gigs", h.ListMyGigs)
	e.GET("/users/me/applications", h.ListMyApplications)
}
