// Package v1 exposes the chat and reminder REST API.
package v1

import (
	"github.com/labstack/echo/v4"

	"github.com/chatme-bot/chatme/internal/profile"
	"github.com/chatme-bot/chatme/plugin/ai"
	"github.com/chatme-bot/chatme/plugin/ai/router"
	"github.com/chatme-bot/chatme/server/middleware"
	reminderservice "github.com/chatme-bot/chatme/server/service/reminder"
	"github.com/chatme-bot/chatme/store"
)

type APIV1Service struct {
	Profile  *profile.Profile
	Store    *store.Store
	Reminder *reminderservice.Service
	Router   router.RouterService
	LLM      ai.LLMService

	rateLimiter *middleware.RateLimiter
}

// NewAPIV1Service assembles the API service. llm may be nil in dev setups;
// chat falls back to canned replies.
func NewAPIV1Service(profile *profile.Profile, store *store.Store, reminder *reminderservice.Service, routerService router.RouterService, llm ai.LLMService) *APIV1Service {
	return &APIV1Service{
		Profile:     profile,
		Store:       store,
		Reminder:    reminder,
		Router:      routerService,
		LLM:         llm,
		rateLimiter: middleware.NewRateLimiter(),
	}
}

// Register mounts the API routes on the echo server.
func (s *APIV1Service) Register(e *echo.Echo) {
	group := e.Group("/api/v1")
	group.POST("/chat", s.HandleChat)
	group.GET("/reminders", s.ListReminders)
}
