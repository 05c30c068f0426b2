package v1

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chatme-bot/chatme/plugin/ai"
	"github.com/chatme-bot/chatme/plugin/ai/router"
)

// ChatRequest is one inbound user message.
type ChatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

// ChatResponse carries the bot reply and the intent it was handled under.
type ChatResponse struct {
	Intent string `json:"intent"`
	Reply  string `json:"reply"`
}

const chatFallbackReply = "I'm your reminder assistant. Tell me what to remind you about and when."

// HandleChat routes one message: an in-flight reminder negotiation is
// sticky and absorbs the message regardless of its surface intent;
// otherwise the router classifies it.
func (s *APIV1Service) HandleChat(c echo.Context) error {
	req := &ChatRequest{}
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}
	req.UserID = strings.TrimSpace(req.UserID)
	req.Message = strings.TrimSpace(req.Message)
	if req.UserID == "" || req.Message == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id and message are required")
	}

	// Throttle per user so one noisy client cannot starve the LLM budget.
	// The user ID lives in the body, so the check sits after binding.
	if !s.rateLimiter.Allow(req.UserID) {
		return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
	}

	ctx := c.Request().Context()

	inFlight, err := s.Reminder.InFlight(ctx, req.UserID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load conversation state").SetInternal(err)
	}

	intent := router.IntentSetReminder
	if !inFlight {
		classified, confidence, err := s.Router.ClassifyIntent(ctx, req.Message)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to classify message").SetInternal(err)
		}
		intent = classified
		slog.Debug("message routed", "user_id", req.UserID, "intent", intent, "confidence", confidence)
	}

	reply, err := s.dispatchIntent(ctx, intent, req)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to handle message").SetInternal(err)
	}

	return c.JSON(http.StatusOK, &ChatResponse{
		Intent: string(intent),
		Reply:  reply,
	})
}

func (s *APIV1Service) dispatchIntent(ctx context.Context, intent router.Intent, req *ChatRequest) (string, error) {
	switch intent {
	case router.IntentSetReminder:
		return s.Reminder.HandleMessage(ctx, req.UserID, req.Message)
	case router.IntentAddIncome, router.IntentAddExpense, router.IntentGenerateReport, router.IntentCorrectTransaction:
		// Bookkeeping is not wired up yet; keep the user oriented.
		return "I can't track transactions yet, but I can set reminders for you.", nil
	default:
		return s.chatReply(ctx, req.Message), nil
	}
}

func (s *APIV1Service) chatReply(ctx context.Context, message string) string {
	if s.LLM == nil {
		return chatFallbackReply
	}
	reply, err := s.LLM.Chat(ctx, []ai.Message{
		ai.SystemPrompt("You are a friendly personal reminder assistant. Keep replies to one or two sentences."),
		ai.UserMessage(message),
	})
	if err != nil {
		slog.Warn("chat completion failed, using fallback", "error", err)
		return chatFallbackReply
	}
	return reply
}
