package reminder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ChannelSender delivers a notice to a user over one transport.
type ChannelSender interface {
	Send(ctx context.Context, userID string, message string) error
	Name() string
}

// ChannelRegistry fans a notice out to every registered channel. A notice
// counts as delivered when at least one channel accepts it.
type ChannelRegistry struct {
	senders []ChannelSender
	logger  *slog.Logger
	mu      sync.RWMutex
}

// NewChannelRegistry creates an empty registry.
func NewChannelRegistry() *ChannelRegistry {
	return &ChannelRegistry{logger: slog.Default()}
}

// Register adds a channel sender.
func (r *ChannelRegistry) Register(sender ChannelSender) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.senders = append(r.senders, sender)
	r.logger.Info("registered notification channel", "channel", sender.Name())
}

// Send delivers the message through all channels, returning an error only
// when every channel fails.
func (r *ChannelRegistry) Send(ctx context.Context, userID, message string) error {
	r.mu.RLock()
	senders := append([]ChannelSender{}, r.senders...)
	r.mu.RUnlock()

	if len(senders) == 0 {
		return fmt.Errorf("no notification channels registered")
	}

	var lastErr error
	delivered := false
	for _, sender := range senders {
		if err := sender.Send(ctx, userID, message); err != nil {
			lastErr = err
			r.logger.Warn("channel delivery failed",
				"channel", sender.Name(), "user_id", userID, "error", err)
			continue
		}
		delivered = true
	}
	if !delivered {
		return lastErr
	}
	return nil
}

// TelegramSender delivers notices through the Telegram Bot API. The user ID
// doubles as the Telegram chat ID. Sends are rate limited below Telegram's
// 30 messages/second bot ceiling.
type TelegramSender struct {
	token      string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewTelegramSender creates a Telegram sender for the given bot token.
func NewTelegramSender(token string) *TelegramSender {
	return &TelegramSender{
		token:      token,
		baseURL:    "https://api.telegram.org",
		httpClient: &http.Client{Timeout: 10 * time.Second},
		limiter:    rate.NewLimiter(rate.Limit(25), 5),
		logger:     slog.Default(),
	}
}

type telegramMessage struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

func (s *TelegramSender) Send(ctx context.Context, userID string, message string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	body, err := json.Marshal(telegramMessage{ChatID: userID, Text: message})
	if err != nil {
		return fmt.Errorf("failed to marshal telegram message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", s.baseURL, s.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram returned status %d: %s", resp.StatusCode, string(respBody))
	}

	s.logger.Debug("telegram notice sent", "chat_id", userID)
	return nil
}

func (s *TelegramSender) Name() string {
	return "telegram"
}

// LogSender writes notices to the log. Used in dev mode when no bot token
// is configured.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a log-only sender.
func NewLogSender() *LogSender {
	return &LogSender{logger: slog.Default()}
}

func (s *LogSender) Send(_ context.Context, userID string, message string) error {
	s.logger.Info("reminder notice", "user_id", userID, "message", message)
	return nil
}

func (s *LogSender) Name() string {
	return "log"
}
