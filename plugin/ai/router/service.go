package router

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/chatme-bot/chatme/plugin/ai/cache"
)

type service struct {
	rules      *RuleMatcher
	classifier *LLMClassifier
	cache      *cache.LRUCache
}

// NewRouterService creates the two-layer routing service. classifier may be
// nil when no LLM is configured; ambiguous inputs then fall through to chat.
func NewRouterService(rules *RuleMatcher, classifier *LLMClassifier) RouterService {
	return &service{
		rules:      rules,
		classifier: classifier,
		cache:      cache.NewLRUCache(2048, time.Hour),
	}
}

func (s *service) ClassifyIntent(ctx context.Context, input string) (Intent, float32, error) {
	if intent, confidence, matched := s.rules.Match(input); matched {
		slog.Debug("intent matched by rules", "intent", intent, "confidence", confidence)
		return intent, confidence, nil
	}

	if s.classifier == nil {
		return IntentChat, 0, nil
	}

	// Repeated phrasings skip the LLM round trip.
	key := strings.ToLower(strings.TrimSpace(input))
	if cached, ok := s.cache.Get(key); ok {
		return Intent(cached), 0.9, nil
	}

	result, err := s.classifier.Classify(ctx, input)
	if err != nil {
		slog.Warn("llm intent classification failed, defaulting to chat", "error", err)
		return IntentChat, 0, nil
	}
	s.cache.Set(key, []byte(result.Intent), 0)

	slog.Debug("intent classified by llm", "intent", result.Intent, "confidence", result.Confidence, "reasoning", result.Reasoning)
	return result.Intent, result.Confidence, nil
}
