// Package ai provides the LLM client used by the intent router and the
// reminder summarizer. All calls go through an OpenAI-compatible API, so
// any OpenRouter-hosted model works.
package ai

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
	"github.com/pkg/errors"

	"github.com/chatme-bot/chatme/internal/profile"
)

// Message represents a chat message.
type Message struct {
	Role    string // system, user, assistant
	Content string
}

// LLMService is the LLM service interface.
type LLMService interface {
	// Chat performs a synchronous chat completion.
	Chat(ctx context.Context, messages []Message) (string, error)
}

type llmService struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewLLMService creates an LLMService from the profile's AI settings.
func NewLLMService(profile *profile.Profile) (LLMService, error) {
	if profile.AIAPIKey == "" {
		return nil, errors.New("ai api key required")
	}

	cfg := openai.DefaultConfig(profile.AIAPIKey)
	if profile.AIBaseURL != "" {
		cfg.BaseURL = profile.AIBaseURL
	}

	return &llmService{
		client:      openai.NewClientWithConfig(cfg),
		model:       profile.AIModel,
		maxTokens:   512,
		temperature: 0.2,
	}, nil
}

func (s *llmService) Chat(ctx context.Context, messages []Message) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		Messages:    convertMessages(messages),
		MaxTokens:   s.maxTokens,
		Temperature: s.temperature,
	})
	if err != nil {
		return "", errors.Wrap(err, "chat completion failed")
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response")
	}
	return resp.Choices[0].Message.Content, nil
}

func convertMessages(messages []Message) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		role := openai.ChatMessageRoleUser
		switch m.Role {
		case "system":
			role = openai.ChatMessageRoleSystem
		case "assistant":
			role = openai.ChatMessageRoleAssistant
		}
		out[i] = openai.ChatCompletionMessage{Role: role, Content: m.Content}
	}
	return out
}

// SystemPrompt builds a system message.
func SystemPrompt(content string) Message {
	return Message{Role: "system", Content: content}
}

// UserMessage builds a user message.
func UserMessage(content string) Message {
	return Message{Role: "user", Content: content}
}
