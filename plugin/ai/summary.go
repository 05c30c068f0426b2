package ai

import (
	"context"
	"log/slog"
	"strings"
)

const summaryPrompt = `Summarize what the user wants to be reminded about in one short first-person sentence, as if the user is speaking. Example: "I'll call my landlord about the leaking roof." Do not mention the date or time. Output only the sentence.`

const defaultSummary = "I've set your reminder."

// SummarizeReminder condenses the negotiation messages into a one-line
// first-person summary of the task. Falls back to a fixed line when no LLM
// is configured or the call fails.
func SummarizeReminder(ctx context.Context, llm LLMService, messages []string) string {
	if llm == nil || len(messages) == 0 {
		return defaultSummary
	}

	summary, err := llm.Chat(ctx, []Message{
		SystemPrompt(summaryPrompt),
		UserMessage(strings.Join(messages, "\n")),
	})
	if err != nil {
		slog.Warn("reminder summary failed, using fallback", "error", err)
		return defaultSummary
	}

	summary = strings.TrimSpace(strings.Trim(strings.TrimSpace(summary), `"`))
	if summary == "" {
		return defaultSummary
	}
	return summary
}
