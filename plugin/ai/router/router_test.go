package router

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRuleMatcher(t *testing.T) {
	m := NewRuleMatcher()

	tests := []struct {
		input       string
		wantIntent  Intent
		wantMatched bool
	}{
		{"remind me to call mum tomorrow at 3pm", IntentSetReminder, true},
		{"set a reminder for next week", IntentSetReminder, true},
		{"remind me to call the plumber on friday", IntentSetReminder, true},
		{"i spent 2000 on fuel", IntentAddExpense, true},
		{"i received my salary today", IntentAddIncome, true},
		{"send me my monthly report", IntentGenerateReport, true},
		{"that entry is wrong, fix it", IntentCorrectTransaction, true},
		{"hello", IntentChat, false},
		{"how is the weather", IntentChat, false},
	}
	for _, tt := range tests {
		intent, confidence, matched := m.Match(tt.input)
		assert.Equal(t, tt.wantMatched, matched, "input: %s", tt.input)
		if tt.wantMatched {
			assert.Equal(t, tt.wantIntent, intent, "input: %s", tt.input)
			assert.Greater(t, confidence, float32(0), "input: %s", tt.input)
		}
	}
}

func TestRuleMatcher_TimePatternNeedsReminderKeyword(t *testing.T) {
	m := NewRuleMatcher()

	// A bare time expression is not a reminder by itself.
	intent, _, matched := m.Match("i paid for groceries at 3pm")
	require.True(t, matched)
	assert.Equal(t, IntentAddExpense, intent)
}

func TestClassifierParseResponse(t *testing.T) {
	c := NewLLMClassifier(nil)

	result, err := c.parseResponse(`{"intent": "set_reminder", "confidence": 0.9, "reasoning": "asks to be reminded"}`)
	require.NoError(t, err)
	assert.Equal(t, IntentSetReminder, result.Intent)
	assert.InDelta(t, 0.9, float64(result.Confidence), 0.001)

	// Markdown-fenced JSON is unwrapped.
	result, err = c.parseResponse("```json\n{\"intent\": \"add_expense\", \"confidence\": 0.8, \"reasoning\": \"money spent\"}\n```")
	require.NoError(t, err)
	assert.Equal(t, IntentAddExpense, result.Intent)

	_, err = c.parseResponse("not json at all")
	assert.Error(t, err)
}

func TestServiceWithoutClassifier(t *testing.T) {
	s := NewRouterService(NewRuleMatcher(), nil)

	intent, _, err := s.ClassifyIntent(context.Background(), "remind me tomorrow at noon")
	require.NoError(t, err)
	assert.Equal(t, IntentSetReminder, intent)

	intent, _, err = s.ClassifyIntent(context.Background(), "what a lovely day")
	require.NoError(t, err)
	assert.Equal(t, IntentChat, intent)
}
