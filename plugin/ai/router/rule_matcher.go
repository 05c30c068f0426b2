package router

import (
	"regexp"
	"strings"
)

// RuleMatcher implements rule-based intent matching. It handles the bulk of
// traffic without an LLM round trip.
type RuleMatcher struct {
	reminderKeywords map[string]int
	incomeKeywords   map[string]int
	expenseKeywords  map[string]int
	reportKeywords   map[string]int
	correctKeywords  map[string]int
	timePatterns     []*regexp.Regexp
}

// NewRuleMatcher creates a new rule matcher with predefined keyword weights.
func NewRuleMatcher() *RuleMatcher {
	return &RuleMatcher{
		reminderKeywords: map[string]int{
			// Core keywords (+2)
			"remind": 2, "reminder": 2, "alert": 2, "notify": 2, "don't let me forget": 3,
			// Supporting keywords (+1)
			"today": 1, "tomorrow": 1, "tonight": 1, "next week": 1, "later": 1,
		},
		incomeKeywords: map[string]int{
			"earned": 2, "received": 2, "salary": 2, "income": 2, "got paid": 3, "credited": 2,
			"from": 1, "payment": 1,
		},
		expenseKeywords: map[string]int{
			"spent": 2, "bought": 2, "paid": 2, "expense": 2, "purchased": 2, "debited": 2,
			"for": 1, "on": 1,
		},
		reportKeywords: map[string]int{
			"report": 2, "summary": 2, "statement": 2, "overview": 2, "breakdown": 2,
			"monthly": 1, "weekly": 1, "spending": 1,
		},
		correctKeywords: map[string]int{
			"correct": 2, "mistake": 2, "wrong": 2, "fix": 2, "change that": 2, "undo": 2,
			"actually": 1, "meant": 1,
		},
		timePatterns: []*regexp.Regexp{
			regexp.MustCompile(`\b\d{1,2}(:\d{2})?\s*(am|pm)\b`),
			regexp.MustCompile(`\b(at|by)\s+\d{1,2}\b`),
			regexp.MustCompile(`\b(today|tomorrow|tonight|next week|next month)\b`),
			regexp.MustCompile(`\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`),
			regexp.MustCompile(`\b\d{1,2}(st|nd|rd|th)?\s+of\s+[a-z]+\b`),
		},
	}
}

// Match attempts to classify intent using rule-based matching.
// The third return reports whether any rule matched.
func (m *RuleMatcher) Match(input string) (Intent, float32, bool) {
	lower := strings.ToLower(input)

	reminderScore := m.calculateScore(lower, m.reminderKeywords)
	incomeScore := m.calculateScore(lower, m.incomeKeywords)
	expenseScore := m.calculateScore(lower, m.expenseKeywords)
	reportScore := m.calculateScore(lower, m.reportKeywords)
	correctScore := m.calculateScore(lower, m.correctKeywords)

	// A time expression strengthens a reminder reading, but only when a
	// core reminder keyword is present. "paid rent at 3pm" stays an expense.
	if m.hasTimePattern(lower) && m.hasCoreKeyword(lower, m.reminderKeywords) {
		reminderScore += 2
	}

	type scored struct {
		intent Intent
		score  int
		max    int
	}
	candidates := []scored{
		{IntentSetReminder, reminderScore, 6},
		{IntentCorrectTransaction, correctScore, 5},
		{IntentGenerateReport, reportScore, 5},
		{IntentAddIncome, incomeScore, 5},
		{IntentAddExpense, expenseScore, 5},
	}

	best := scored{intent: IntentChat}
	for _, c := range candidates {
		if c.score > best.score {
			best = c
		}
	}

	if best.score >= 3 {
		return best.intent, m.normalizeConfidence(best.score, best.max), true
	}

	// Too weak to decide, hand over to the LLM.
	return IntentChat, 0, false
}

func (m *RuleMatcher) calculateScore(input string, keywords map[string]int) int {
	score := 0
	for keyword, weight := range keywords {
		if strings.Contains(input, keyword) {
			score += weight
		}
	}
	return score
}

func (m *RuleMatcher) hasCoreKeyword(input string, keywords map[string]int) bool {
	for keyword, weight := range keywords {
		if weight >= 2 && strings.Contains(input, keyword) {
			return true
		}
	}
	return false
}

func (m *RuleMatcher) hasTimePattern(input string) bool {
	for _, pattern := range m.timePatterns {
		if pattern.MatchString(input) {
			return true
		}
	}
	return false
}

func (m *RuleMatcher) normalizeConfidence(score, maxScore int) float32 {
	if score >= maxScore {
		return 0.95
	}
	return float32(score) / float32(maxScore)
}
