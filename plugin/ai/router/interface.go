// Package router classifies the intent of an incoming chat message so the
// server can hand it to the right handler. Rule-based matching runs first;
// ambiguous inputs fall back to the LLM.
package router

import "context"

// RouterService defines the intent routing service interface.
type RouterService interface {
	// ClassifyIntent classifies user intent from input text.
	// Returns the intent and a confidence in [0, 1].
	ClassifyIntent(ctx context.Context, input string) (Intent, float32, error)
}

// Intent represents the type of user intent.
type Intent string

const (
	IntentSetReminder        Intent = "set_reminder"
	IntentAddIncome          Intent = "add_income"
	IntentAddExpense         Intent = "add_expense"
	IntentGenerateReport     Intent = "generate_report"
	IntentCorrectTransaction Intent = "correct_transaction"
	IntentChat               Intent = "chat"
)
