package router

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chatme-bot/chatme/plugin/ai"
)

// LLMClassifier is the fallback layer for inputs the rule matcher could not
// decide on.
type LLMClassifier struct {
	llm                 ai.LLMService
	confidenceThreshold float32
}

// NewLLMClassifier creates a new LLM classifier.
func NewLLMClassifier(llm ai.LLMService) *LLMClassifier {
	return &LLMClassifier{
		llm:                 llm,
		confidenceThreshold: 0.7,
	}
}

// LLMClassifyResult contains the result of LLM classification.
type LLMClassifyResult struct {
	Intent     Intent
	Confidence float32
	Reasoning  string
}

const classificationPrompt = `You are an intent classifier for a personal finance and reminder assistant. Analyze the user's message and decide its intent.

Possible intents:
- set_reminder: the user wants to be reminded of something at some time
- add_income: the user reports money they received
- add_expense: the user reports money they spent
- generate_report: the user asks for a financial summary or statement
- correct_transaction: the user wants to fix a previously recorded entry
- chat: anything else (greetings, questions, small talk)

User message: %s

Respond with JSON containing these fields:
- intent: one of the intents above
- confidence: a number between 0 and 1
- reasoning: one short sentence

Output only the JSON, nothing else.`

// Classify classifies user intent using the LLM.
func (c *LLMClassifier) Classify(ctx context.Context, input string) (*LLMClassifyResult, error) {
	if c.llm == nil {
		return &LLMClassifyResult{
			Intent:     IntentChat,
			Confidence: 0,
			Reasoning:  "LLM client not configured",
		}, nil
	}

	prompt := fmt.Sprintf(classificationPrompt, input)
	response, err := c.llm.Chat(ctx, []ai.Message{ai.UserMessage(prompt)})
	if err != nil {
		return nil, fmt.Errorf("llm classification failed: %w", err)
	}

	result, err := c.parseResponse(response)
	if err != nil {
		return &LLMClassifyResult{
			Intent:     IntentChat,
			Confidence: 0.3,
			Reasoning:  "failed to parse llm response: " + err.Error(),
		}, nil
	}

	if result.Confidence < c.confidenceThreshold {
		result.Intent = IntentChat
	}
	return result, nil
}

type llmResponse struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

func (c *LLMClassifier) parseResponse(response string) (*LLMClassifyResult, error) {
	response = stripMarkdownFence(strings.TrimSpace(response))

	var resp llmResponse
	if err := json.Unmarshal([]byte(response), &resp); err != nil {
		return nil, err
	}

	return &LLMClassifyResult{
		Intent:     stringToIntent(resp.Intent),
		Confidence: float32(resp.Confidence),
		Reasoning:  resp.Reasoning,
	}, nil
}

// stripMarkdownFence unwraps a ```json ... ``` block if the model added one.
func stripMarkdownFence(response string) string {
	if !strings.HasPrefix(response, "```") {
		return response
	}
	lines := strings.Split(response, "\n")
	var jsonLines []string
	inJSON := false
	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inJSON = !inJSON
			continue
		}
		if inJSON {
			jsonLines = append(jsonLines, line)
		}
	}
	return strings.Join(jsonLines, "\n")
}

func stringToIntent(s string) Intent {
	switch strings.ToLower(s) {
	case "set_reminder":
		return IntentSetReminder
	case "add_income":
		return IntentAddIncome
	case "add_expense":
		return IntentAddExpense
	case "generate_report":
		return IntentGenerateReport
	case "correct_transaction":
		return IntentCorrectTransaction
	default:
		return IntentChat
	}
}
