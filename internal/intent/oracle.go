package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fixdesk/fixdesk/internal/llm"
)

const oracleSystemPrompt = `You classify a single customer-support message into exactly one intent.

Allowed intents:
- register_complaint: the user wants to report a new problem
- check_status: the user asks about an existing complaint
- help: the user asks what you can do or how something works
- greeting: a salutation with no other request
- closing: the user is wrapping up the conversation
- general: anything else

Respond with JSON only, no prose:
{"intent": "<one of the allowed intents>", "confidence": <number between 0 and 1>}`

// Oracle refines rule-based classification through an LLM in JSON mode. Its
// output is schema-checked; callers fall back to the rule result whenever it
// fails or answers outside the allowed set.
type Oracle struct {
	provider llm.Provider
	model    string
}

// NewOracle wraps an LLM provider as an intent oracle.
func NewOracle(provider llm.Provider, model string) *Oracle {
	return &Oracle{provider: provider, model: model}
}

type oracleAnswer struct {
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}

// Classify asks the model for an intent label. It returns an error for
// transport failures, unparseable output, unknown labels and out-of-range
// confidence; the caller decides the fallback.
func (o *Oracle) Classify(ctx context.Context, message string) (Result, error) {
	resp, err := o.provider.Complete(ctx, llm.CompletionRequest{
		Model: o.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: oracleSystemPrompt},
			{Role: llm.RoleUser, Content: message},
		},
		MaxTokens:   128,
		Temperature: 0,
		JSONMode:    true,
	})
	if err != nil {
		return Result{}, fmt.Errorf("oracle completion: %w", err)
	}

	var answer oracleAnswer
	if err := json.Unmarshal([]byte(strings.TrimSpace(resp.Content)), &answer); err != nil {
		return Result{}, fmt.Errorf("oracle returned invalid JSON: %w", err)
	}
	in := Intent(answer.Intent)
	if !in.Valid() {
		return Result{}, fmt.Errorf("oracle returned unknown intent %q", answer.Intent)
	}
	if answer.Confidence < 0 || answer.Confidence > 1 {
		return Result{}, fmt.Errorf("oracle confidence %v out of range", answer.Confidence)
	}
	return Result{Intent: in, Confidence: answer.Confidence}, nil
}
