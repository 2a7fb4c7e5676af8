package intent

import (
	"context"
	"errors"
	"testing"

	"github.com/fixdesk/fixdesk/internal/llm"
)

func TestRuleTableOrder(t *testing.T) {
	tests := []struct {
		name       string
		message    string
		collecting bool
		want       Intent
		confidence float64
	}{
		{"collecting wins over everything", "what is the status of CMP1A2B3C4D", true, IntentContinueRegistration, 0.9},
		{"complaint id", "what is the status of CMP1A2B3C4D", false, IntentCheckStatusByID, 0.95},
		{"mobile plus status keyword", "check the status for my number 9876543210", false, IntentCheckStatusByMobile, 0.9},
		{"registration keyword", "my laptop is broken", false, IntentRegisterComplaint, 0.85},
		{"registration beats greeting", "hi, my laptop is broken", false, IntentRegisterComplaint, 0.85},
		{"status keyword alone", "any news on my ticket", false, IntentCheckStatus, 0.8},
		{"help", "what can you do for me", false, IntentHelp, 0.7},
		{"greeting", "hello there", false, IntentGreeting, 0.7},
		{"closing", "ok goodbye", false, IntentClosing, 0.7},
		{"bare phone number", "9876543210", false, IntentCheckStatus, 0.6},
		{"default general", "tell me about the weather", false, IntentGeneral, 0.5},
	}

	c := NewClassifier(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(context.Background(), tt.message, tt.collecting)
			if got.Intent != tt.want {
				t.Errorf("Classify(%q) intent = %q, want %q", tt.message, got.Intent, tt.want)
			}
			if got.Confidence != tt.confidence {
				t.Errorf("Classify(%q) confidence = %v, want %v", tt.message, got.Confidence, tt.confidence)
			}
		})
	}
}

func TestClassifyCarriesFields(t *testing.T) {
	c := NewClassifier(nil)
	got := c.Classify(context.Background(), "check the status for 9876543210", false)
	if got.Fields.Mobile != "9876543210" {
		t.Errorf("Fields.Mobile = %q, want 9876543210", got.Fields.Mobile)
	}
}

type stubProvider struct {
	content string
	err     error
	calls   int
}

func (s *stubProvider) Complete(_ context.Context, _ llm.CompletionRequest) (*llm.CompletionResponse, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &llm.CompletionResponse{Content: s.content}, nil
}

func (s *stubProvider) Name() string { return "stub" }

func TestOracleRefinesGeneral(t *testing.T) {
	stub := &stubProvider{content: `{"intent": "register_complaint", "confidence": 0.8}`}
	c := NewClassifier(NewOracle(stub, "test-model"))

	got := c.Classify(context.Background(), "the thing on my desk is acting weird", false)
	if got.Intent != IntentRegisterComplaint {
		t.Errorf("intent = %q, want register_complaint", got.Intent)
	}
	if got.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", got.Confidence)
	}
	if stub.calls != 1 {
		t.Errorf("oracle calls = %d, want 1", stub.calls)
	}
}

func TestOracleSkippedForStateDecidedLabels(t *testing.T) {
	stub := &stubProvider{content: `{"intent": "general", "confidence": 0.9}`}
	c := NewClassifier(NewOracle(stub, "test-model"))

	got := c.Classify(context.Background(), "status of CMP1A2B3C4D please", false)
	if got.Intent != IntentCheckStatusByID {
		t.Errorf("intent = %q, want check_status_by_id", got.Intent)
	}
	if stub.calls != 0 {
		t.Errorf("oracle calls = %d, want 0", stub.calls)
	}
}

func TestOracleErrorFallsBackToRules(t *testing.T) {
	stub := &stubProvider{err: errors.New("connection refused")}
	c := NewClassifier(NewOracle(stub, "test-model"))

	got := c.Classify(context.Background(), "my printer is broken", false)
	if got.Intent != IntentRegisterComplaint {
		t.Errorf("intent = %q, want register_complaint fallback", got.Intent)
	}
	if got.Confidence != 0.85 {
		t.Errorf("confidence = %v, want 0.85", got.Confidence)
	}
}

func TestOracleGarbageFallsBackToRules(t *testing.T) {
	for _, content := range []string{
		"not json at all",
		`{"intent": "launch_rockets", "confidence": 0.99}`,
		`{"intent": "general", "confidence": 7.5}`,
		`{"intent": "continue_registration", "confidence": 0.9}`,
	} {
		stub := &stubProvider{content: content}
		c := NewClassifier(NewOracle(stub, "test-model"))

		got := c.Classify(context.Background(), "hello there", false)
		if got.Intent != IntentGreeting {
			t.Errorf("content %q: intent = %q, want greeting fallback", content, got.Intent)
		}
	}
}
