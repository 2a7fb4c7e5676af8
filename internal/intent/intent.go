// Package intent classifies each user message into a dispatch label. A fixed
// rule table makes the decision deterministically; an optional LLM oracle can
// refine the keyword-driven labels but never overrides session state or
// extracted identifiers.
package intent

import (
	"context"
	"log"
	"strings"
	"time"
	"unicode"

	"github.com/fixdesk/fixdesk/internal/extract"
)

// Intent is a dispatch label for a classified message.
type Intent string

const (
	IntentGreeting             Intent = "greeting"
	IntentRegisterComplaint    Intent = "register_complaint"
	IntentContinueRegistration Intent = "continue_registration"
	IntentCheckStatus          Intent = "check_status"
	IntentCheckStatusByID      Intent = "check_status_by_id"
	IntentCheckStatusByMobile  Intent = "check_status_by_mobile"
	IntentHelp                 Intent = "help"
	IntentClosing              Intent = "closing"
	IntentGeneral              Intent = "general"
)

// Valid reports whether i is one of the known dispatch labels.
func (i Intent) Valid() bool {
	switch i {
	case IntentGreeting, IntentRegisterComplaint, IntentContinueRegistration,
		IntentCheckStatus, IntentCheckStatusByID, IntentCheckStatusByMobile,
		IntentHelp, IntentClosing, IntentGeneral:
		return true
	}
	return false
}

// oracleEligible reports whether the oracle may override this label. Labels
// forced by session state or an extracted identifier stay rule-decided.
func (i Intent) oracleEligible() bool {
	switch i {
	case IntentContinueRegistration, IntentCheckStatusByID, IntentCheckStatusByMobile:
		return false
	}
	return true
}

// Result is a classified message: the label, a confidence in [0,1] and the
// fields extracted from the message.
type Result struct {
	Intent     Intent         `json:"intent"`
	Confidence float64        `json:"confidence"`
	Fields     extract.Fields `json:"fields"`
}

var (
	registrationKeywords = []string{
		"register", "complaint", "file a", "report", "issue", "problem",
		"broken", "not working", "doesn't work", "faulty",
	}
	statusKeywords = []string{
		"status", "track", "update on", "progress", "what happened to",
		"any news", "follow up", "followup",
	}
	helpKeywords = []string{
		"help", "how do i", "how to", "what can you", "guide", "instructions",
	}
	greetingKeywords = []string{
		"hello", "hi", "hey", "good morning", "good afternoon", "good evening",
		"greetings",
	}
	closingKeywords = []string{
		"bye", "goodbye", "thanks", "thank you", "that's all", "thats all",
		"done", "exit", "quit",
	}
)

// classifyRules runs the fixed decision table, first match wins. collecting
// is true when the session is mid-registration waiting on a slot value.
func classifyRules(message string, fields extract.Fields, collecting bool) Result {
	lower := strings.ToLower(strings.TrimSpace(message))

	switch {
	case collecting:
		return Result{Intent: IntentContinueRegistration, Confidence: 0.9, Fields: fields}
	case fields.ComplaintID != "":
		return Result{Intent: IntentCheckStatusByID, Confidence: 0.95, Fields: fields}
	case fields.Mobile != "" && containsAny(lower, statusKeywords):
		return Result{Intent: IntentCheckStatusByMobile, Confidence: 0.9, Fields: fields}
	case containsAny(lower, registrationKeywords):
		return Result{Intent: IntentRegisterComplaint, Confidence: 0.85, Fields: fields}
	case containsAny(lower, statusKeywords):
		return Result{Intent: IntentCheckStatus, Confidence: 0.8, Fields: fields}
	case containsAny(lower, helpKeywords):
		return Result{Intent: IntentHelp, Confidence: 0.7, Fields: fields}
	case matchesKeyword(lower, greetingKeywords):
		return Result{Intent: IntentGreeting, Confidence: 0.7, Fields: fields}
	case matchesKeyword(lower, closingKeywords):
		return Result{Intent: IntentClosing, Confidence: 0.7, Fields: fields}
	case fields.Mobile != "":
		// A bare phone number with no other signal is most likely a status
		// lookup, just a low-confidence one.
		return Result{Intent: IntentCheckStatus, Confidence: 0.6, Fields: fields}
	default:
		return Result{Intent: IntentGeneral, Confidence: 0.5, Fields: fields}
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// matchesKeyword matches single-word keywords on word boundaries so that
// "this" does not trigger "hi" and "maybe" does not trigger "bye". Phrases
// keep substring matching.
func matchesKeyword(lower string, keywords []string) bool {
	var words []string
	for _, k := range keywords {
		if strings.ContainsRune(k, ' ') {
			if strings.Contains(lower, k) {
				return true
			}
			continue
		}
		if words == nil {
			words = strings.FieldsFunc(lower, func(r rune) bool {
				return !unicode.IsLetter(r) && !unicode.IsDigit(r)
			})
		}
		for _, w := range words {
			if w == k {
				return true
			}
		}
	}
	return false
}

// Classifier classifies messages. With a nil Oracle it is purely rule-based
// and never fails; with an oracle the keyword-driven labels may be refined,
// falling back to the rule answer on any oracle error, timeout or invalid
// output.
type Classifier struct {
	Oracle  *Oracle
	Timeout time.Duration
}

// NewClassifier returns a rule-based classifier with an optional oracle.
func NewClassifier(oracle *Oracle) *Classifier {
	return &Classifier{Oracle: oracle, Timeout: 10 * time.Second}
}

// Classify extracts fields from the message and runs the decision table. The
// oracle, when present, is consulted only for labels it is allowed to
// override and only within the configured timeout.
func (c *Classifier) Classify(ctx context.Context, message string, collecting bool) Result {
	fields := extract.Extract(message)
	ruled := classifyRules(message, fields, collecting)

	if c.Oracle == nil || !ruled.Intent.oracleEligible() {
		return ruled
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	octx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	refined, err := c.Oracle.Classify(octx, message)
	if err != nil {
		log.Printf("[intent] oracle unavailable, using rule result: %v", err)
		return ruled
	}
	if !refined.Intent.Valid() || !refined.Intent.oracleEligible() {
		log.Printf("[intent] oracle returned ineligible intent %q, using rule result", refined.Intent)
		return ruled
	}
	refined.Fields = fields
	return refined
}
