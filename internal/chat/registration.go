package chat

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"
	"unicode"

	"github.com/fixdesk/fixdesk/internal/extract"
	"github.com/fixdesk/fixdesk/internal/knowledge"
	"github.com/fixdesk/fixdesk/internal/session"
)

var mobilePattern = regexp.MustCompile(`^[1-9]\d{9,14}$`)

// invalidNames are bare replies that validators must never accept as a name.
var invalidNames = map[string]bool{
	"help": true, "what": true, "yes": true, "no": true, "ok": true,
}

func validName(name string) bool {
	name = strings.TrimSpace(name)
	if len(name) < 2 || len(name) > 50 {
		return false
	}
	if invalidNames[strings.ToLower(name)] {
		return false
	}
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

func validMobile(mobile string) bool {
	return mobilePattern.MatchString(mobile)
}

func validDetails(details string) bool {
	return len(strings.TrimSpace(details)) >= 10
}

// detailIndicators mark a message as a problem description rather than an
// answer to a slot prompt.
var detailIndicators = []string{
	"not working", "broken", "issue", "problem", "slow", "error", "crash",
	"stopped", "failed", "damaged", "faulty", "poor", "down", "won't", "wont",
	"doesn't", "doesnt", "cannot", "can't",
}

// detectDetails reports whether the message reads like a complaint
// description worth capturing as the details slot.
func detectDetails(message string) bool {
	trimmed := strings.TrimSpace(message)
	if len(trimmed) < 10 {
		return false
	}
	lower := strings.ToLower(trimmed)
	for _, ind := range detailIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

// mergeFields fills empty slots from extracted fields and, for details, from
// the message itself. Filled slots are never overwritten.
func mergeFields(c *session.Context, fields extract.Fields, message string) {
	if c.Name == "" && validName(fields.Name) {
		c.Name = strings.TrimSpace(fields.Name)
	}
	if c.Mobile == "" && validMobile(fields.Mobile) {
		c.Mobile = fields.Mobile
	}
	// A message that also announces a name or number is not a clean problem
	// description; ask for one instead of storing the whole mixed message.
	if c.Details == "" && fields.Name == "" && fields.Mobile == "" && detectDetails(message) {
		c.Details = strings.TrimSpace(message)
	}
}

// nextStep returns the collection step for the first unfilled slot.
func nextStep(c *session.Context) session.Step {
	switch {
	case c.Name == "":
		return session.StepCollectingName
	case c.Mobile == "":
		return session.StepCollectingMobile
	default:
		return session.StepCollectingDetails
	}
}

func promptFor(step session.Step, c *session.Context) string {
	switch step {
	case session.StepCollectingName:
		return "Could you please tell me your full name?"
	case session.StepCollectingMobile:
		if c.Name != "" {
			return fmt.Sprintf("Thanks, %s! Could you share your mobile number so we can reach you?", c.Name)
		}
		return "Could you share your mobile number so we can reach you?"
	default:
		return "Got it. Please describe the issue you're facing in a sentence or two."
	}
}

// startRegistration opens the slot-filling flow. Fields already present in
// the opening message are captured up front so the user is never asked for
// something they have already provided.
func (e *Engine) startRegistration(ctx context.Context, sess *session.Session, message string, fields extract.Fields) (string, string) {
	c := &sess.Context
	mergeFields(c, fields, message)

	// Opportunistically reuse what earlier turns taught us about the user.
	profile := sess.Memory.Profile()
	if c.Name == "" && validName(profile.Name) {
		c.Name = profile.Name
	}
	if c.Mobile == "" && validMobile(profile.Mobile) {
		c.Mobile = profile.Mobile
	}

	if c.Complete() {
		return e.submit(ctx, sess)
	}

	intro := "I'd be happy to help you register a complaint."
	if captured := capturedSummary(c); captured != "" {
		// The opening message already carried some of the slots; acknowledge
		// them once on a summary turn, then the next reply routes to the
		// first missing per-slot step.
		missing := strings.Join(c.MissingSlots(), " and ")
		response := fmt.Sprintf("%s %s To proceed I still need your %s.", intro, captured, missing)
		c.Step = session.StepCollectingInfo
		return response + " " + promptFor(nextStep(c), c), ""
	}

	c.Step = nextStep(c)
	return intro + " " + promptFor(c.Step, c), ""
}

// capturedSummary describes the slots already filled, for acknowledgement.
func capturedSummary(c *session.Context) string {
	var parts []string
	if c.Name != "" {
		parts = append(parts, "your name ("+c.Name+")")
	}
	if c.Mobile != "" {
		parts = append(parts, "your mobile number ("+c.Mobile+")")
	}
	if c.Details != "" {
		parts = append(parts, "the issue description")
	}
	if len(parts) == 0 {
		return ""
	}
	return "I've noted " + strings.Join(parts, ", ") + "."
}

// cancelPhrases abort the slot-filling flow when they show up mid-registration.
// Bare "restart" is deliberately absent; problem descriptions mention
// restarting devices far more often than restarting the conversation.
var cancelPhrases = []string{"cancel", "start over", "start again", "never mind", "nevermind", "forget it"}

// wantsToCancel reports whether a mid-registration message asks to abandon
// the flow. Single words must match whole words so "cancelled" in a problem
// description does not abort the registration.
func wantsToCancel(message string) bool {
	lower := strings.ToLower(message)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for _, phrase := range cancelPhrases {
		if strings.Contains(phrase, " ") {
			if strings.Contains(lower, phrase) {
				return true
			}
			continue
		}
		for _, w := range words {
			if w == phrase {
				return true
			}
		}
	}
	return false
}

// continueRegistration handles one mid-flow message: the current slot is
// validated against the reply, and any other extractable slots are filled at
// the same time so users can answer ahead.
func (e *Engine) continueRegistration(ctx context.Context, sess *session.Session, message string, fields extract.Fields) (string, string) {
	c := &sess.Context
	if wantsToCancel(message) {
		c.Reset()
		return "No problem, I've cancelled this registration. " +
			"If you'd like to start over, just tell me you want to register a complaint.", ""
	}
	mergeFields(c, fields, message)

	switch c.Step {
	case session.StepCollectingName:
		if c.Name == "" {
			candidate := fields.Name
			if candidate == "" {
				candidate = strings.TrimSpace(message)
			}
			if !validName(candidate) {
				return "That doesn't look like a name I can use. Could you tell me your full name?", ""
			}
			c.Name = candidate
		}
	case session.StepCollectingMobile:
		if c.Mobile == "" {
			candidate := fields.Mobile
			if candidate == "" {
				candidate = digitsOnly(message)
			}
			if !validMobile(candidate) {
				return "That doesn't look like a valid mobile number. Please enter a 10 to 15 digit number.", ""
			}
			c.Mobile = candidate
		}
	case session.StepCollectingInfo:
		// The summary turn prompted for the first missing slot; route the
		// answer to that slot's own step.
		c.Step = nextStep(c)
		return e.continueRegistration(ctx, sess, message, fields)
	case session.StepCollectingDetails:
		if c.Details == "" {
			if !validDetails(message) {
				return "Could you describe the problem in a little more detail? A sentence or two helps us route it correctly.", ""
			}
			c.Details = strings.TrimSpace(message)
		}
	}

	if c.Complete() {
		return e.submit(ctx, sess)
	}

	c.Step = nextStep(c)
	return promptFor(c.Step, c), ""
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// submit persists the completed complaint and resets the flow. Both outcomes
// are terminal for the registration: the context is reset whether the
// complaint was stored or the store failed.
func (e *Engine) submit(ctx context.Context, sess *session.Session) (string, string) {
	c := &sess.Context
	c.Step = session.StepProcessing

	sctx, cancel := context.WithTimeout(ctx, submitTimeout)
	defer cancel()

	created, err := e.store.Create(sctx, c.Name, c.Mobile, c.Details, "")
	if err != nil {
		log.Printf("[chat] complaint submit failed: %v", err)
		c.Reset()
		return "I'm sorry, something went wrong while registering your complaint. Please try again in a moment.", ""
	}

	estimate := knowledge.DefaultResolutionEstimate
	if _, entry := e.retriever.Guidance(sctx, created.Details); entry != nil {
		estimate = entry.ResolutionEstimate
	}

	response := fmt.Sprintf(
		"Your complaint has been registered successfully. Your complaint ID is %s. "+
			"It has been categorized as %s and its current status is %s. "+
			"Expected resolution time: %s. You can check on it anytime by sharing the complaint ID or your mobile number.",
		created.ComplaintID, created.Category, created.Status, estimate,
	)
	c.Reset()
	return response, created.ComplaintID
}
