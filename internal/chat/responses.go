package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/fixdesk/fixdesk/internal/session"
)

func greetingResponse(ins session.Insights) string {
	greeting := "Hello! I'm the FixDesk assistant."
	if ins.Profile.Name != "" {
		greeting = fmt.Sprintf("Hello again, %s!", ins.Profile.Name)
	}
	return greeting + " I can register a complaint for you or check on an existing one. How can I help?"
}

func helpResponse(ins session.Insights) string {
	help := "Here's what I can do:\n" +
		"- Register a new complaint (just describe the problem)\n" +
		"- Check the status of a complaint by its ID (like CMP1A2B3C4D)\n" +
		"- Look up your complaints by mobile number\n" +
		"- Answer common questions about hardware, software, network, account, billing and service issues"
	if ins.NeedsFollowUp {
		help += "\nWe were in the middle of something; you can pick up right where we left off."
	}
	return help
}

func closingResponse(ins session.Insights) string {
	closing := "Thank you for reaching out."
	if ins.Profile.Name != "" {
		closing = fmt.Sprintf("Thank you, %s.", ins.Profile.Name)
	}
	if ins.DominantSentiment == session.SentimentUrgent {
		closing += " I've noted the urgency on your request."
	}
	return closing + " If anything else comes up, I'm here to help. Have a great day!"
}

// generalResponse answers an unclassified message from the knowledge base,
// attaching the matched entry's first follow-up question when there is one.
func (e *Engine) generalResponse(ctx context.Context, message string) string {
	response, entry := e.retriever.Guidance(ctx, message)
	if entry == nil {
		return response
	}
	var b strings.Builder
	b.WriteString(response)
	if len(entry.FollowUpQuestions) > 0 {
		b.WriteString(" ")
		b.WriteString(entry.FollowUpQuestions[0])
	}
	fmt.Fprintf(&b, " Typical resolution time for %s issues is %s.", strings.ToLower(entry.Category), entry.ResolutionEstimate)
	return b.String()
}
