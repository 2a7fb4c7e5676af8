package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/fixdesk/fixdesk/internal/complaints"
	"github.com/fixdesk/fixdesk/internal/extract"
	"github.com/fixdesk/fixdesk/internal/session"
)

const notFoundByID = "I couldn't find a complaint with that ID. Please double-check it " +
	"(it looks like CMP followed by 8 characters), or share the mobile number you registered with."

const notFoundByMobile = "I couldn't find any complaints registered with that mobile number. " +
	"Would you like to register a new complaint?"

func (e *Engine) statusByID(ctx context.Context, complaintID string) string {
	c, err := e.store.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, complaints.ErrNotFound) {
			return notFoundByID
		}
		log.Printf("[chat] status lookup failed: %v", err)
		return "I'm having trouble looking that up right now. Please try again in a moment."
	}
	return describeComplaint(c)
}

func (e *Engine) statusByMobile(ctx context.Context, mobile string) string {
	found, err := e.store.FindByPhone(ctx, mobile)
	if err != nil {
		log.Printf("[chat] status lookup failed: %v", err)
		return "I'm having trouble looking that up right now. Please try again in a moment."
	}
	switch len(found) {
	case 0:
		return notFoundByMobile
	case 1:
		return describeComplaint(&found[0])
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "I found %d complaints registered with that number:\n", len(found))
		for _, c := range found {
			fmt.Fprintf(&b, "- %s (%s): %s\n", c.ComplaintID, c.Category, c.Status)
		}
		b.WriteString("Share a complaint ID if you'd like the full details of one of them.")
		return b.String()
	}
}

// statusClarify handles a status request that named neither a complaint ID
// nor a mobile number. Anything the session already knows is tried first.
func (e *Engine) statusClarify(ctx context.Context, sess *session.Session, fields extract.Fields) string {
	if fields.Mobile != "" {
		return e.statusByMobile(ctx, fields.Mobile)
	}
	if profile := sess.Memory.Profile(); profile.Mobile != "" {
		return e.statusByMobile(ctx, profile.Mobile)
	}
	return "I can look that up for you. Could you share your complaint ID (like CMP1A2B3C4D) or the mobile number you registered with?"
}

func describeComplaint(c *complaints.Complaint) string {
	return fmt.Sprintf(
		"Your complaint %s (%s, registered %s) %s. Current status: %s.",
		c.ComplaintID, c.Category, c.CreatedAt.Format("Jan 2, 2006"), c.Status.Narrative(), c.Status,
	)
}
