// Package chat is the conversational engine: it classifies each user
// message, routes it to the matching handler (registration flow, status
// lookup, knowledge base guidance, small talk) and keeps the session memory
// and persisted transcript up to date.
package chat

import (
	"context"
	"log"
	"time"

	"github.com/fixdesk/fixdesk/internal/complaints"
	"github.com/fixdesk/fixdesk/internal/intent"
	"github.com/fixdesk/fixdesk/internal/retrieval"
	"github.com/fixdesk/fixdesk/internal/session"
)

// submitTimeout bounds the persistence work of a single turn so a wedged
// database cannot hang the conversation.
const submitTimeout = 10 * time.Second

// Reply is the engine's answer to one user message.
type Reply struct {
	SessionID   string        `json:"session_id"`
	Response    string        `json:"response"`
	Intent      intent.Intent `json:"intent"`
	Confidence  float64       `json:"confidence"`
	Step        string        `json:"step"`
	ComplaintID string        `json:"complaint_id,omitempty"`
}

// Engine drives the conversation. It never returns an error for a turn:
// every failure path degrades to an apologetic response so the chat stays
// alive.
type Engine struct {
	sessions    *session.Manager
	classifier  *intent.Classifier
	retriever   *retrieval.Retriever
	store       *complaints.Store
	transcripts *Transcripts
}

// NewEngine wires the conversational engine. transcripts may be nil to
// disable persistence of chat history.
func NewEngine(sessions *session.Manager, classifier *intent.Classifier, retriever *retrieval.Retriever, store *complaints.Store, transcripts *Transcripts) *Engine {
	return &Engine{
		sessions:    sessions,
		classifier:  classifier,
		retriever:   retriever,
		store:       store,
		transcripts: transcripts,
	}
}

// Respond processes one user message in the given session. An empty
// sessionID starts a new session; the assigned ID is returned in the reply.
func (e *Engine) Respond(ctx context.Context, sessionID, message string) Reply {
	sess := e.sessions.GetOrCreate(sessionID)
	sess.Lock()
	defer sess.Unlock()

	result := e.classifier.Classify(ctx, message, sess.Context.Step.Collecting())

	var response, complaintID string
	switch result.Intent {
	case intent.IntentContinueRegistration:
		response, complaintID = e.continueRegistration(ctx, sess, message, result.Fields)
	case intent.IntentRegisterComplaint:
		response, complaintID = e.startRegistration(ctx, sess, message, result.Fields)
	case intent.IntentCheckStatusByID:
		response = e.statusByID(ctx, result.Fields.ComplaintID)
	case intent.IntentCheckStatusByMobile:
		response = e.statusByMobile(ctx, result.Fields.Mobile)
	case intent.IntentCheckStatus:
		response = e.statusClarify(ctx, sess, result.Fields)
	case intent.IntentHelp:
		response = helpResponse(sess.Memory.Insights())
	case intent.IntentGreeting:
		response = greetingResponse(sess.Memory.Insights())
	case intent.IntentClosing:
		response = closingResponse(sess.Memory.Insights())
	default:
		response = e.generalResponse(ctx, message)
	}

	sess.Memory.Update(message, response, result.Fields)
	sess.Memory.SetFollowUp(sess.Context.Step.Collecting())

	e.record(ctx, sess.ID, message, response, string(result.Intent))

	return Reply{
		SessionID:   sess.ID,
		Response:    response,
		Intent:      result.Intent,
		Confidence:  result.Confidence,
		Step:        sess.Context.Step.String(),
		ComplaintID: complaintID,
	}
}

// record persists both sides of the exchange. Transcript failures are logged
// and swallowed; they must not break the conversation.
func (e *Engine) record(ctx context.Context, sessionID, userMessage, botResponse, intentLabel string) {
	if e.transcripts == nil {
		return
	}
	rctx, cancel := context.WithTimeout(ctx, submitTimeout)
	defer cancel()

	if err := e.transcripts.EnsureSession(rctx, sessionID); err != nil {
		log.Printf("[chat] session persist failed: %v", err)
		return
	}
	if err := e.transcripts.Record(rctx, sessionID, "user", userMessage, intentLabel); err != nil {
		log.Printf("[chat] transcript persist failed: %v", err)
		return
	}
	if err := e.transcripts.Record(rctx, sessionID, "assistant", botResponse, intentLabel); err != nil {
		log.Printf("[chat] transcript persist failed: %v", err)
	}
}
