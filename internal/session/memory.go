package session

import (
	"sort"
	"strings"
	"time"

	"github.com/fixdesk/fixdesk/internal/extract"
)

// windowSize bounds the turn window; the oldest turn is evicted beyond it.
const windowSize = 5

// Turn is one user/bot exchange kept in the rolling context window.
type Turn struct {
	User   string
	Bot    string
	Intent string
	At     time.Time
}

// Profile is what the session has learned about the user. First write wins;
// later extractions never overwrite an established value.
type Profile struct {
	Name   string
	Mobile string
}

// Memory is the per-session conversation memory: user profile, rolling
// intent and sentiment histories, a bounded turn window, technical focus
// categories and mentioned entities. It is not safe for concurrent use; the
// owning Session serializes turns.
type Memory struct {
	profile    Profile
	intents    []string
	sentiments []Sentiment
	window     []Turn
	focus      map[string]bool
	entities   map[string]bool
	followUp   bool
}

// NewMemory creates an empty conversation memory.
func NewMemory() *Memory {
	return &Memory{
		focus:    make(map[string]bool),
		entities: make(map[string]bool),
	}
}

// Update records one completed exchange: appends to the turn window (FIFO
// beyond windowSize), tags and stores intent and sentiment, merges newly
// discovered profile fields, and unions observed technical categories.
func (m *Memory) Update(userMessage, botResponse string, fields extract.Fields) {
	intent := tagIntent(userMessage)
	m.intents = append(m.intents, intent)
	m.sentiments = append(m.sentiments, AnalyzeSentiment(userMessage))

	m.window = append(m.window, Turn{
		User:   userMessage,
		Bot:    botResponse,
		Intent: intent,
		At:     time.Now(),
	})
	if len(m.window) > windowSize {
		m.window = m.window[1:]
	}

	if fields.Name != "" && m.profile.Name == "" {
		m.profile.Name = fields.Name
	}
	if fields.Mobile != "" && m.profile.Mobile == "" {
		m.profile.Mobile = fields.Mobile
	}
	if fields.ComplaintID != "" {
		m.entities["complaint_id:"+fields.ComplaintID] = true
	}

	lower := strings.ToLower(userMessage)
	for _, tc := range techCategories {
		if containsAny(lower, tc.terms) {
			m.focus[tc.name] = true
		}
	}
}

// SetFollowUp marks whether the next turn is expected to continue an open
// exchange (e.g. the bot just asked for a slot value).
func (m *Memory) SetFollowUp(v bool) { m.followUp = v }

// Profile returns the learned user profile.
func (m *Memory) Profile() Profile { return m.profile }

// Window returns the bounded turn window, oldest first.
func (m *Memory) Window() []Turn { return m.window }

// Insights are the aggregate signals derived from memory for response
// composition.
type Insights struct {
	Profile            Profile
	CurrentIntent      string
	RecentIntents      []string
	ConversationLength int
	DominantSentiment  Sentiment
	TechnicalFocus     []string
	NeedsFollowUp      bool
}

// Insights derives the current aggregate view. Dominant sentiment is the
// stable mode of the sentiment history: ties break toward the label that
// first reached the maximum count, so identical histories always yield the
// identical answer.
func (m *Memory) Insights() Insights {
	ins := Insights{
		Profile:            m.profile,
		ConversationLength: len(m.window),
		DominantSentiment:  dominantSentiment(m.sentiments),
		TechnicalFocus:     sortedKeys(m.focus),
		NeedsFollowUp:      m.followUp,
	}
	if len(m.intents) > 0 {
		ins.CurrentIntent = m.intents[len(m.intents)-1]
		start := max(0, len(m.intents)-3)
		ins.RecentIntents = append([]string(nil), m.intents[start:]...)
	}
	if ins.DominantSentiment == SentimentUrgent {
		ins.NeedsFollowUp = true
	}
	return ins
}

func dominantSentiment(history []Sentiment) Sentiment {
	if len(history) == 0 {
		return SentimentNeutral
	}
	counts := make(map[Sentiment]int, 4)
	maxCount := 0
	for _, s := range history {
		counts[s]++
		if counts[s] > maxCount {
			maxCount = counts[s]
		}
	}
	for _, s := range history {
		if counts[s] == maxCount {
			return s
		}
	}
	return SentimentNeutral
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// tagIntent is the lightweight keyword tagger memory uses for its intent
// history. It is intentionally independent of the main classifier: it tracks
// broader conversational moves (frustration, escalation, timelines) that the
// dispatch table does not route on.
func tagIntent(message string) string {
	lower := strings.ToLower(message)
	for _, tag := range intentTags {
		if containsAny(lower, tag.keywords) {
			return tag.name
		}
	}
	return "general_inquiry"
}

var intentTags = []struct {
	name     string
	keywords []string
}{
	{"register_complaint", []string{"register", "complaint", "file", "submit", "issue", "problem", "broken"}},
	{"check_status", []string{"status", "check", "update", "progress", "what happened", "any news"}},
	{"modify_complaint", []string{"change", "modify", "edit", "correct"}},
	{"cancel_complaint", []string{"cancel", "withdraw", "remove", "delete"}},
	{"get_help", []string{"help", "how", "what", "guide", "explain", "instructions"}},
	{"express_frustration", []string{"angry", "frustrated", "terrible", "awful", "disappointed"}},
	{"express_satisfaction", []string{"thank", "good", "great", "excellent", "satisfied"}},
	{"request_escalation", []string{"manager", "supervisor", "escalate", "higher", "urgent"}},
	{"ask_timeline", []string{"when", "how long", "timeline", "eta", "expected"}},
	{"provide_feedback", []string{"feedback", "suggestion", "improve", "better"}},
}

var techCategories = []struct {
	name  string
	terms []string
}{
	{"hardware", []string{"laptop", "computer", "screen", "keyboard", "mouse", "printer", "monitor"}},
	{"software", []string{"application", "program", "software", "app", "system", "windows", "browser"}},
	{"network", []string{"internet", "wifi", "connection", "network", "email", "website", "server"}},
	{"billing", []string{"bill", "charge", "payment", "invoice", "subscription", "refund"}},
	{"service", []string{"support", "service", "assistance", "agent"}},
}
