// Package knowledge holds the static knowledge base the retriever searches:
// one entry per common grievance scenario, with the canned response,
// follow-up questions and typical resolution time for that scenario.
package knowledge

// Entry is a single immutable knowledge base record.
type Entry struct {
	ID                 string   `json:"id"`
	Category           string   `json:"category"`
	Scenario           string   `json:"scenario"`
	Response           string   `json:"response"`
	FollowUpQuestions  []string `json:"follow_up_questions"`
	ResolutionEstimate string   `json:"typical_resolution_time"`
}

// DefaultResolutionEstimate is used when no knowledge entry matches.
const DefaultResolutionEstimate = "3-5 business days"

// Entries returns the full knowledge base. The table is fixed at compile
// time; callers must not mutate the returned entries.
func Entries() []Entry {
	return entries
}

var entries = []Entry{
	{
		ID:                 "kb_001",
		Category:           "Hardware",
		Scenario:           "laptop not working, computer issues, hardware problems",
		Response:           "I understand you're experiencing hardware issues. This is quite common and we'll help resolve it quickly.",
		FollowUpQuestions:  []string{"What specific hardware component is causing issues?", "When did the problem start?"},
		ResolutionEstimate: "2-3 business days",
	},
	{
		ID:                 "kb_002",
		Category:           "Software",
		Scenario:           "software not working, application crashes, program errors",
		Response:           "Software issues can be frustrating. Let me help you get this resolved.",
		FollowUpQuestions:  []string{"Which software/application is having issues?", "What error message do you see?"},
		ResolutionEstimate: "1-2 business days",
	},
	{
		ID:                 "kb_003",
		Category:           "Network",
		Scenario:           "internet slow, network problems, connectivity issues, wifi not working",
		Response:           "Network connectivity issues can impact your productivity. We'll prioritize getting this fixed.",
		FollowUpQuestions:  []string{"Is this affecting all devices or just one?", "When did you first notice the issue?"},
		ResolutionEstimate: "4-6 hours",
	},
	{
		ID:                 "kb_004",
		Category:           "Account",
		Scenario:           "login problems, password issues, account access, authentication",
		Response:           "Account access issues need immediate attention for security reasons.",
		FollowUpQuestions:  []string{"What happens when you try to login?", "Have you recently changed your password?"},
		ResolutionEstimate: "2-4 hours",
	},
	{
		ID:                 "kb_005",
		Category:           "Billing",
		Scenario:           "billing issues, payment problems, invoice questions, charges",
		Response:           "I'll help you resolve this billing concern. Let me look into the details.",
		FollowUpQuestions:  []string{"Which specific charge are you questioning?", "Do you have the invoice number?"},
		ResolutionEstimate: "3-5 business days",
	},
	{
		ID:                 "kb_006",
		Category:           "Service",
		Scenario:           "poor service, support issues, customer service problems",
		Response:           "I apologize for any service issues you've experienced. We take this seriously.",
		FollowUpQuestions:  []string{"Can you describe the specific service issue?", "When did this occur?"},
		ResolutionEstimate: "1-2 business days",
	},
}
