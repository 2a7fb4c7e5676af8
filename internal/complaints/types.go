// Package complaints owns the complaint records: types, validation,
// categorization and the persistence layer over SQLite, plus the REST API.
package complaints

import (
	"strings"
	"time"
)

// Status is a complaint lifecycle state.
type Status string

const (
	StatusRegistered  Status = "Registered"
	StatusInProgress  Status = "In Progress"
	StatusUnderReview Status = "Under Review"
	StatusResolved    Status = "Resolved"
	StatusClosed      Status = "Closed"
	StatusRejected    Status = "Rejected"
)

// statusProgression maps each status to its natural successor. Closed and
// Rejected are terminal.
var statusProgression = map[Status]Status{
	StatusRegistered:  StatusInProgress,
	StatusInProgress:  StatusUnderReview,
	StatusUnderReview: StatusResolved,
	StatusResolved:    StatusClosed,
}

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	switch s {
	case StatusRegistered, StatusInProgress, StatusUnderReview,
		StatusResolved, StatusClosed, StatusRejected:
		return true
	}
	return false
}

// Next returns the natural successor of s. ok is false for terminal states.
func (s Status) Next() (Status, bool) {
	next, ok := statusProgression[s]
	return next, ok
}

// statusNarratives turn a lifecycle state into a sentence fragment suitable
// for "Your complaint ... <narrative>".
var statusNarratives = map[Status]string{
	StatusRegistered:  "has been registered and is waiting to be picked up by our team",
	StatusInProgress:  "is being actively worked on by our team",
	StatusUnderReview: "is under review to confirm the fix",
	StatusResolved:    "has been resolved. Please let us know if the problem reappears",
	StatusClosed:      "has been closed",
	StatusRejected:    "could not be accepted. Please contact support for the reason",
}

// Narrative describes the status in user-facing prose.
func (s Status) Narrative() string {
	if n, ok := statusNarratives[s]; ok {
		return n
	}
	return "is currently " + string(s)
}

// Category is a coarse complaint classification used for routing and stats.
type Category string

const (
	CategoryHardware Category = "Hardware"
	CategorySoftware Category = "Software"
	CategoryNetwork  Category = "Network"
	CategoryAccount  Category = "Account"
	CategoryBilling  Category = "Billing"
	CategoryService  Category = "Service"
	CategoryOther    Category = "Other"
)

var categoryKeywords = []struct {
	category Category
	terms    []string
}{
	{CategoryHardware, []string{"laptop", "computer", "screen", "keyboard", "mouse", "printer", "monitor", "hardware", "device", "battery", "charger"}},
	{CategorySoftware, []string{"software", "application", "app", "program", "install", "update", "crash", "error", "bug", "windows", "browser"}},
	{CategoryNetwork, []string{"internet", "wifi", "network", "connection", "slow", "disconnect", "router", "email", "website", "server"}},
	{CategoryAccount, []string{"account", "password", "login", "access", "locked", "username", "credentials", "sign in"}},
	{CategoryBilling, []string{"bill", "charge", "payment", "invoice", "refund", "subscription", "overcharged", "fee"}},
	{CategoryService, []string{"service", "support", "staff", "agent", "rude", "wait", "response", "delay"}},
}

// Categorize assigns the category whose keywords appear first in priority
// order. Details with no recognized terms fall into Other.
func Categorize(details string) Category {
	lower := strings.ToLower(details)
	for _, ck := range categoryKeywords {
		for _, term := range ck.terms {
			if strings.Contains(lower, term) {
				return ck.category
			}
		}
	}
	return CategoryOther
}

// Complaint is one registered complaint record.
type Complaint struct {
	ComplaintID string    `json:"complaint_id"`
	Name        string    `json:"name"`
	Mobile      string    `json:"mobile"`
	Details     string    `json:"complaint_details"`
	Category    Category  `json:"category"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// StatusChange is one entry in a complaint's status history.
type StatusChange struct {
	ID          int64     `json:"id"`
	ComplaintID string    `json:"complaint_id"`
	OldStatus   Status    `json:"old_status,omitempty"`
	NewStatus   Status    `json:"new_status"`
	Notes       string    `json:"notes,omitempty"`
	ChangedAt   time.Time `json:"changed_at"`
}

// Stats is an aggregate view over all complaints.
type Stats struct {
	Total      int              `json:"total"`
	Recent7Day int              `json:"recent_7day"`
	ByStatus   map[Status]int   `json:"by_status"`
	ByCategory map[Category]int `json:"by_category"`
}
