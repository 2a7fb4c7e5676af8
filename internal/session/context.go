// Package session holds per-conversation state: the slot-filling context
// driven by the registration flow, the conversation memory that keeps
// multi-turn dialogue coherent, and the manager that owns live sessions.
package session

// Step is the registration flow position. It only moves forward through the
// slot order as validators accept input; the sole way back is Reset.
type Step int

const (
	StepInitial Step = iota
	StepCollectingName
	StepCollectingMobile
	StepCollectingDetails
	StepCollectingInfo
	StepProcessing
)

func (s Step) String() string {
	switch s {
	case StepInitial:
		return "initial"
	case StepCollectingName:
		return "collecting_name"
	case StepCollectingMobile:
		return "collecting_mobile"
	case StepCollectingDetails:
		return "collecting_details"
	case StepCollectingInfo:
		return "collecting_info"
	case StepProcessing:
		return "processing"
	default:
		return "unknown"
	}
}

// Collecting reports whether the flow is mid-registration, waiting on user
// input for one of the slots.
func (s Step) Collecting() bool {
	switch s {
	case StepCollectingName, StepCollectingMobile, StepCollectingDetails, StepCollectingInfo:
		return true
	}
	return false
}

// Context is the slot-filling state for one session. Slots, once set, are
// never overwritten by extraction; a fresh context is created by Reset after
// submission.
type Context struct {
	Name    string
	Mobile  string
	Details string
	Step    Step
}

// Reset returns the context to a fresh initial state with all slots unset.
func (c *Context) Reset() {
	*c = Context{}
}

// Complete reports whether every slot has been filled.
func (c *Context) Complete() bool {
	return c.Name != "" && c.Mobile != "" && c.Details != ""
}

// MissingSlots lists the unfilled slots in collection order, using the
// user-facing slot names.
func (c *Context) MissingSlots() []string {
	var missing []string
	if c.Name == "" {
		missing = append(missing, "name")
	}
	if c.Mobile == "" {
		missing = append(missing, "mobile number")
	}
	if c.Details == "" {
		missing = append(missing, "complaint details")
	}
	return missing
}
