package request

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Action is a terminal decision on a pending request.
type Action string

const (
	ActionApproved Action = "approved"
	ActionRejected Action = "rejected"
)

func (a Action) String() string {
	return string(a)
}

func (a Action) IsValid() bool {
	return a == ActionApproved || a == ActionRejected
}

// TerminalStatus maps a decision to the status it leaves behind.
func (a Action) TerminalStatus() Status {
	if a == ActionApproved {
		return StatusApproved
	}
	return StatusRejected
}

// AssignmentReason records which step of the assignee fallback chain
// produced the assignee. Always persisted, even when no assignee was found.
type AssignmentReason string

const (
	ReasonAgentPreference         AssignmentReason = "agent_preference"
	ReasonDivisionDefault         AssignmentReason = "division_default"
	ReasonFirstInDivision         AssignmentReason = "first_in_division"
	ReasonDivisionManagerFallback AssignmentReason = "division_manager_fallback"
	ReasonNone                    AssignmentReason = "none"
)

func (r AssignmentReason) String() string {
	return string(r)
}
