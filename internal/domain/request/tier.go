package request

import "fin-approvals/internal/domain/user"

// Tier is the approver level a request needs, derived solely from its total.
type Tier string

const (
	TierTeamLead        Tier = "team_lead"
	TierDivisionManager Tier = "division_manager"
	TierSalesDirector   Tier = "sales_director"
)

// Amount thresholds in cents, inclusive upper bounds.
const (
	teamLeadMaxCents        int64 = 9900
	divisionManagerMaxCents int64 = 19900
)

// RequiredTierFor maps a request total to the tier that must approve it.
// Total function over non-negative amounts; amounts are validated upstream.
func RequiredTierFor(total Money) Tier {
	switch {
	case total.Cents() <= teamLeadMaxCents:
		return TierTeamLead
	case total.Cents() <= divisionManagerMaxCents:
		return TierDivisionManager
	default:
		return TierSalesDirector
	}
}

func (t Tier) String() string {
	return string(t)
}

func (t Tier) IsValid() bool {
	switch t {
	case TierTeamLead, TierDivisionManager, TierSalesDirector:
		return true
	default:
		return false
	}
}

// Role returns the user role that satisfies this tier.
func (t Tier) Role() user.Role {
	switch t {
	case TierTeamLead:
		return user.RoleTeamLead
	case TierDivisionManager:
		return user.RoleDivisionManager
	default:
		return user.RoleSalesDirector
	}
}

// DivisionScoped reports whether approvers of this tier only act within
// their own division. The top tier acts company-wide.
func (t Tier) DivisionScoped() bool {
	return t == TierTeamLead || t == TierDivisionManager
}

// AssigneeScoped reports whether the tier pins the request to a single
// resolved approver.
func (t Tier) AssigneeScoped() bool {
	return t == TierTeamLead
}

func NewTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.IsValid() {
		return "", ErrInvalidTier
	}
	return t, nil
}
