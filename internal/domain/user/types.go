package user

import "errors"

var ErrInvalidRole = errors.New("invalid role")

// Role is the closed set of positions in the approval chain. Guards match
// on this enum rather than comparing raw strings.
type Role string

const (
	RoleAgent           Role = "agent"
	RoleTeamLead        Role = "team_lead"
	RoleDivisionManager Role = "division_manager"
	RoleSalesDirector   Role = "sales_director"
	RoleAdmin           Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAgent, RoleTeamLead, RoleDivisionManager, RoleSalesDirector, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanApprove reports whether the role sits anywhere in the approval chain.
func (r Role) CanApprove() bool {
	switch r {
	case RoleTeamLead, RoleDivisionManager, RoleSalesDirector:
		return true
	default:
		return false
	}
}

func NewRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}
