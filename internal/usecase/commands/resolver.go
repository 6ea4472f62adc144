package commands

import (
	"context"

	"fin-approvals/internal/domain/request"
	"fin-approvals/internal/domain/user"
	"fin-approvals/internal/infra"
	"fin-approvals/internal/usecase/shared"

	"github.com/google/uuid"
)

// AssigneeResolver picks the approver a team-lead tier request is pinned to.
// Higher tiers are pooled by role and never pinned.
type AssigneeResolver struct{}

func NewAssigneeResolver() *AssigneeResolver {
	return &AssigneeResolver{}
}

// Resolve walks the fallback chain in order and returns the first hit along
// with the reason recording which step produced it. A nil assignee with
// ReasonNone is a valid outcome; the request is then visible to the whole
// tier pool.
func (r *AssigneeResolver) Resolve(
	ctx context.Context,
	reads shared.CommandReads,
	agent *shared.UserSnapshot,
	tier request.Tier,
) (*uuid.UUID, request.AssignmentReason, error) {
	if !tier.AssigneeScoped() {
		return nil, request.ReasonNone, nil
	}
	if agent.DivisionID == nil {
		return nil, request.ReasonNone, nil
	}
	divisionID := *agent.DivisionID

	if agent.PreferredLeadID != nil {
		lead, err := reads.UserByID(ctx, *agent.PreferredLeadID)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return nil, request.ReasonNone, err
		}
		if err == nil && eligibleLead(lead, divisionID) {
			return &lead.ID, request.ReasonAgentPreference, nil
		}
	}

	division, err := reads.DivisionByID(ctx, divisionID)
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, request.ReasonNone, err
	}
	if division != nil && division.DefaultTeamLeadID != nil {
		lead, err := reads.UserByID(ctx, *division.DefaultTeamLeadID)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return nil, request.ReasonNone, err
		}
		if err == nil && eligibleLead(lead, divisionID) {
			return &lead.ID, request.ReasonDivisionDefault, nil
		}
	}

	leadID, err := reads.FirstTeamLeadInDivision(ctx, divisionID)
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, request.ReasonNone, err
	}
	if leadID != nil {
		return leadID, request.ReasonFirstInDivision, nil
	}

	managerID, err := reads.DivisionManagerInDivision(ctx, divisionID)
	if err != nil && !infra.IsKind(err, infra.KindNotFound) {
		return nil, request.ReasonNone, err
	}
	if managerID != nil {
		return managerID, request.ReasonDivisionManagerFallback, nil
	}

	return nil, request.ReasonNone, nil
}

func eligibleLead(u *shared.UserSnapshot, divisionID uuid.UUID) bool {
	if u == nil || !u.Active || u.Role != user.RoleTeamLead {
		return false
	}
	return u.DivisionID != nil && *u.DivisionID == divisionID
}
