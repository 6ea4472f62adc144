package queries

import (
	"context"

	"fin-approvals/internal/domain/request"
	"fin-approvals/internal/domain/user"
	"fin-approvals/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrNotAnApprover = errs.New("viewer role cannot approve requests")

type ApprovalQueries interface {
	// ListPending returns the open requests the viewer may act on,
	// scoped by role: team leads see their assigned queue, division
	// managers their division's tier, the sales director everything
	// at the top tier.
	ListPending(ctx context.Context, viewer Viewer, filter RequestFilter) ([]*RequestListItem, error)
	// History returns decided requests from the viewer's vantage point.
	History(ctx context.Context, viewer Viewer, filter RequestFilter) ([]*RequestListItem, error)
}

type ApprovalReadStore interface {
	ListPendingAssignedTo(ctx context.Context, assigneeID uuid.UUID, filter RequestFilter) ([]*RequestListItem, error)
	ListPendingByTierInDivision(ctx context.Context, tier string, divisionID uuid.UUID, filter RequestFilter) ([]*RequestListItem, error)
	ListPendingByTier(ctx context.Context, tier string, filter RequestFilter) ([]*RequestListItem, error)
	ListDecidedBy(ctx context.Context, actorID uuid.UUID, filter RequestFilter) ([]*RequestListItem, error)
	ListDecidedInDivision(ctx context.Context, divisionID uuid.UUID, filter RequestFilter) ([]*RequestListItem, error)
	ListDecided(ctx context.Context, filter RequestFilter) ([]*RequestListItem, error)
}

type approvalQueriesImpl struct {
	readStore ApprovalReadStore
}

func NewApprovalQueries(readStore ApprovalReadStore) ApprovalQueries {
	return &approvalQueriesImpl{readStore: readStore}
}

func (q *approvalQueriesImpl) ListPending(ctx context.Context, viewer Viewer, filter RequestFilter) ([]*RequestListItem, error) {
	if !viewer.Role.CanApprove() {
		return nil, ErrNotAnApprover
	}
	switch viewer.Role {
	case user.RoleTeamLead:
		return q.readStore.ListPendingAssignedTo(ctx, viewer.ID, filter)
	case user.RoleDivisionManager:
		if viewer.DivisionID == nil {
			return []*RequestListItem{}, nil
		}
		return q.readStore.ListPendingByTierInDivision(ctx, request.TierDivisionManager.String(), *viewer.DivisionID, filter)
	case user.RoleSalesDirector:
		return q.readStore.ListPendingByTier(ctx, request.TierSalesDirector.String(), filter)
	default:
		return nil, ErrNotAnApprover
	}
}

func (q *approvalQueriesImpl) History(ctx context.Context, viewer Viewer, filter RequestFilter) ([]*RequestListItem, error) {
	switch viewer.Role {
	case user.RoleTeamLead:
		return q.readStore.ListDecidedBy(ctx, viewer.ID, filter)
	case user.RoleDivisionManager:
		if viewer.DivisionID == nil {
			return []*RequestListItem{}, nil
		}
		return q.readStore.ListDecidedInDivision(ctx, *viewer.DivisionID, filter)
	case user.RoleSalesDirector, user.RoleAdmin:
		return q.readStore.ListDecided(ctx, filter)
	default:
		return nil, ErrNotAnApprover
	}
}
