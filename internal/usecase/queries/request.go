package queries

import (
	"context"

	"fin-approvals/internal/domain/request"
	"fin-approvals/internal/domain/user"
	"fin-approvals/internal/infra"
	"fin-approvals/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrRequestNotFound = errs.New("request not found")
	ErrRequestAccess   = errs.New("request access denied")
)

// Viewer is the authenticated reader a query scopes its results to.
type Viewer struct {
	ID         uuid.UUID
	Role       user.Role
	DivisionID *uuid.UUID
}

type RequestQueries interface {
	GetByID(ctx context.Context, viewer Viewer, id uuid.UUID) (*RequestView, error)
	// GetByIDSystem bypasses visibility, for read-after-write inside commands.
	GetByIDSystem(ctx context.Context, id uuid.UUID) (*RequestView, error)
	ListMine(ctx context.Context, agentID uuid.UUID, filter RequestFilter) ([]*RequestListItem, error)
}

type RequestReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RequestView, error)
	ListByAgent(ctx context.Context, agentID uuid.UUID, filter RequestFilter) ([]*RequestListItem, error)
}

type requestQueriesImpl struct {
	readStore RequestReadStore
}

func NewRequestQueries(readStore RequestReadStore) RequestQueries {
	return &requestQueriesImpl{readStore: readStore}
}

func (q *requestQueriesImpl) GetByID(ctx context.Context, viewer Viewer, id uuid.UUID) (*RequestView, error) {
	view, err := q.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !visibleTo(view, viewer) {
		// Hidden rows read as absent so access probes learn nothing
		return nil, ErrRequestNotFound
	}
	return view, nil
}

func (q *requestQueriesImpl) GetByIDSystem(ctx context.Context, id uuid.UUID) (*RequestView, error) {
	return q.fetch(ctx, id)
}

func (q *requestQueriesImpl) ListMine(ctx context.Context, agentID uuid.UUID, filter RequestFilter) ([]*RequestListItem, error) {
	return q.readStore.ListByAgent(ctx, agentID, filter)
}

func (q *requestQueriesImpl) fetch(ctx context.Context, id uuid.UUID) (*RequestView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return view, nil
}

func visibleTo(view *RequestView, viewer Viewer) bool {
	switch viewer.Role {
	case user.RoleAdmin, user.RoleSalesDirector:
		return true
	case user.RoleAgent:
		return view.AgentID == viewer.ID
	case user.RoleDivisionManager:
		return viewer.DivisionID != nil && *viewer.DivisionID == view.DivisionID
	case user.RoleTeamLead:
		if view.AssigneeID != nil && *view.AssigneeID == viewer.ID {
			return true
		}
		// Unassigned team-tier requests stay visible inside the division
		return view.AssigneeID == nil &&
			view.RequiredTier == request.TierTeamLead.String() &&
			viewer.DivisionID != nil && *viewer.DivisionID == view.DivisionID
	default:
		return false
	}
}
