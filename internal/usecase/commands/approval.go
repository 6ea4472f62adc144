package commands

import (
	"context"
	"encoding/json"

	"fin-approvals/internal/domain/request"
	"fin-approvals/internal/domain/user"
	"fin-approvals/internal/infra"
	"fin-approvals/internal/pkg/clock"
	"fin-approvals/internal/pkg/errs"
	"fin-approvals/internal/usecase/queries"
	"fin-approvals/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRequestNotFound = errs.New("request not found")
	ErrAlreadyDecided  = errs.New("request already decided")
	ErrWrongRole       = errs.New("actor role does not match required tier")
	ErrWrongDivision   = errs.New("actor division does not match request division")
	ErrNotAssignee     = errs.New("request is assigned to another approver")
)

// Actor is the authenticated approver taken from the access token.
type Actor struct {
	ID         uuid.UUID
	Role       user.Role
	DivisionID *uuid.UUID
}

type ApprovalCommands interface {
	Act(ctx context.Context, requestID uuid.UUID, actor Actor, action request.Action, comment string) (*queries.RequestView, error)
}

type approvalCommandsImpl struct {
	uow            shared.UnitOfWork
	resolver       *AssigneeResolver
	requestQueries queries.RequestQueries
	clock          clock.Clock
}

func NewApprovalCommands(
	uow shared.UnitOfWork,
	resolver *AssigneeResolver,
	requestQueries queries.RequestQueries,
	clk clock.Clock,
) ApprovalCommands {
	return &approvalCommandsImpl{
		uow:            uow,
		resolver:       resolver,
		requestQueries: requestQueries,
		clock:          clk,
	}
}

// Act applies a terminal decision. Authorization guards run in a fixed order
// so a caller always gets the same error for the same state, and the status
// flip is conditional on the row still being pending, so exactly one of two
// concurrent deciders wins.
func (a *approvalCommandsImpl) Act(
	ctx context.Context,
	requestID uuid.UUID,
	actor Actor,
	action request.Action,
	comment string,
) (*queries.RequestView, error) {
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()

		snap, err := reads.RequestByID(ctx, requestID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrRequestNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if snap.Status.IsTerminal() {
			return ErrAlreadyDecided
		}
		if err := a.authorize(ctx, tx, snap, actor); err != nil {
			return err
		}

		won, err := tx.Requests().TransitionIfPending(ctx, tx.DB(), requestID, action.TerminalStatus())
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !won {
			return ErrAlreadyDecided
		}

		decision := request.NewDecision(uuid.New(), requestID, actor.ID, action, comment, a.clock.Now())
		if _, err := tx.Decisions().Create(ctx, tx.DB(), decision); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return a.recordDecided(ctx, tx, snap, actor, action)
	})
	if err != nil {
		return nil, err
	}

	view, err := a.requestQueries.GetByIDSystem(ctx, requestID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (a *approvalCommandsImpl) authorize(
	ctx context.Context,
	tx shared.Tx,
	snap *shared.RequestSnapshot,
	actor Actor,
) error {
	tier := snap.RequiredTier
	if actor.Role != tier.Role() {
		return ErrWrongRole
	}
	if tier.DivisionScoped() {
		if actor.DivisionID == nil || *actor.DivisionID != snap.DivisionID {
			return ErrWrongDivision
		}
	}
	if !tier.AssigneeScoped() {
		return nil
	}

	assigneeID := snap.AssigneeID
	if assigneeID == nil {
		// Rows written before assignees were snapshotted at creation carry
		// none. Resolve once now and persist, so later reads agree.
		resolved, err := a.lateResolve(ctx, tx, snap)
		if err != nil {
			return err
		}
		assigneeID = resolved
	}
	if assigneeID != nil && *assigneeID != actor.ID {
		return ErrNotAssignee
	}
	return nil
}

func (a *approvalCommandsImpl) lateResolve(
	ctx context.Context,
	tx shared.Tx,
	snap *shared.RequestSnapshot,
) (*uuid.UUID, error) {
	reads := tx.Reads()
	agent, err := reads.UserByID(ctx, snap.AgentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	assigneeID, reason, err := a.resolver.Resolve(ctx, reads, agent, snap.RequiredTier)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if err := tx.Requests().RecordAssignee(ctx, tx.DB(), snap.ID, assigneeID, reason); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return assigneeID, nil
}

func (a *approvalCommandsImpl) recordDecided(
	ctx context.Context,
	tx shared.Tx,
	snap *shared.RequestSnapshot,
	actor Actor,
	action request.Action,
) error {
	payload, err := json.Marshal(map[string]any{
		"request_id":   snap.ID,
		"actor_id":     actor.ID,
		"action":       action.String(),
		"amount_cents": snap.AmountCents,
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	kind := "request_" + action.String()
	if err := tx.Events().AddRequestEvent(ctx, tx.DB(), snap.ID, actor.ID, kind, payload); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Outbox row rides the same transaction as the decision.
	if err := tx.Notifications().CreateJob(ctx, tx.DB(), "email", kind, payload, a.clock.Now()); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}
