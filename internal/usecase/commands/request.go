package commands

import (
	"context"
	"encoding/json"
	"errors"

	"fin-approvals/internal/domain/request"
	"fin-approvals/internal/domain/user"
	reqdto "fin-approvals/internal/handler/dto/request"
	"fin-approvals/internal/infra"
	"fin-approvals/internal/pkg/clock"
	"fin-approvals/internal/pkg/errs"
	"fin-approvals/internal/usecase/queries"
	"fin-approvals/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrAgentNotFound           = errs.New("agent not found")
	ErrAgentNotEligible        = errs.New("only active agents with a division can submit requests")
	ErrBuyerNotFound           = errs.New("buyer not found")
	ErrArticleNotFound         = errs.New("article not found")
	ErrArticleInactive         = errs.New("article inactive")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDuplicateRequest        = errs.New("duplicate request")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateRequestResult struct {
	Request    *queries.RequestView
	IsReplayed bool
}

type RequestCommands interface {
	CreateRequest(ctx context.Context, req reqdto.CreateRequest, agentID uuid.UUID, idempotencyKey *string) (*CreateRequestResult, error)
}

type requestCommandsImpl struct {
	uow            shared.UnitOfWork
	resolver       *AssigneeResolver
	requestQueries queries.RequestQueries
	clock          clock.Clock
}

func NewRequestCommands(
	uow shared.UnitOfWork,
	resolver *AssigneeResolver,
	requestQueries queries.RequestQueries,
	clk clock.Clock,
) RequestCommands {
	return &requestCommandsImpl{
		uow:            uow,
		resolver:       resolver,
		requestQueries: requestQueries,
		clock:          clk,
	}
}

// CreateRequest validates, resolves the assignee and persists a request with
// its audit event in one transaction. When the agent replays an idempotency
// key the stored request is returned unchanged.
func (c *requestCommandsImpl) CreateRequest(
	ctx context.Context,
	req reqdto.CreateRequest,
	agentID uuid.UUID,
	idempotencyKey *string,
) (*CreateRequestResult, error) {
	key, err := parseIdempotencyKey(idempotencyKey)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	var (
		requestID  uuid.UUID
		isReplayed bool
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reads := tx.Reads()

		if key != nil {
			existingID, err := reads.RequestIDByIdempotencyKey(ctx, agentID, key.Value())
			if err != nil && !infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
			if existingID != nil {
				requestID = *existingID
				isReplayed = true
				return nil
			}
		}

		agent, err := c.validateAgent(ctx, reads, agentID)
		if err != nil {
			return err
		}

		if _, err := reads.BuyerByID(ctx, req.BuyerID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBuyerNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		lines, amount, err := c.priceRequest(ctx, reads, req)
		if err != nil {
			return err
		}

		tier := request.RequiredTierFor(amount)
		assigneeID, reason, err := c.resolver.Resolve(ctx, reads, agent, tier)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		var entity *request.Request
		if len(lines) > 0 {
			entity, err = request.NewRequest(
				uuid.New(), agentID, *agent.DivisionID, req.BuyerID, req.SiteID,
				req.InvoiceRef, req.Reason, lines, req.PhotoURLs,
				assigneeID, reason, key, c.clock.Now(),
			)
			if err != nil {
				return errs.Mark(err, ErrDomainValidation)
			}
		} else {
			entity = request.NewSingleAmountRequest(
				uuid.New(), agentID, *agent.DivisionID, req.BuyerID, req.SiteID,
				req.InvoiceRef, req.Reason, amount, req.PhotoURLs,
				assigneeID, reason, key, c.clock.Now(),
			)
		}

		requestID, err = tx.Requests().Create(ctx, tx.DB(), entity)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				// The unique violation aborted the transaction, so the
				// re-read has to happen outside it.
				return ErrDuplicateRequest
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := c.recordCreated(ctx, tx, entity); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		// Concurrent replay of the same key lost the insert race; the
		// winner's row is visible once our transaction rolled back.
		if errors.Is(err, ErrDuplicateRequest) && key != nil {
			existingID, readErr := c.uow.CommandReads().RequestIDByIdempotencyKey(ctx, agentID, key.Value())
			if readErr != nil || existingID == nil {
				return nil, err
			}
			requestID = *existingID
			isReplayed = true
		} else {
			return nil, err
		}
	}

	view, err := c.requestQueries.GetByIDSystem(ctx, requestID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &CreateRequestResult{Request: view, IsReplayed: isReplayed}, nil
}

func (c *requestCommandsImpl) validateAgent(
	ctx context.Context,
	reads shared.CommandReads,
	agentID uuid.UUID,
) (*shared.UserSnapshot, error) {
	agent, err := reads.UserByID(ctx, agentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrAgentNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !agent.Active || agent.Role != user.RoleAgent || agent.DivisionID == nil {
		return nil, ErrAgentNotEligible
	}
	return agent, nil
}

// priceRequest turns the payload into priced lines and a total. Itemized
// payloads are priced per line; the single-total fallback yields no lines
// and takes the amount as given.
func (c *requestCommandsImpl) priceRequest(
	ctx context.Context,
	reads shared.CommandReads,
	req reqdto.CreateRequest,
) ([]request.Line, request.Money, error) {
	if len(req.Lines) == 0 {
		if req.AmountCents == nil {
			return nil, request.Money{}, errs.Mark(request.ErrNoLines, ErrDomainValidation)
		}
		amount, err := request.NewMoney(*req.AmountCents)
		if err != nil {
			return nil, request.Money{}, errs.Mark(err, ErrDomainValidation)
		}
		return nil, amount, nil
	}

	lines, err := c.buildLines(ctx, reads, req)
	if err != nil {
		return nil, request.Money{}, err
	}
	return lines, request.TotalAmount(lines), nil
}

func (c *requestCommandsImpl) buildLines(
	ctx context.Context,
	reads shared.CommandReads,
	req reqdto.CreateRequest,
) ([]request.Line, error) {
	lines := make([]request.Line, 0, len(req.Lines))
	for _, in := range req.Lines {
		article, err := reads.ArticleByID(ctx, in.ArticleID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrArticleNotFound
			}
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !article.Active {
			return nil, ErrArticleInactive
		}

		unit, err := request.NewMoney(article.UnitPriceCents)
		if err != nil {
			return nil, errs.Mark(err, ErrDomainValidation)
		}
		qty, err := request.NewQuantity(in.Quantity)
		if err != nil {
			return nil, errs.Mark(err, ErrDomainValidation)
		}
		pct, err := request.NewDiscountPercent(in.DiscountPct)
		if err != nil {
			return nil, errs.Mark(err, ErrDomainValidation)
		}

		if in.AmountCents != nil {
			// The client already priced the line; keep its amount.
			lineAmount, err := request.NewMoney(*in.AmountCents)
			if err != nil {
				return nil, errs.Mark(err, ErrDomainValidation)
			}
			lines = append(lines, request.NewLineWithAmount(article.ID, article.Name, unit, qty, pct, lineAmount))
			continue
		}
		lines = append(lines, request.NewLine(article.ID, article.Name, unit, qty, pct))
	}
	return lines, nil
}

func (c *requestCommandsImpl) recordCreated(ctx context.Context, tx shared.Tx, entity *request.Request) error {
	payload, err := json.Marshal(map[string]any{
		"request_id":        entity.ID(),
		"amount_cents":      entity.Amount().Cents(),
		"required_tier":     entity.RequiredTier().String(),
		"assignee_id":       entity.AssigneeID(),
		"assignment_reason": entity.AssignmentReason().String(),
	})
	if err != nil {
		return err
	}

	if err := tx.Events().AddRequestEvent(ctx, tx.DB(), entity.ID(), entity.AgentID(), "request_created", payload); err != nil {
		return err
	}

	// Outbox row rides the same transaction as the request.
	return tx.Notifications().CreateJob(ctx, tx.DB(), "email", "request_created", payload, c.clock.Now())
}

func parseIdempotencyKey(raw *string) (*request.IdempotencyKey, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	key, err := request.NewIdempotencyKey(*raw)
	if err != nil {
		return nil, err
	}
	return &key, nil
}
