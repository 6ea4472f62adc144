package repository

import (
	"context"

	"fin-approvals/internal/domain/request"
	"fin-approvals/internal/infra"
	"fin-approvals/internal/infra/db"

	"github.com/google/uuid"
)

type RequestRepository struct{}

func NewRequestRepository() *RequestRepository {
	return &RequestRepository{}
}

const insertRequestSQL = `
INSERT INTO requests (
    id, agent_id, division_id, buyer_id, site_id, invoice_ref, reason,
    amount_cents, required_tier, status, assignee_id, assignment_reason,
    idempotency_key, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
RETURNING id`

const insertLineSQL = `
INSERT INTO request_lines (
    id, request_id, article_id, article_name, unit_price_cents,
    quantity, discount_pct, amount_cents, position
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

const insertPhotoSQL = `
INSERT INTO request_photos (id, request_id, url, position)
VALUES ($1, $2, $3, $4)`

func (r *RequestRepository) Create(ctx context.Context, tx db.DBTX, req *request.Request) (uuid.UUID, error) {
	var key *string
	if k := req.IdempotencyKey(); k != nil {
		v := k.Value()
		key = &v
	}

	var id uuid.UUID
	err := tx.QueryRow(ctx, insertRequestSQL,
		req.ID(), req.AgentID(), req.DivisionID(), req.BuyerID(), req.SiteID(),
		req.InvoiceRef(), req.Reason(), req.Amount().Cents(),
		req.RequiredTier().String(), req.Status().String(),
		req.AssigneeID(), req.AssignmentReason().String(),
		key, req.CreatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert request", err)
	}

	for i, line := range req.Lines() {
		_, err := tx.Exec(ctx, insertLineSQL,
			uuid.New(), id, line.ArticleID(), line.ArticleName(),
			line.UnitPrice().Cents(), line.Quantity().Value(),
			line.Discount().Value(), line.Amount().Cents(), i,
		)
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to insert request line", err)
		}
	}

	for i, url := range req.PhotoURLs() {
		_, err := tx.Exec(ctx, insertPhotoSQL, uuid.New(), id, url, i)
		if err != nil {
			return uuid.Nil, infra.WrapRepoErr("failed to insert request photo", err)
		}
	}

	return id, nil
}

const transitionSQL = `
UPDATE requests SET status = $2 WHERE id = $1 AND status = 'pending'`

// TransitionIfPending is the conditional flip that makes concurrent decisions
// safe: the row count tells the caller whether it won.
func (r *RequestRepository) TransitionIfPending(
	ctx context.Context,
	tx db.DBTX,
	requestID uuid.UUID,
	to request.Status,
) (bool, error) {
	tag, err := tx.Exec(ctx, transitionSQL, requestID, to.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition request status", err)
	}
	return tag.RowsAffected() == 1, nil
}

const recordAssigneeSQL = `
UPDATE requests SET assignee_id = $2, assignment_reason = $3
WHERE id = $1 AND assignee_id IS NULL`

func (r *RequestRepository) RecordAssignee(
	ctx context.Context,
	tx db.DBTX,
	requestID uuid.UUID,
	assigneeID *uuid.UUID,
	reason request.AssignmentReason,
) error {
	if _, err := tx.Exec(ctx, recordAssigneeSQL, requestID, assigneeID, reason.String()); err != nil {
		return infra.WrapRepoErr("failed to record assignee", err)
	}
	return nil
}
