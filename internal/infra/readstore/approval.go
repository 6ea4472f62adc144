package readstore

import (
	"context"

	"fin-approvals/internal/infra"
	"fin-approvals/internal/infra/db"
	"fin-approvals/internal/usecase/queries"

	"github.com/google/uuid"
)

// ApprovalReadStore serves the approver-facing listings: pending queues
// scoped per role, and decided history.
type ApprovalReadStore struct {
	db db.DBTX
}

func NewApprovalReadStore(dbtx db.DBTX) *ApprovalReadStore {
	return &ApprovalReadStore{db: dbtx}
}

const listItemSelect = `
SELECT r.id, ag.name, b.name, r.invoice_ref, r.amount_cents, r.required_tier,
       r.status, asg.name, r.created_at, ap.decided_at
FROM requests r
JOIN users ag ON ag.id = r.agent_id
JOIN buyers b ON b.id = r.buyer_id
LEFT JOIN users asg ON asg.id = r.assignee_id
LEFT JOIN approvals ap ON ap.request_id = r.id
`

const pendingAssignedToSQL = listItemSelect + `
WHERE r.status = 'pending' AND r.assignee_id = $1
  AND ($2::text IS NULL OR r.required_tier = $2)
ORDER BY r.created_at, r.id
LIMIT $3 OFFSET $4`

func (r *ApprovalReadStore) ListPendingAssignedTo(ctx context.Context, assigneeID uuid.UUID, filter queries.RequestFilter) ([]*queries.RequestListItem, error) {
	rows, err := r.db.Query(ctx, pendingAssignedToSQL,
		assigneeID, filter.Tier, filter.Page.Limit(), filter.Page.Offset())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list pending requests by assignee", err)
	}
	return scanListItems(rows)
}

const pendingByTierInDivisionSQL = listItemSelect + `
WHERE r.status = 'pending' AND r.required_tier = $1 AND r.division_id = $2
ORDER BY r.created_at, r.id
LIMIT $3 OFFSET $4`

func (r *ApprovalReadStore) ListPendingByTierInDivision(ctx context.Context, tier string, divisionID uuid.UUID, filter queries.RequestFilter) ([]*queries.RequestListItem, error) {
	rows, err := r.db.Query(ctx, pendingByTierInDivisionSQL,
		tier, divisionID, filter.Page.Limit(), filter.Page.Offset())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list pending requests by division", err)
	}
	return scanListItems(rows)
}

const pendingByTierSQL = listItemSelect + `
WHERE r.status = 'pending' AND r.required_tier = $1
ORDER BY r.created_at, r.id
LIMIT $2 OFFSET $3`

func (r *ApprovalReadStore) ListPendingByTier(ctx context.Context, tier string, filter queries.RequestFilter) ([]*queries.RequestListItem, error) {
	rows, err := r.db.Query(ctx, pendingByTierSQL,
		tier, filter.Page.Limit(), filter.Page.Offset())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list pending requests by tier", err)
	}
	return scanListItems(rows)
}

const decidedBySQL = listItemSelect + `
WHERE r.status <> 'pending' AND ap.actor_id = $1
  AND ($2::text IS NULL OR r.status = $2)
ORDER BY ap.decided_at DESC, r.id DESC
LIMIT $3 OFFSET $4`

func (r *ApprovalReadStore) ListDecidedBy(ctx context.Context, actorID uuid.UUID, filter queries.RequestFilter) ([]*queries.RequestListItem, error) {
	rows, err := r.db.Query(ctx, decidedBySQL,
		actorID, filter.Status, filter.Page.Limit(), filter.Page.Offset())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list decided requests by actor", err)
	}
	return scanListItems(rows)
}

const decidedInDivisionSQL = listItemSelect + `
WHERE r.status <> 'pending' AND r.division_id = $1
  AND ($2::text IS NULL OR r.status = $2)
ORDER BY ap.decided_at DESC, r.id DESC
LIMIT $3 OFFSET $4`

func (r *ApprovalReadStore) ListDecidedInDivision(ctx context.Context, divisionID uuid.UUID, filter queries.RequestFilter) ([]*queries.RequestListItem, error) {
	rows, err := r.db.Query(ctx, decidedInDivisionSQL,
		divisionID, filter.Status, filter.Page.Limit(), filter.Page.Offset())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list decided requests by division", err)
	}
	return scanListItems(rows)
}

const decidedSQL = listItemSelect + `
WHERE r.status <> 'pending'
  AND ($1::text IS NULL OR r.status = $1)
ORDER BY ap.decided_at DESC, r.id DESC
LIMIT $2 OFFSET $3`

func (r *ApprovalReadStore) ListDecided(ctx context.Context, filter queries.RequestFilter) ([]*queries.RequestListItem, error) {
	rows, err := r.db.Query(ctx, decidedSQL,
		filter.Status, filter.Page.Limit(), filter.Page.Offset())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list decided requests", err)
	}
	return scanListItems(rows)
}
