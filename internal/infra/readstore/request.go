package readstore

import (
	"context"
	"time"

	"fin-approvals/internal/domain/request"
	"fin-approvals/internal/infra"
	"fin-approvals/internal/infra/db"
	"fin-approvals/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type RequestReadStore struct {
	db db.DBTX
}

func NewRequestReadStore(dbtx db.DBTX) *RequestReadStore {
	return &RequestReadStore{db: dbtx}
}

const findRequestByIDSQL = `
SELECT r.id, r.agent_id, ag.name, r.division_id, d.name, r.buyer_id, b.name,
       r.site_id, r.invoice_ref, r.reason, r.amount_cents, r.required_tier,
       r.status, r.assignee_id, asg.name, r.assignment_reason, r.created_at,
       ap.actor_id, act.name, ap.action, ap.comment, ap.decided_at
FROM requests r
JOIN users ag ON ag.id = r.agent_id
JOIN divisions d ON d.id = r.division_id
JOIN buyers b ON b.id = r.buyer_id
LEFT JOIN users asg ON asg.id = r.assignee_id
LEFT JOIN approvals ap ON ap.request_id = r.id
LEFT JOIN users act ON act.id = ap.actor_id
WHERE r.id = $1`

const findRequestLinesSQL = `
SELECT article_id, article_name, unit_price_cents, quantity, discount_pct, amount_cents
FROM request_lines
WHERE request_id = $1
ORDER BY position`

const findRequestPhotosSQL = `
SELECT url FROM request_photos WHERE request_id = $1 ORDER BY position`

func (r *RequestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RequestView, error) {
	var (
		view      queries.RequestView
		actorID   *uuid.UUID
		actorName *string
		action    *string
		comment   *string
		decidedAt *time.Time
	)
	err := r.db.QueryRow(ctx, findRequestByIDSQL, id).Scan(
		&view.ID, &view.AgentID, &view.AgentName, &view.DivisionID, &view.DivisionName,
		&view.BuyerID, &view.BuyerName, &view.SiteID, &view.InvoiceRef, &view.Reason,
		&view.AmountCents, &view.RequiredTier, &view.Status,
		&view.AssigneeID, &view.AssigneeName, &view.AssignmentReason, &view.CreatedAt,
		&actorID, &actorName, &action, &comment, &decidedAt,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find request by ID", err)
	}

	if actorID != nil && action != nil && decidedAt != nil {
		view.Decision = &queries.DecisionView{
			ActorID:   *actorID,
			Action:    *action,
			DecidedAt: *decidedAt,
		}
		if actorName != nil {
			view.Decision.ActorName = *actorName
		}
		if comment != nil {
			view.Decision.Comment = *comment
		}
	}

	lines, err := r.findLines(ctx, id)
	if err != nil {
		return nil, err
	}
	view.Lines = lines

	photos, err := r.findPhotos(ctx, id)
	if err != nil {
		return nil, err
	}
	view.PhotoURLs = photos

	return &view, nil
}

func (r *RequestReadStore) findLines(ctx context.Context, requestID uuid.UUID) ([]queries.RequestLineView, error) {
	rows, err := r.db.Query(ctx, findRequestLinesSQL, requestID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find request lines", err)
	}
	defer rows.Close()

	var lines []queries.RequestLineView
	for rows.Next() {
		var (
			line queries.RequestLineView
			pct  *float64
		)
		if err := rows.Scan(
			&line.ArticleID, &line.ArticleName, &line.UnitPriceCents,
			&line.Quantity, &pct, &line.AmountCents,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan request line", err)
		}
		if pct != nil {
			line.DiscountPct = *pct
		} else {
			// Rows imported before the percent column was stored
			gross := line.UnitPriceCents * int64(line.Quantity)
			line.DiscountPct = request.BackSolveDiscount(line.AmountCents, gross).Value()
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate request lines", err)
	}
	return lines, nil
}

func (r *RequestReadStore) findPhotos(ctx context.Context, requestID uuid.UUID) ([]string, error) {
	rows, err := r.db.Query(ctx, findRequestPhotosSQL, requestID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find request photos", err)
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, infra.WrapRepoErr("failed to scan request photo", err)
		}
		urls = append(urls, url)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate request photos", err)
	}
	return urls, nil
}

const listByAgentSQL = `
SELECT r.id, ag.name, b.name, r.invoice_ref, r.amount_cents, r.required_tier,
       r.status, asg.name, r.created_at, ap.decided_at
FROM requests r
JOIN users ag ON ag.id = r.agent_id
JOIN buyers b ON b.id = r.buyer_id
LEFT JOIN users asg ON asg.id = r.assignee_id
LEFT JOIN approvals ap ON ap.request_id = r.id
WHERE r.agent_id = $1
  AND ($2::text IS NULL OR r.status = $2)
  AND ($3::text IS NULL OR r.required_tier = $3)
  AND ($4::timestamptz IS NULL OR r.created_at >= $4)
  AND ($5::timestamptz IS NULL OR r.created_at <= $5)
ORDER BY r.created_at DESC, r.id DESC
LIMIT $6 OFFSET $7`

func (r *RequestReadStore) ListByAgent(ctx context.Context, agentID uuid.UUID, filter queries.RequestFilter) ([]*queries.RequestListItem, error) {
	rows, err := r.db.Query(ctx, listByAgentSQL,
		agentID, filter.Status, filter.Tier, filter.From, filter.To, filter.Page.Limit(), filter.Page.Offset())
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list requests by agent", err)
	}
	return scanListItems(rows)
}

func scanListItems(rows pgx.Rows) ([]*queries.RequestListItem, error) {
	defer rows.Close()

	items := []*queries.RequestListItem{}
	for rows.Next() {
		var item queries.RequestListItem
		if err := rows.Scan(
			&item.ID, &item.AgentName, &item.BuyerName, &item.InvoiceRef,
			&item.AmountCents, &item.RequiredTier, &item.Status,
			&item.AssigneeName, &item.CreatedAt, &item.DecidedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan request list item", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate request list", err)
	}
	return items, nil
}
