package request

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNoLines = errors.New("request must contain at least one line")

// Request is a discount approval request: a set of discounted lines routed
// to an approval tier by total amount.
type Request struct {
	id               uuid.UUID
	agentID          uuid.UUID
	divisionID       uuid.UUID
	buyerID          uuid.UUID
	siteID           *uuid.UUID
	invoiceRef       string
	reason           string
	lines            []Line
	photoURLs        []string
	amount           Money
	requiredTier     Tier
	assigneeID       *uuid.UUID
	assignmentReason AssignmentReason
	status           Status
	idempotencyKey   *IdempotencyKey
	createdAt        time.Time
}

// NewRequest builds a pending request. The total amount and required tier are
// computed here, once, and never change afterwards.
func NewRequest(
	id uuid.UUID,
	agentID uuid.UUID,
	divisionID uuid.UUID,
	buyerID uuid.UUID,
	siteID *uuid.UUID,
	invoiceRef string,
	reason string,
	lines []Line,
	photoURLs []string,
	assigneeID *uuid.UUID,
	assignmentReason AssignmentReason,
	idempotencyKey *IdempotencyKey,
	now time.Time,
) (*Request, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	total := TotalAmount(lines)
	return &Request{
		id:               id,
		agentID:          agentID,
		divisionID:       divisionID,
		buyerID:          buyerID,
		siteID:           siteID,
		invoiceRef:       invoiceRef,
		reason:           reason,
		lines:            lines,
		photoURLs:        photoURLs,
		amount:           total,
		requiredTier:     RequiredTierFor(total),
		assigneeID:       assigneeID,
		assignmentReason: assignmentReason,
		status:           StatusPending,
		idempotencyKey:   idempotencyKey,
		createdAt:        now,
	}, nil
}

// NewSingleAmountRequest builds a pending request from a bare total with
// no lines. Older clients submit only the total they negotiated; tier
// routing works the same either way.
func NewSingleAmountRequest(
	id uuid.UUID,
	agentID uuid.UUID,
	divisionID uuid.UUID,
	buyerID uuid.UUID,
	siteID *uuid.UUID,
	invoiceRef string,
	reason string,
	amount Money,
	photoURLs []string,
	assigneeID *uuid.UUID,
	assignmentReason AssignmentReason,
	idempotencyKey *IdempotencyKey,
	now time.Time,
) *Request {
	return &Request{
		id:               id,
		agentID:          agentID,
		divisionID:       divisionID,
		buyerID:          buyerID,
		siteID:           siteID,
		invoiceRef:       invoiceRef,
		reason:           reason,
		photoURLs:        photoURLs,
		amount:           amount,
		requiredTier:     RequiredTierFor(amount),
		assigneeID:       assigneeID,
		assignmentReason: assignmentReason,
		status:           StatusPending,
		idempotencyKey:   idempotencyKey,
		createdAt:        now,
	}
}

// Reconstruct rebuilds a persisted request as-is, without recomputing the
// tier. Amounts and tier are immutable once stored.
func Reconstruct(
	id uuid.UUID,
	agentID uuid.UUID,
	divisionID uuid.UUID,
	buyerID uuid.UUID,
	siteID *uuid.UUID,
	invoiceRef string,
	reason string,
	lines []Line,
	photoURLs []string,
	amount Money,
	requiredTier Tier,
	assigneeID *uuid.UUID,
	assignmentReason AssignmentReason,
	status Status,
	idempotencyKey *IdempotencyKey,
	createdAt time.Time,
) *Request {
	return &Request{
		id:               id,
		agentID:          agentID,
		divisionID:       divisionID,
		buyerID:          buyerID,
		siteID:           siteID,
		invoiceRef:       invoiceRef,
		reason:           reason,
		lines:            lines,
		photoURLs:        photoURLs,
		amount:           amount,
		requiredTier:     requiredTier,
		assigneeID:       assigneeID,
		assignmentReason: assignmentReason,
		status:           status,
		idempotencyKey:   idempotencyKey,
		createdAt:        createdAt,
	}
}

func (r *Request) ID() uuid.UUID                       { return r.id }
func (r *Request) AgentID() uuid.UUID                  { return r.agentID }
func (r *Request) DivisionID() uuid.UUID               { return r.divisionID }
func (r *Request) BuyerID() uuid.UUID                  { return r.buyerID }
func (r *Request) SiteID() *uuid.UUID                  { return r.siteID }
func (r *Request) InvoiceRef() string                  { return r.invoiceRef }
func (r *Request) Reason() string                      { return r.reason }
func (r *Request) Lines() []Line                       { return r.lines }
func (r *Request) PhotoURLs() []string                 { return r.photoURLs }
func (r *Request) Amount() Money                       { return r.amount }
func (r *Request) RequiredTier() Tier                  { return r.requiredTier }
func (r *Request) AssigneeID() *uuid.UUID              { return r.assigneeID }
func (r *Request) AssignmentReason() AssignmentReason  { return r.assignmentReason }
func (r *Request) Status() Status                      { return r.status }
func (r *Request) IdempotencyKey() *IdempotencyKey     { return r.idempotencyKey }
func (r *Request) CreatedAt() time.Time                { return r.createdAt }
