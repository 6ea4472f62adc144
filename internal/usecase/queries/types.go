package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type RequestView struct {
	ID               uuid.UUID         `json:"id"`
	AgentID          uuid.UUID         `json:"agent_id"`
	AgentName        string            `json:"agent_name"`
	DivisionID       uuid.UUID         `json:"division_id"`
	DivisionName     string            `json:"division_name"`
	BuyerID          uuid.UUID         `json:"buyer_id"`
	BuyerName        string            `json:"buyer_name"`
	SiteID           *uuid.UUID        `json:"site_id,omitempty"`
	InvoiceRef       string            `json:"invoice_ref"`
	Reason           string            `json:"reason,omitempty"`
	AmountCents      int64             `json:"amount_cents"`
	RequiredTier     string            `json:"required_tier"`
	Status           string            `json:"status"`
	AssigneeID       *uuid.UUID        `json:"assignee_id,omitempty"`
	AssigneeName     *string           `json:"assignee_name,omitempty"`
	AssignmentReason string            `json:"assignment_reason"`
	Lines            []RequestLineView `json:"lines"`
	PhotoURLs        []string          `json:"photo_urls,omitempty"`
	Decision         *DecisionView     `json:"decision,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

type RequestLineView struct {
	ArticleID      uuid.UUID `json:"article_id"`
	ArticleName    string    `json:"article_name"`
	UnitPriceCents int64     `json:"unit_price_cents"`
	Quantity       int32     `json:"quantity"`
	DiscountPct    float64   `json:"discount_pct"`
	AmountCents    int64     `json:"amount_cents"`
}

type DecisionView struct {
	ActorID   uuid.UUID `json:"actor_id"`
	ActorName string    `json:"actor_name"`
	Action    string    `json:"action"`
	Comment   string    `json:"comment,omitempty"`
	DecidedAt time.Time `json:"decided_at"`
}

type RequestListItem struct {
	ID           uuid.UUID  `json:"id"`
	AgentName    string     `json:"agent_name"`
	BuyerName    string     `json:"buyer_name"`
	InvoiceRef   string     `json:"invoice_ref"`
	AmountCents  int64      `json:"amount_cents"`
	RequiredTier string     `json:"required_tier"`
	Status       string     `json:"status"`
	AssigneeName *string    `json:"assignee_name,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
}

// AuthorizedUserView represents read-optimized user data with authorization info
type AuthorizedUserView struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Name       string     `json:"name"`
	Role       string     `json:"role"`
	DivisionID *uuid.UUID `json:"division_id,omitempty"`
	IsActive   bool       `json:"is_active"`
}

// Page is limit/offset pagination with a total count for the client.
type Page struct {
	Number  int
	PerPage int
}

func (p Page) Limit() int32 {
	per := p.PerPage
	if per <= 0 || per > 100 {
		per = 20
	}
	return int32(per)
}

func (p Page) Offset() int32 {
	n := p.Number
	if n <= 1 {
		return 0
	}
	return int32(n-1) * p.Limit()
}

// RequestFilter narrows request listings. From and To bound the creation
// timestamp, inclusive on both ends.
type RequestFilter struct {
	Status *string
	Tier   *string
	From   *time.Time
	To     *time.Time
	Page   Page
}
