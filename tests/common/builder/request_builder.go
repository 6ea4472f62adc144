//go:build unit || e2e

package builder

import (
	"time"

	domrequest "fin-approvals/internal/domain/request"
	reqdto "fin-approvals/internal/handler/dto/request"
	"fin-approvals/internal/usecase/queries"

	"github.com/google/uuid"
)

type LineSpec struct {
	ArticleID   uuid.UUID
	ArticleName string
	UnitCents   int64
	Quantity    int32
	DiscountPct float64
}

type RequestBuilder struct {
	ID               uuid.UUID
	AgentID          uuid.UUID
	DivisionID       uuid.UUID
	BuyerID          uuid.UUID
	SiteID           *uuid.UUID
	InvoiceRef       string
	Reason           string
	Lines            []LineSpec
	PhotoURLs        []string
	AssigneeID       *uuid.UUID
	AssignmentReason domrequest.AssignmentReason
	IdempotencyKey   string
	CreatedAt        time.Time
}

func NewRequestBuilder() *RequestBuilder {
	assignee := uuid.New()
	return &RequestBuilder{
		ID:         uuid.New(),
		AgentID:    uuid.New(),
		DivisionID: uuid.New(),
		BuyerID:    uuid.New(),
		InvoiceRef: "INV-2025-0001",
		Reason:     "Repeat customer, bulk order",
		Lines: []LineSpec{
			{ArticleID: uuid.New(), ArticleName: "Widget", UnitCents: 120, Quantity: 3, DiscountPct: 10},
			{ArticleID: uuid.New(), ArticleName: "Gadget", UnitCents: 89, Quantity: 2, DiscountPct: 0},
		},
		AssigneeID:       &assignee,
		AssignmentReason: domrequest.ReasonAgentPreference,
		CreatedAt:        time.Now(),
	}
}

func (b *RequestBuilder) With(mutate func(*RequestBuilder)) *RequestBuilder {
	mutate(b)
	return b
}

func (b *RequestBuilder) BuildDomain() (*domrequest.Request, error) {
	lines := make([]domrequest.Line, 0, len(b.Lines))
	for _, spec := range b.Lines {
		unit, err := domrequest.NewMoney(spec.UnitCents)
		if err != nil {
			return nil, err
		}
		qty, err := domrequest.NewQuantity(spec.Quantity)
		if err != nil {
			return nil, err
		}
		pct, err := domrequest.NewDiscountPercent(spec.DiscountPct)
		if err != nil {
			return nil, err
		}
		lines = append(lines, domrequest.NewLine(spec.ArticleID, spec.ArticleName, unit, qty, pct))
	}
	var key *domrequest.IdempotencyKey
	if b.IdempotencyKey != "" {
		k, err := domrequest.NewIdempotencyKey(b.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		key = &k
	}
	return domrequest.NewRequest(
		b.ID, b.AgentID, b.DivisionID, b.BuyerID, b.SiteID,
		b.InvoiceRef, b.Reason, lines, b.PhotoURLs,
		b.AssigneeID, b.AssignmentReason, key, b.CreatedAt,
	)
}

func (b *RequestBuilder) BuildCreateRequestDTO() reqdto.CreateRequest {
	lines := make([]reqdto.LineInput, 0, len(b.Lines))
	for _, spec := range b.Lines {
		lines = append(lines, reqdto.LineInput{
			ArticleID:   spec.ArticleID,
			Quantity:    spec.Quantity,
			DiscountPct: spec.DiscountPct,
		})
	}
	return reqdto.CreateRequest{
		BuyerID:    b.BuyerID,
		SiteID:     b.SiteID,
		InvoiceRef: b.InvoiceRef,
		Reason:     b.Reason,
		Lines:      lines,
		PhotoURLs:  b.PhotoURLs,
	}
}

func (b *RequestBuilder) BuildView() *queries.RequestView {
	lines := make([]queries.RequestLineView, 0, len(b.Lines))
	var total int64
	for _, spec := range b.Lines {
		amount := spec.UnitCents * int64(spec.Quantity)
		amount -= int64(float64(amount) * spec.DiscountPct / 100)
		total += amount
		lines = append(lines, queries.RequestLineView{
			ArticleID:      spec.ArticleID,
			ArticleName:    spec.ArticleName,
			UnitPriceCents: spec.UnitCents,
			Quantity:       spec.Quantity,
			DiscountPct:    spec.DiscountPct,
			AmountCents:    amount,
		})
	}
	return &queries.RequestView{
		ID:               b.ID,
		AgentID:          b.AgentID,
		AgentName:        "agent",
		DivisionID:       b.DivisionID,
		DivisionName:     "Default Division",
		BuyerID:          b.BuyerID,
		BuyerName:        "Default Buyer",
		SiteID:           b.SiteID,
		InvoiceRef:       b.InvoiceRef,
		Reason:           b.Reason,
		AmountCents:      total,
		RequiredTier:     domrequest.TierTeamLead.String(),
		Status:           domrequest.StatusPending.String(),
		AssigneeID:       b.AssigneeID,
		AssignmentReason: b.AssignmentReason.String(),
		Lines:            lines,
		PhotoURLs:        b.PhotoURLs,
		CreatedAt:        b.CreatedAt,
	}
}
