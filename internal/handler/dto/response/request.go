package response

import (
	"time"

	"fin-approvals/internal/usecase/queries"

	"github.com/google/uuid"
)

type RequestResponse struct {
	ID               uuid.UUID      `json:"id"`
	AgentID          uuid.UUID      `json:"agentId"`
	AgentName        string         `json:"agentName"`
	DivisionID       uuid.UUID      `json:"divisionId"`
	DivisionName     string         `json:"divisionName"`
	BuyerID          uuid.UUID      `json:"buyerId"`
	BuyerName        string         `json:"buyerName"`
	SiteID           *uuid.UUID     `json:"siteId,omitempty"`
	InvoiceRef       string         `json:"invoiceRef"`
	Reason           string         `json:"reason,omitempty"`
	AmountCents      int64          `json:"amountCents"`
	RequiredTier     string         `json:"requiredTier"`
	Status           string         `json:"status"`
	AssigneeID       *uuid.UUID     `json:"assigneeId,omitempty"`
	AssigneeName     *string        `json:"assigneeName,omitempty"`
	AssignmentReason string         `json:"assignmentReason"`
	Lines            []LineResponse `json:"lines"`
	PhotoURLs        []string       `json:"photoUrls,omitempty"`
	Decision         *DecisionBlock `json:"decision,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
}

type LineResponse struct {
	ArticleID      uuid.UUID `json:"articleId"`
	ArticleName    string    `json:"articleName"`
	UnitPriceCents int64     `json:"unitPriceCents"`
	Quantity       int32     `json:"quantity"`
	DiscountPct    float64   `json:"discountPct"`
	AmountCents    int64     `json:"amountCents"`
}

type DecisionBlock struct {
	ActorID   uuid.UUID `json:"actorId"`
	ActorName string    `json:"actorName"`
	Action    string    `json:"action"`
	Comment   string    `json:"comment,omitempty"`
	DecidedAt time.Time `json:"decidedAt"`
}

type RequestListResponse struct {
	ID           uuid.UUID  `json:"id"`
	AgentName    string     `json:"agentName"`
	BuyerName    string     `json:"buyerName"`
	InvoiceRef   string     `json:"invoiceRef"`
	AmountCents  int64      `json:"amountCents"`
	RequiredTier string     `json:"requiredTier"`
	Status       string     `json:"status"`
	AssigneeName *string    `json:"assigneeName,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	DecidedAt    *time.Time `json:"decidedAt,omitempty"`
}

func FromRequestView(rm *queries.RequestView) *RequestResponse {
	lines := make([]LineResponse, len(rm.Lines))
	for i, l := range rm.Lines {
		lines[i] = LineResponse{
			ArticleID:      l.ArticleID,
			ArticleName:    l.ArticleName,
			UnitPriceCents: l.UnitPriceCents,
			Quantity:       l.Quantity,
			DiscountPct:    l.DiscountPct,
			AmountCents:    l.AmountCents,
		}
	}

	resp := &RequestResponse{
		ID:               rm.ID,
		AgentID:          rm.AgentID,
		AgentName:        rm.AgentName,
		DivisionID:       rm.DivisionID,
		DivisionName:     rm.DivisionName,
		BuyerID:          rm.BuyerID,
		BuyerName:        rm.BuyerName,
		SiteID:           rm.SiteID,
		InvoiceRef:       rm.InvoiceRef,
		Reason:           rm.Reason,
		AmountCents:      rm.AmountCents,
		RequiredTier:     rm.RequiredTier,
		Status:           rm.Status,
		AssigneeID:       rm.AssigneeID,
		AssigneeName:     rm.AssigneeName,
		AssignmentReason: rm.AssignmentReason,
		Lines:            lines,
		PhotoURLs:        rm.PhotoURLs,
		CreatedAt:        rm.CreatedAt,
	}
	if rm.Decision != nil {
		resp.Decision = &DecisionBlock{
			ActorID:   rm.Decision.ActorID,
			ActorName: rm.Decision.ActorName,
			Action:    rm.Decision.Action,
			Comment:   rm.Decision.Comment,
			DecidedAt: rm.Decision.DecidedAt,
		}
	}
	return resp
}

func FromRequestListItem(rm *queries.RequestListItem) *RequestListResponse {
	return &RequestListResponse{
		ID:           rm.ID,
		AgentName:    rm.AgentName,
		BuyerName:    rm.BuyerName,
		InvoiceRef:   rm.InvoiceRef,
		AmountCents:  rm.AmountCents,
		RequiredTier: rm.RequiredTier,
		Status:       rm.Status,
		AssigneeName: rm.AssigneeName,
		CreatedAt:    rm.CreatedAt,
		DecidedAt:    rm.DecidedAt,
	}
}
