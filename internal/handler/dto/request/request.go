package request

import (
	"strings"

	"github.com/google/uuid"
)

type LineInput struct {
	ArticleID   uuid.UUID `json:"article_id" binding:"required"`
	Quantity    int32     `json:"quantity" binding:"required,gt=0"`
	DiscountPct float64   `json:"discount_pct" binding:"gte=0,lte=100"`
	// AmountCents keeps a caller-priced line total instead of computing
	// one from the article's current unit price.
	AmountCents *int64 `json:"amount_cents,omitempty" binding:"omitempty,gte=0"`
}

type CreateRequest struct {
	BuyerID    uuid.UUID   `json:"buyer_id" binding:"required"`
	SiteID     *uuid.UUID  `json:"site_id,omitempty"`
	InvoiceRef string      `json:"invoice_ref" binding:"required,max=64"`
	Reason     string      `json:"reason" binding:"max=2000"`
	Lines      []LineInput `json:"lines" binding:"omitempty,max=100,dive"`
	// AmountCents is the single-total form used by clients that do not
	// itemize lines. Ignored when lines are present.
	AmountCents *int64   `json:"amount_cents,omitempty" binding:"omitempty,gte=0"`
	PhotoURLs   []string `json:"photo_urls" binding:"max=10,dive,url"`
}

func (r *CreateRequest) Normalize() {
	r.InvoiceRef = strings.TrimSpace(r.InvoiceRef)
	r.Reason = strings.TrimSpace(r.Reason)
}

// HasPricing reports whether the payload carries itemized lines or the
// single-total fallback. Requests with neither are rejected before any
// read or write.
func (r *CreateRequest) HasPricing() bool {
	return len(r.Lines) > 0 || r.AmountCents != nil
}
