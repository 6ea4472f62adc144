package request

import (
	"math"

	"github.com/google/uuid"
)

// Line is one discounted article position on a request.
type Line struct {
	articleID   uuid.UUID
	articleName string
	unitPrice   Money
	quantity    Quantity
	discount    DiscountPercent
	amount      Money
}

// NewLine prices a line from the article's current unit price. The discounted
// amount is round(unit * qty * (1 - pct/100)), rounded half away from zero,
// so a line never drifts more than half a cent from the exact value.
func NewLine(
	articleID uuid.UUID,
	articleName string,
	unitPrice Money,
	quantity Quantity,
	discount DiscountPercent,
) Line {
	exact := float64(unitPrice.Cents()) * float64(quantity.Value()) * (1 - discount.Value()/100)
	return Line{
		articleID:   articleID,
		articleName: articleName,
		unitPrice:   unitPrice,
		quantity:    quantity,
		discount:    discount,
		amount:      Money{cents: int64(math.Round(exact))},
	}
}

// NewLineWithAmount keeps a caller-priced amount as-is instead of
// computing one from the unit price.
func NewLineWithAmount(
	articleID uuid.UUID,
	articleName string,
	unitPrice Money,
	quantity Quantity,
	discount DiscountPercent,
	amount Money,
) Line {
	return Line{
		articleID:   articleID,
		articleName: articleName,
		unitPrice:   unitPrice,
		quantity:    quantity,
		discount:    discount,
		amount:      amount,
	}
}

// ReconstructLine rebuilds a persisted line without re-pricing it.
func ReconstructLine(
	articleID uuid.UUID,
	articleName string,
	unitPrice Money,
	quantity Quantity,
	discount DiscountPercent,
	amount Money,
) Line {
	return NewLineWithAmount(articleID, articleName, unitPrice, quantity, discount, amount)
}

func (l Line) ArticleID() uuid.UUID {
	return l.articleID
}

func (l Line) ArticleName() string {
	return l.articleName
}

func (l Line) UnitPrice() Money {
	return l.unitPrice
}

func (l Line) Quantity() Quantity {
	return l.quantity
}

func (l Line) Discount() DiscountPercent {
	return l.discount
}

func (l Line) Amount() Money {
	return l.amount
}

// TotalAmount sums line amounts. The request tier is derived from this sum.
func TotalAmount(lines []Line) Money {
	var total Money
	for _, l := range lines {
		total = total.Add(l.amount)
	}
	return total
}
