package request

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNegativeAmount        = errors.New("amount cannot be negative")
	ErrInvalidTier           = errors.New("invalid tier")
	ErrInvalidQuantity       = errors.New("quantity must be a positive integer")
	ErrInvalidDiscount       = errors.New("discount percent must be between 0 and 100")
	ErrInvalidIdempotencyKey = errors.New("idempotency key must be 8-128 characters")
)

// Money is an amount in cents. All arithmetic stays in integers; rounding
// happens once, when a price is computed.
type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: cents}, nil
}

// NewMoneyFromFloat converts a currency-unit amount (e.g. 5.02) to cents,
// rounding half away from zero.
func NewMoneyFromFloat(units float64) (Money, error) {
	if units < 0 {
		return Money{}, ErrNegativeAmount
	}
	return Money{cents: int64(math.Round(units * 100))}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Units() float64 {
	return float64(m.cents) / 100.0
}

func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", m.cents/100, m.cents%100)
}

// IdempotencyKey is the optional client-supplied duplicate-submission guard,
// unique per submitter.
type IdempotencyKey struct {
	value string
}

func NewIdempotencyKey(s string) (IdempotencyKey, error) {
	if len(s) < 8 || len(s) > 128 {
		return IdempotencyKey{}, ErrInvalidIdempotencyKey
	}
	return IdempotencyKey{value: s}, nil
}

func (k IdempotencyKey) Value() string {
	return k.value
}

// Quantity of articles on a line.
type Quantity struct {
	value int32
}

func NewQuantity(n int32) (Quantity, error) {
	if n <= 0 {
		return Quantity{}, ErrInvalidQuantity
	}
	return Quantity{value: n}, nil
}

func (q Quantity) Value() int32 {
	return q.value
}

// DiscountPercent in [0,100], kept with two-decimal precision.
type DiscountPercent struct {
	value float64
}

func NewDiscountPercent(pct float64) (DiscountPercent, error) {
	if pct < 0 || pct > 100 {
		return DiscountPercent{}, ErrInvalidDiscount
	}
	return DiscountPercent{value: math.Round(pct*100) / 100}, nil
}

func (d DiscountPercent) Value() float64 {
	return d.value
}

// BackSolveDiscount reconstructs a discount percent from line and gross
// amounts, clamped to [0,100]. Display fallback for legacy rows persisted
// before the percent column existed; the stored percent is authoritative
// when present.
func BackSolveDiscount(lineCents, grossCents int64) DiscountPercent {
	if grossCents <= 0 {
		return DiscountPercent{}
	}
	pct := (1 - float64(lineCents)/float64(grossCents)) * 100
	pct = math.Max(0, math.Min(100, pct))
	return DiscountPercent{value: math.Round(pct*100) / 100}
}
