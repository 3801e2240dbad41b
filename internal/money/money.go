// Package money defines the fixed-point decimal types used everywhere
// in probo: Money (cash and notionals), Price (per-unit cost of a
// token, bounded to [1, 10]), and Quantity (whole tokens).
//
// NOTE: might want to compare with `Float` from `math/big`: more
// precise but slower. We use shopspring/decimal instead, since it is
// already base-10 and gives us exact arithmetic without rolling our
// own.
package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is cash, exact to at least 2 fractional digits.
type Money = decimal.Decimal

// Price is a per-token cost in the closed interval [PriceMin, PriceMax].
type Price = decimal.Decimal

// Quantity is a non-negative whole number of tokens.
type Quantity int64

// Zero is the additive identity, exposed so callers never construct a
// bare decimal.Decimal{} (which is valid but easy to typo as "zero" in
// review when it is actually zero-value-equivalent only by accident).
var Zero = decimal.Zero

// ParseDecimal parses any decimal literal with no range check. Used
// for config-driven constants (face value, price bounds) where the
// bound itself is being established, not checked against.
func ParseDecimal(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return d, nil
}

// ParsePrice parses a decimal literal and requires it to land in the
// closed interval [min, max]. Any number of fractional digits is
// accepted at the boundary; canonicalization to the public one-digit
// representation is the caller's concern, not this package's.
func ParsePrice(s string, min, max Price) (Price, error) {
	p, err := decimal.NewFromString(s)
	if err != nil {
		return Price{}, fmt.Errorf("invalid price %q: %w", s, err)
	}
	if p.LessThan(min) || p.GreaterThan(max) {
		return Price{}, fmt.Errorf("price %s out of range [%s, %s]", p, min, max)
	}
	return p, nil
}

// ValidQuantity reports whether q is a usable order/mint quantity: a
// positive integer. Zero and negative quantities are always rejected
// by callers; this helper centralizes that check.
func ValidQuantity(q Quantity) bool {
	return q >= 1
}

// Mul returns p*q as Money, q taken as an exact integer multiplier.
func Mul(p Price, q Quantity) Money {
	return p.Mul(decimal.NewFromInt(int64(q)))
}

// Midpoint returns round_half_even((a+b)/2, 2), the book-sweep trade
// price rule from spec.md §4.4.3.
func Midpoint(a, b Price) Price {
	return a.Add(b).Mul(decimal.New(5, -1)).RoundBank(2)
}
