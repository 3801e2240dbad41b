package engine

import "github.com/aaryan182/probo/internal/money"

// FillStatus summarizes the outcome of a buy or sell placement
// (spec.md §4.4.1 step 8, §6.1).
type FillStatus string

const (
	FullyMatched     FillStatus = "fully_matched"
	PartiallyMatched FillStatus = "partially_matched"
	Pending          FillStatus = "pending"
)

func fillStatus(requested, remaining money.Quantity) FillStatus {
	switch {
	case remaining == 0:
		return FullyMatched
	case remaining < requested:
		return PartiallyMatched
	default:
		return Pending
	}
}

// PlaceResult is returned by Buy and Sell.
type PlaceResult struct {
	Status  FillStatus
	Filled  money.Quantity
	Resting money.Quantity
}

// CancelResult is returned by Cancel.
type CancelResult struct {
	Canceled money.Quantity
}

// MintResult is returned by Mint.
type MintResult struct {
	Quantity  money.Quantity
	Price     money.Price
	CashSpent money.Money
}
