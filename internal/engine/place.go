package engine

import (
	"fmt"

	"github.com/aaryan182/probo/internal/book"
	"github.com/aaryan182/probo/internal/events"
	"github.com/aaryan182/probo/internal/ledger"
	"github.com/aaryan182/probo/internal/money"
	"github.com/aaryan182/probo/internal/xerrors"
)

// Buy places a taker buy and runs the book-sweep pass (spec.md
// §4.4.1). The taker crosses complement(outcome)'s resting ask book —
// a sell of outcome S rests as an ask on S's own book, which is
// exactly what a buy of complement(S) walks here. See DESIGN.md for
// why this cross-outcome wiring, not same-outcome, is the one spec.md
// §3 and §4.4.1 both specify.
func (ex *Exchange) Buy(u, symbol string, outcome ledger.Outcome, p money.Price, qty money.Quantity) (PlaceResult, error) {
	if u == "" {
		return PlaceResult{}, fmt.Errorf("%w: empty user id", xerrors.ErrInvalidInput)
	}

	ex.mu.Lock()
	defer ex.mu.Unlock()

	if err := ex.validateOrderInput(symbol, qty, p); err != nil {
		return PlaceResult{}, err
	}

	notional := money.Mul(p, qty)
	if err := ex.cash.Lock(u, notional); err != nil {
		return PlaceResult{}, err
	}

	opposite := outcome.Complement()
	remaining := qty
	var consumed money.Money = money.Zero

	askLevels, _ := ex.book.Levels(symbol, opposite, book.Ask, true)
	for _, lvl := range askLevels {
		if remaining == 0 {
			break
		}
		if lvl.Price.GreaterThan(p) {
			break
		}
		for _, maker := range lvl.Makers {
			if remaining == 0 {
				break
			}
			fill := maker.Qty
			if fill > remaining {
				fill = remaining
			}
			tradeNotional := money.Mul(lvl.Price, fill)

			if err := ex.cash.ConsumeLocked(u, tradeNotional); err != nil {
				return PlaceResult{}, err
			}
			ex.inv.CreditFreeQty(u, symbol, outcome, fill)

			if err := ex.inv.ConsumeLockedQty(maker.User, symbol, opposite, fill); err != nil {
				return PlaceResult{}, err
			}
			ex.cash.CreditFree(maker.User, tradeNotional)

			if _, err := ex.book.ReduceMaker(symbol, opposite, book.Ask, lvl.Price, maker.User, fill); err != nil {
				return PlaceResult{}, err
			}

			consumed = consumed.Add(tradeNotional)
			remaining -= fill
		}
	}

	if remaining > 0 {
		if err := ex.book.AddMaker(symbol, outcome, book.Bid, p, u, remaining); err != nil {
			return PlaceResult{}, err
		}
	}

	restingReservation := money.Mul(p, remaining)
	refund := notional.Sub(consumed).Sub(restingReservation)
	if refund.IsPositive() {
		if err := ex.cash.Unlock(u, refund); err != nil {
			return PlaceResult{}, err
		}
	}

	ex.bookSweep(symbol)

	ex.queue.Enqueue(events.New(events.OrderPlaced, events.OrderPlacedPayload{
		Type:     "buy",
		UserID:   u,
		Symbol:   symbol,
		Quantity: int64(qty),
		Price:    p.String(),
		Outcome:  outcome.String(),
	}))

	return PlaceResult{Status: fillStatus(qty, remaining), Filled: qty - remaining, Resting: remaining}, nil
}

// Sell places a resting sell (spec.md §4.4.2). There is no taker pass
// on sells in this spec; the order always rests until consumed by a
// later buy's taker pass or by the book-sweep.
func (ex *Exchange) Sell(u, symbol string, outcome ledger.Outcome, p money.Price, qty money.Quantity) (PlaceResult, error) {
	if u == "" {
		return PlaceResult{}, fmt.Errorf("%w: empty user id", xerrors.ErrInvalidInput)
	}

	ex.mu.Lock()
	defer ex.mu.Unlock()

	if err := ex.validateOrderInput(symbol, qty, p); err != nil {
		return PlaceResult{}, err
	}

	if err := ex.inv.LockQty(u, symbol, outcome, qty); err != nil {
		return PlaceResult{}, err
	}
	if err := ex.book.AddMaker(symbol, outcome, book.Ask, p, u, qty); err != nil {
		return PlaceResult{}, err
	}

	ex.bookSweep(symbol)

	ex.queue.Enqueue(events.New(events.OrderPlaced, events.OrderPlacedPayload{
		Type:     "sell",
		UserID:   u,
		Symbol:   symbol,
		Quantity: int64(qty),
		Price:    p.String(),
		Outcome:  outcome.String(),
	}))

	return PlaceResult{Status: Pending, Filled: 0, Resting: qty}, nil
}
