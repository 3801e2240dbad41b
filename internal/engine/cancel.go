package engine

import (
	"errors"
	"fmt"

	"github.com/aaryan182/probo/internal/book"
	"github.com/aaryan182/probo/internal/events"
	"github.com/aaryan182/probo/internal/ledger"
	"github.com/aaryan182/probo/internal/money"
	"github.com/aaryan182/probo/internal/xerrors"
)

// Cancel shrinks a resting order by up to qtyRequest (spec.md §4.4.4).
// The operation surface has no bid/ask discriminator — a cancel names
// only (user, symbol, outcome, price) — so this tries the resting buy
// side first, then the resting sell side, and fails ErrOrderNotFound
// only if neither holds anything for u at p. See DESIGN.md.
func (ex *Exchange) Cancel(u, symbol string, outcome ledger.Outcome, p money.Price, qtyRequest money.Quantity) (CancelResult, error) {
	if u == "" {
		return CancelResult{}, fmt.Errorf("%w: empty user id", xerrors.ErrInvalidInput)
	}

	ex.mu.Lock()
	defer ex.mu.Unlock()

	if err := ex.validateOrderInput(symbol, qtyRequest, p); err != nil {
		return CancelResult{}, err
	}

	removed, err := ex.book.ReduceMaker(symbol, outcome, book.Bid, p, u, qtyRequest)
	if err == nil {
		unlockErr := ex.cash.Unlock(u, money.Mul(p, removed))
		ex.emitCanceled(u, symbol, outcome, p, removed)
		if unlockErr != nil && !errors.Is(unlockErr, xerrors.ErrLedgerInconsistency) {
			return CancelResult{}, unlockErr
		}
		// ErrLedgerInconsistency is reported but does not undo the
		// cancel that already committed — see DESIGN.md §8 scenario 4.
		return CancelResult{Canceled: removed}, unlockErr
	}
	if !errors.Is(err, xerrors.ErrOrderNotFound) {
		return CancelResult{}, err
	}

	removed, err = ex.book.ReduceMaker(symbol, outcome, book.Ask, p, u, qtyRequest)
	if err != nil {
		return CancelResult{}, err
	}
	unlockErr := ex.inv.UnlockQty(u, symbol, outcome, removed)
	ex.emitCanceled(u, symbol, outcome, p, removed)
	if unlockErr != nil && !errors.Is(unlockErr, xerrors.ErrLedgerInconsistency) {
		return CancelResult{}, unlockErr
	}
	return CancelResult{Canceled: removed}, unlockErr
}

func (ex *Exchange) emitCanceled(u, symbol string, outcome ledger.Outcome, p money.Price, qty money.Quantity) {
	ex.queue.Enqueue(events.New(events.OrderCanceled, events.OrderCanceledPayload{
		UserID:   u,
		Symbol:   symbol,
		Quantity: int64(qty),
		Price:    p.String(),
		Outcome:  outcome.String(),
	}))
}
