package engine

import (
	"github.com/aaryan182/probo/internal/book"
	"github.com/aaryan182/probo/internal/ledger"
	"github.com/aaryan182/probo/internal/money"
	"github.com/rs/zerolog/log"
)

// bookSweep runs the YES x NO pairing pass (spec.md §4.4.3) on symbol
// until the two buy-side heads no longer cross. Must be called with
// ex.mu already held for writing.
//
// Unlike the taker pass, book-sweep has no seller: both participants
// are buyers on complementary outcomes, and the engine mints the pair
// on the fly. Nobody's qty_locked is touched here (spec.md §9).
func (ex *Exchange) bookSweep(symbol string) {
	for {
		yesLevels, err := ex.book.Levels(symbol, ledger.YES, book.Bid, false)
		if err != nil || len(yesLevels) == 0 {
			return
		}
		noLevels, err := ex.book.Levels(symbol, ledger.NO, book.Bid, true)
		if err != nil || len(noLevels) == 0 {
			return
		}

		yesTop := yesLevels[0]
		noTop := noLevels[0]
		py, pn := yesTop.Price, noTop.Price
		if py.LessThan(pn) {
			return
		}

		k := yesTop.Total
		if noTop.Total < k {
			k = noTop.Total
		}
		m := money.Midpoint(py, pn)
		log.Debug().Str("symbol", symbol).Str("price", m.String()).Int64("qty", int64(k)).Msg("book sweep trade")
		ex.settleSweepPair(symbol, yesTop, noTop, py, pn, k)
	}
}

// settleSweepPair walks both levels' maker queues in lockstep,
// settling min(by_remaining, bn_remaining, remaining) units per step
// (spec.md §4.4.3). k is already min(yesLevel.Total, noLevel.Total).
func (ex *Exchange) settleSweepPair(symbol string, yesLevel, noLevel book.LevelView, py, pn money.Price, k money.Quantity) {
	yesMakers := yesLevel.Makers
	noMakers := noLevel.Makers

	yi, ni := 0, 0
	yRemaining := yesMakers[yi].Qty
	nRemaining := noMakers[ni].Qty

	for k > 0 {
		fill := k
		if yRemaining < fill {
			fill = yRemaining
		}
		if nRemaining < fill {
			fill = nRemaining
		}

		by := yesMakers[yi].User
		bn := noMakers[ni].User

		ex.cash.ConsumeLocked(by, money.Mul(py, fill))
		ex.cash.ConsumeLocked(bn, money.Mul(pn, fill))
		ex.inv.CreditFreeQty(by, symbol, ledger.YES, fill)
		ex.inv.CreditFreeQty(bn, symbol, ledger.NO, fill)
		ex.book.ReduceMaker(symbol, ledger.YES, book.Bid, py, by, fill)
		ex.book.ReduceMaker(symbol, ledger.NO, book.Bid, pn, bn, fill)

		yRemaining -= fill
		nRemaining -= fill
		k -= fill

		if yRemaining == 0 {
			yi++
			if yi < len(yesMakers) {
				yRemaining = yesMakers[yi].Qty
			}
		}
		if nRemaining == 0 {
			ni++
			if ni < len(noMakers) {
				nRemaining = noMakers[ni].Qty
			}
		}
	}
}
