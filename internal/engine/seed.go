package engine

import (
	"github.com/aaryan182/probo/internal/book"
	"github.com/aaryan182/probo/internal/events"
	"github.com/aaryan182/probo/internal/ledger"
	"github.com/aaryan182/probo/internal/money"
)

const seedSymbol = "BTC_USDT_10_Oct_2024_9_30"

// ResetData clears all state and reinstates the deterministic fixture
// from spec.md §6.4. This core never loads seed data from a file or a
// database — that mechanism sits behind the external boundary spec.md
// §1 excludes — but the fixture itself is in-scope and fixed.
func (ex *Exchange) ResetData() {
	ex.mu.Lock()
	defer ex.mu.Unlock()

	ex.cash = ledger.NewCashLedger()
	ex.inv = ledger.NewInventoryLedger()
	ex.book.Reset()

	must := func(s string) money.Money {
		d, err := money.ParseDecimal(s)
		if err != nil {
			panic(err)
		}
		return d
	}

	// Each user is funded with free+locked and then locks the locked
	// part, so balances land on the fixture's (free, locked) pairs:
	// user1 (10000, 0), user2 (20000, 5000), user3 (15000, 2000).
	ex.cash.Deposit("user1", must("10000"))
	ex.cash.Deposit("user2", must("25000"))
	_ = ex.cash.Lock("user2", must("5000"))
	ex.cash.Deposit("user3", must("17000"))
	_ = ex.cash.Lock("user3", must("2000"))

	_ = ex.book.CreateSymbol(seedSymbol)

	yes95 := must("9.5")
	yes85 := must("8.5")
	no105 := must("10.5")

	_ = ex.book.AddMaker(seedSymbol, ledger.YES, book.Bid, yes95, "user1", 200)
	_ = ex.book.AddMaker(seedSymbol, ledger.YES, book.Bid, yes95, "user2", 1000)

	_ = ex.book.AddMaker(seedSymbol, ledger.YES, book.Bid, yes85, "user1", 300)
	_ = ex.book.AddMaker(seedSymbol, ledger.YES, book.Bid, yes85, "user2", 300)
	_ = ex.book.AddMaker(seedSymbol, ledger.YES, book.Bid, yes85, "user3", 600)

	_ = ex.book.AddMaker(seedSymbol, ledger.NO, book.Bid, no105, "user2", 500)
	_ = ex.book.AddMaker(seedSymbol, ledger.NO, book.Bid, no105, "user3", 300)

	// Pre-existing positions, independent of the resting orders above.
	// user1's figures are pinned by the mint scenario in spec.md §8
	// scenario 3 (YES.qty_free 100 -> 110, NO.qty_free 50 -> 60 after
	// minting 10 at price 5); the seed carries no locked quantity on
	// these since spec.md §6.4 lists no locked inventory for them.
	ex.inv.CreditFreeQty("user1", seedSymbol, ledger.YES, 100)
	ex.inv.CreditFreeQty("user1", seedSymbol, ledger.NO, 50)

	ex.queue.Enqueue(events.New(events.DataReset, nil))
}
