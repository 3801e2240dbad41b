package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaryan182/probo/internal/config"
	"github.com/aaryan182/probo/internal/ledger"
	"github.com/aaryan182/probo/internal/money"
	"github.com/aaryan182/probo/internal/xerrors"
)

const seedSym = "BTC_USDT_10_Oct_2024_9_30"

func newSeededExchange(t *testing.T) *Exchange {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	ex, err := New(cfg)
	require.NoError(t, err)
	ex.ResetData()
	return ex
}

func p(s string) money.Price {
	v, err := money.ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Scenario 1: simple crossing buy against an empty opposite ask book
// rests in full.
func TestScenario1_SimpleCrossingBuyRests(t *testing.T) {
	ex := newSeededExchange(t)

	res, err := ex.Buy("user3", seedSym, ledger.YES, p("9.5"), 100)
	require.NoError(t, err)
	assert.Equal(t, Pending, res.Status)
	assert.Equal(t, money.Quantity(0), res.Filled)
	assert.Equal(t, money.Quantity(100), res.Resting)

	free, locked, err := ex.GetCash("user3")
	require.NoError(t, err)
	assert.True(t, free.Equal(p("14050")))
	assert.True(t, locked.Equal(p("2950")))

	snap, err := ex.ViewBook(seedSym)
	require.NoError(t, err)
	require.NotEmpty(t, snap.YesBids)
	assert.Equal(t, p("9.5"), snap.YesBids[0].Price)
	assert.Equal(t, money.Quantity(1300), snap.YesBids[0].Total)
}

// Scenario 2: the seed's max YES bid (9.5) stays below its min NO bid
// (10.5), so no book-sweep fires.
func TestScenario2_NoBookSweepOnSeed(t *testing.T) {
	ex := newSeededExchange(t)

	snap, err := ex.ViewBook(seedSym)
	require.NoError(t, err)
	require.NotEmpty(t, snap.YesBids)
	require.NotEmpty(t, snap.NoBids)
	assert.True(t, snap.YesBids[0].Price.LessThan(snap.NoBids[0].Price))
}

// Scenario 3: mint debits free cash and credits both outcomes equally.
func TestScenario3_Mint(t *testing.T) {
	ex := newSeededExchange(t)

	res, err := ex.Mint("user1", seedSym, 10, p("5"))
	require.NoError(t, err)
	assert.Equal(t, money.Quantity(10), res.Quantity)
	assert.True(t, res.CashSpent.Equal(p("50")))

	free, _, err := ex.GetCash("user1")
	require.NoError(t, err)
	assert.True(t, free.Equal(p("9950")))

	pos, ok := ex.GetInventory("user1", seedSym)
	require.True(t, ok)
	assert.Equal(t, money.Quantity(110), pos.Yes.Free)
	assert.Equal(t, money.Quantity(60), pos.No.Free)
}

// Scenario 4: canceling against the seed's intentionally under-locked
// book reports ErrLedgerInconsistency but still commits the cancel.
func TestScenario4_CancelAgainstUnderLockedSeed(t *testing.T) {
	ex := newSeededExchange(t)

	res, err := ex.Cancel("user1", seedSym, ledger.YES, p("9.5"), 200)
	assert.ErrorIs(t, err, xerrors.ErrLedgerInconsistency)
	assert.Equal(t, money.Quantity(200), res.Canceled)

	snap, err := ex.ViewBook(seedSym)
	require.NoError(t, err)
	require.NotEmpty(t, snap.YesBids)
	assert.Equal(t, p("9.5"), snap.YesBids[0].Price)
	assert.Equal(t, money.Quantity(1000), snap.YesBids[0].Total)
}

// Scenario 5: an order that cannot lock its full notional fails
// ErrInsufficientCash and leaves state untouched.
func TestScenario5_InsufficientCash(t *testing.T) {
	ex := newSeededExchange(t)

	freeBefore, lockedBefore, _ := ex.GetCash("user1")

	_, err := ex.Buy("user1", seedSym, ledger.YES, p("10"), 100000)
	assert.ErrorIs(t, err, xerrors.ErrInsufficientCash)

	freeAfter, lockedAfter, _ := ex.GetCash("user1")
	assert.True(t, freeBefore.Equal(freeAfter))
	assert.True(t, lockedBefore.Equal(lockedAfter))
}

// Scenario 6: two resting buys on complementary outcomes cross via the
// book-sweep pass at their midpoint price.
func TestScenario6_CrossingByBookSweep(t *testing.T) {
	ex := newSeededExchange(t)

	require.NoError(t, ex.CreateSymbol("X"))
	require.NoError(t, ex.Onramp("user1", p("100000")))
	require.NoError(t, ex.Onramp("user2", p("100000")))

	_, err := ex.Buy("user1", "X", ledger.YES, p("6"), 50)
	require.NoError(t, err)
	res, err := ex.Buy("user2", "X", ledger.NO, p("5"), 50)
	require.NoError(t, err)

	// The outcome summary reflects the taker-match pass only (spec.md
	// §4.4.1 step 4 vs step 7): nothing was resting on the opposite ask
	// book to cross against directly, so this order itself "rests" —
	// even though the book-sweep pass that follows immediately consumes
	// both resting orders in full.
	assert.Equal(t, Pending, res.Status)
	assert.Equal(t, money.Quantity(50), res.Resting)

	pos1, ok := ex.GetInventory("user1", "X")
	require.True(t, ok)
	assert.Equal(t, money.Quantity(50), pos1.Yes.Free)

	pos2, ok := ex.GetInventory("user2", "X")
	require.True(t, ok)
	assert.Equal(t, money.Quantity(50), pos2.No.Free)

	snap, err := ex.ViewBook("X")
	require.NoError(t, err)
	assert.Empty(t, snap.YesBids)
	assert.Empty(t, snap.NoBids)
}

// Property 6 (idempotent cancel): canceling an already-fully-canceled
// key reports ErrOrderNotFound on the second call.
func TestProperty_IdempotentCancel(t *testing.T) {
	ex := newSeededExchange(t)
	require.NoError(t, ex.CreateSymbol("X"))
	require.NoError(t, ex.Onramp("user1", p("1000")))

	_, err := ex.Buy("user1", "X", ledger.YES, p("5"), 10)
	require.NoError(t, err)

	_, err = ex.Cancel("user1", "X", ledger.YES, p("5"), 10)
	require.NoError(t, err)

	_, err = ex.Cancel("user1", "X", ledger.YES, p("5"), 10)
	assert.True(t, errors.Is(err, xerrors.ErrOrderNotFound))
}

// Property 7 (no crossing left on the book): after a buy or sell
// returns, the YES and NO buy-side heads never still cross.
func TestProperty_NoCrossingLeftAfterPlace(t *testing.T) {
	ex := newSeededExchange(t)
	require.NoError(t, ex.CreateSymbol("X"))
	require.NoError(t, ex.Onramp("user1", p("1000")))
	require.NoError(t, ex.Onramp("user2", p("1000")))

	_, err := ex.Buy("user1", "X", ledger.YES, p("6"), 30)
	require.NoError(t, err)
	_, err = ex.Buy("user2", "X", ledger.NO, p("5"), 50)
	require.NoError(t, err)

	snap, err := ex.ViewBook("X")
	require.NoError(t, err)
	if len(snap.YesBids) > 0 && len(snap.NoBids) > 0 {
		assert.True(t, snap.YesBids[0].Price.LessThan(snap.NoBids[0].Price))
	}
}

// Cash conservation across a taker match: the sum of free+locked cash
// across both parties is unchanged by a trade, only redistributed.
func TestProperty_CashConservationAcrossTakerMatch(t *testing.T) {
	ex := newSeededExchange(t)
	require.NoError(t, ex.CreateSymbol("X"))
	require.NoError(t, ex.Onramp("seller", p("1000")))
	require.NoError(t, ex.Onramp("buyer", p("1000")))

	// The seller needs NO tokens to offer before it can rest a sell.
	_, err := ex.Mint("seller", "X", 20, p("5"))
	require.NoError(t, err)

	_, err = ex.Sell("seller", "X", ledger.NO, p("4"), 20)
	require.NoError(t, err)

	total := func() money.Money {
		sf, sl, _ := ex.GetCash("seller")
		bf, bl, _ := ex.GetCash("buyer")
		return sf.Add(sl).Add(bf).Add(bl)
	}
	before := total()

	_, err = ex.Buy("buyer", "X", ledger.YES, p("4"), 20)
	require.NoError(t, err)

	after := total()
	assert.True(t, before.Equal(after), "total cash must be conserved across a taker match")
}
