package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaryan182/probo/internal/ledger"
	"github.com/aaryan182/probo/internal/money"
	"github.com/aaryan182/probo/internal/xerrors"
)

func price(s string) money.Price {
	p, err := money.ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return p
}

func TestBook_AddMakerAggregatesByUserAndLevel(t *testing.T) {
	b := New()
	require.NoError(t, b.CreateSymbol("SYM"))

	require.NoError(t, b.AddMaker("SYM", ledger.YES, Bid, price("9.5"), "user1", 200))
	require.NoError(t, b.AddMaker("SYM", ledger.YES, Bid, price("9.5"), "user2", 1000))

	levels, err := b.Levels("SYM", ledger.YES, Bid, true)
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, money.Quantity(1200), levels[0].Total)
	assert.Equal(t, []Maker{{User: "user1", Qty: 200}, {User: "user2", Qty: 1000}}, levels[0].Makers)
}

func TestBook_LevelsSortAscendingAndDescending(t *testing.T) {
	b := New()
	require.NoError(t, b.CreateSymbol("SYM"))

	require.NoError(t, b.AddMaker("SYM", ledger.YES, Bid, price("8.5"), "u1", 10))
	require.NoError(t, b.AddMaker("SYM", ledger.YES, Bid, price("9.5"), "u2", 10))

	asc, err := b.Levels("SYM", ledger.YES, Bid, true)
	require.NoError(t, err)
	assert.Equal(t, []money.Price{price("8.5"), price("9.5")}, []money.Price{asc[0].Price, asc[1].Price})

	desc, err := b.Levels("SYM", ledger.YES, Bid, false)
	require.NoError(t, err)
	assert.Equal(t, []money.Price{price("9.5"), price("8.5")}, []money.Price{desc[0].Price, desc[1].Price})
}

func TestBook_ReduceMakerRemovesEmptyLevel(t *testing.T) {
	b := New()
	require.NoError(t, b.CreateSymbol("SYM"))
	require.NoError(t, b.AddMaker("SYM", ledger.NO, Ask, price("5"), "u1", 10))

	removed, err := b.ReduceMaker("SYM", ledger.NO, Ask, price("5"), "u1", 10)
	require.NoError(t, err)
	assert.Equal(t, money.Quantity(10), removed)

	levels, err := b.Levels("SYM", ledger.NO, Ask, true)
	require.NoError(t, err)
	assert.Empty(t, levels)
}

func TestBook_ReduceMakerClampsToOwnedQuantity(t *testing.T) {
	b := New()
	require.NoError(t, b.CreateSymbol("SYM"))
	require.NoError(t, b.AddMaker("SYM", ledger.YES, Bid, price("9.5"), "u1", 200))
	require.NoError(t, b.AddMaker("SYM", ledger.YES, Bid, price("9.5"), "u2", 1000))

	removed, err := b.ReduceMaker("SYM", ledger.YES, Bid, price("9.5"), "u1", 999999)
	require.NoError(t, err)
	assert.Equal(t, money.Quantity(200), removed)

	levels, _ := b.Levels("SYM", ledger.YES, Bid, true)
	require.Len(t, levels, 1)
	assert.Equal(t, money.Quantity(1000), levels[0].Total)
	assert.Equal(t, []Maker{{User: "u2", Qty: 1000}}, levels[0].Makers)
}

func TestBook_ReduceMakerNotFound(t *testing.T) {
	b := New()
	require.NoError(t, b.CreateSymbol("SYM"))

	_, err := b.ReduceMaker("SYM", ledger.YES, Bid, price("9.5"), "ghost", 1)
	assert.ErrorIs(t, err, xerrors.ErrOrderNotFound)
}

func TestBook_CreateSymbolRejectsDuplicate(t *testing.T) {
	b := New()
	require.NoError(t, b.CreateSymbol("SYM"))
	err := b.CreateSymbol("SYM")
	assert.ErrorIs(t, err, xerrors.ErrSymbolExists)
}

func TestBook_BidAndAskSidesAreIndependent(t *testing.T) {
	// A non-crossing resting buy and a resting ask on the same outcome
	// can coexist; sells never taker-match in this spec, so this is a
	// normal transient state, not a bug (see DESIGN.md).
	b := New()
	require.NoError(t, b.CreateSymbol("SYM"))
	require.NoError(t, b.AddMaker("SYM", ledger.YES, Bid, price("6"), "buyer", 10))
	require.NoError(t, b.AddMaker("SYM", ledger.YES, Ask, price("7"), "seller", 10))

	bids, _ := b.Levels("SYM", ledger.YES, Bid, true)
	asks, _ := b.Levels("SYM", ledger.YES, Ask, true)
	require.Len(t, bids, 1)
	require.Len(t, asks, 1)
	assert.Equal(t, price("6"), bids[0].Price)
	assert.Equal(t, price("7"), asks[0].Price)
}
