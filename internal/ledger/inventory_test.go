package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaryan182/probo/internal/money"
	"github.com/aaryan182/probo/internal/xerrors"
)

func TestParseOutcome(t *testing.T) {
	yes, err := ParseOutcome("yes")
	require.NoError(t, err)
	assert.Equal(t, YES, yes)
	assert.Equal(t, NO, yes.Complement())

	no, err := ParseOutcome("no")
	require.NoError(t, err)
	assert.Equal(t, NO, no)
	assert.Equal(t, YES, no.Complement())

	_, err = ParseOutcome("maybe")
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestInventoryLedger_LockUnlockQty(t *testing.T) {
	l := NewInventoryLedger()
	l.CreditFreeQty("alice", "SYM", YES, 100)

	require.NoError(t, l.LockQty("alice", "SYM", YES, 40))
	pos, ok := l.Position("alice", "SYM")
	require.True(t, ok)
	assert.Equal(t, OutcomeBalance{Free: 60, Locked: 40}, pos.Yes)

	require.NoError(t, l.UnlockQty("alice", "SYM", YES, 10))
	pos, _ = l.Position("alice", "SYM")
	assert.Equal(t, OutcomeBalance{Free: 70, Locked: 30}, pos.Yes)
}

func TestInventoryLedger_LockInsufficientInventory(t *testing.T) {
	l := NewInventoryLedger()
	l.CreditFreeQty("bob", "SYM", NO, 5)

	err := l.LockQty("bob", "SYM", NO, 6)
	assert.ErrorIs(t, err, xerrors.ErrInsufficientInventory)
}

func TestInventoryLedger_MintCreditsBothOutcomesEqually(t *testing.T) {
	l := NewInventoryLedger()
	l.Mint("carol", "SYM", 25)

	pos, ok := l.Position("carol", "SYM")
	require.True(t, ok)
	assert.Equal(t, money.Quantity(25), pos.Yes.Free)
	assert.Equal(t, money.Quantity(25), pos.No.Free)
}
