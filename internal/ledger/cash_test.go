package ledger

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aaryan182/probo/internal/xerrors"
)

func d(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCashLedger_DepositLockUnlock(t *testing.T) {
	l := NewCashLedger()

	require.NoError(t, l.Deposit("alice", d("100")))
	free, locked, ok := l.Balances("alice")
	require.True(t, ok)
	assert.True(t, free.Equal(d("100")))
	assert.True(t, locked.Equal(d("0")))

	require.NoError(t, l.Lock("alice", d("40")))
	free, locked, _ = l.Balances("alice")
	assert.True(t, free.Equal(d("60")))
	assert.True(t, locked.Equal(d("40")))

	require.NoError(t, l.Unlock("alice", d("15")))
	free, locked, _ = l.Balances("alice")
	assert.True(t, free.Equal(d("75")))
	assert.True(t, locked.Equal(d("25")))
}

func TestCashLedger_LockInsufficientFunds(t *testing.T) {
	l := NewCashLedger()
	require.NoError(t, l.Deposit("bob", d("10")))

	err := l.Lock("bob", d("11"))
	assert.ErrorIs(t, err, xerrors.ErrInsufficientCash)

	free, locked, _ := l.Balances("bob")
	assert.True(t, free.Equal(d("10")), "failed lock must not mutate balances")
	assert.True(t, locked.Equal(d("0")))
}

func TestCashLedger_UnlockUnderLockedClampsAndReports(t *testing.T) {
	l := NewCashLedger()
	require.NoError(t, l.Deposit("carol", d("100")))
	require.NoError(t, l.Lock("carol", d("10")))

	err := l.Unlock("carol", d("50"))
	assert.True(t, errors.Is(err, xerrors.ErrLedgerInconsistency))

	free, locked, _ := l.Balances("carol")
	assert.True(t, free.Equal(d("100")), "all available locked cash must still be recovered")
	assert.True(t, locked.Equal(d("0")))
}

func TestCashLedger_ConsumeLockedAndCreditFree(t *testing.T) {
	l := NewCashLedger()
	require.NoError(t, l.Deposit("dave", d("100")))
	require.NoError(t, l.Lock("dave", d("40")))

	require.NoError(t, l.ConsumeLocked("dave", d("40")))
	free, locked, _ := l.Balances("dave")
	assert.True(t, free.Equal(d("60")))
	assert.True(t, locked.Equal(d("0")))

	l.CreditFree("eve", d("5"))
	free, _, _ = l.Balances("eve")
	assert.True(t, free.Equal(d("5")))
}

func TestCashLedger_DepositRequiresPositiveAmount(t *testing.T) {
	l := NewCashLedger()
	err := l.Deposit("frank", d("0"))
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}
