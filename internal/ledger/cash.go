// Package ledger holds the two leaf registers of the exchange: cash
// balances per user, and token inventory per (user, symbol, outcome).
// Both are pure data — no locking of their own. The engine's single
// mutex (internal/engine) is the sole synchronization point, per
// spec.md §5.
package ledger

import (
	"fmt"

	"github.com/aaryan182/probo/internal/money"
	"github.com/aaryan182/probo/internal/xerrors"
)

// CashBalance is a user's free and locked cash.
type CashBalance struct {
	Free   money.Money
	Locked money.Money
}

// CashLedger is the per-user free/locked cash register (spec.md §4.1).
type CashLedger struct {
	accounts map[string]*CashBalance
}

// NewCashLedger returns an empty ledger.
func NewCashLedger() *CashLedger {
	return &CashLedger{accounts: make(map[string]*CashBalance)}
}

// EnsureUser idempotently creates a zero-balance account for u.
func (l *CashLedger) EnsureUser(u string) *CashBalance {
	acc, ok := l.accounts[u]
	if !ok {
		acc = &CashBalance{Free: money.Zero, Locked: money.Zero}
		l.accounts[u] = acc
	}
	return acc
}

// Balances returns (free, locked) for u, or false if u has never been
// touched.
func (l *CashLedger) Balances(u string) (money.Money, money.Money, bool) {
	acc, ok := l.accounts[u]
	if !ok {
		return money.Zero, money.Zero, false
	}
	return acc.Free, acc.Locked, true
}

// Snapshot returns a copy of every known user's balance, keyed by
// user ID. Safe to range over after the caller's lock is released.
func (l *CashLedger) Snapshot() map[string]CashBalance {
	out := make(map[string]CashBalance, len(l.accounts))
	for u, acc := range l.accounts {
		out[u] = *acc
	}
	return out
}

// Deposit credits amount to u's free cash. amount must be positive.
func (l *CashLedger) Deposit(u string, amount money.Money) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: deposit amount must be positive", xerrors.ErrInvalidInput)
	}
	acc := l.EnsureUser(u)
	acc.Free = acc.Free.Add(amount)
	return nil
}

// Lock moves amount from free to locked. Fails ErrInsufficientCash if
// free < amount.
func (l *CashLedger) Lock(u string, amount money.Money) error {
	acc := l.EnsureUser(u)
	if acc.Free.LessThan(amount) {
		return xerrors.ErrInsufficientCash
	}
	acc.Free = acc.Free.Sub(amount)
	acc.Locked = acc.Locked.Add(amount)
	return nil
}

// Unlock moves amount from locked back to free. If locked < amount
// (should not occur if invariants hold), the locked balance is
// clamped at zero, the available amount is unlocked, and
// ErrLedgerInconsistency is returned so the caller can report the
// anomaly without losing the user's cash.
func (l *CashLedger) Unlock(u string, amount money.Money) error {
	acc := l.EnsureUser(u)
	if acc.Locked.LessThan(amount) {
		recovered := acc.Locked
		acc.Free = acc.Free.Add(recovered)
		acc.Locked = money.Zero
		return xerrors.ErrLedgerInconsistency
	}
	acc.Locked = acc.Locked.Sub(amount)
	acc.Free = acc.Free.Add(amount)
	return nil
}

// ConsumeLocked removes amount from u's locked cash entirely — the
// cash leaves u's balance sheet (it is credited to a counterparty via
// CreditFree, or destroyed on mint). Same precondition as Unlock.
func (l *CashLedger) ConsumeLocked(u string, amount money.Money) error {
	acc := l.EnsureUser(u)
	if acc.Locked.LessThan(amount) {
		acc.Locked = money.Zero
		return xerrors.ErrLedgerInconsistency
	}
	acc.Locked = acc.Locked.Sub(amount)
	return nil
}

// ConsumeFree removes amount from u's free cash entirely (used by
// mint, which spends straight from free, never through a lock).
func (l *CashLedger) ConsumeFree(u string, amount money.Money) error {
	acc := l.EnsureUser(u)
	if acc.Free.LessThan(amount) {
		return xerrors.ErrInsufficientCash
	}
	acc.Free = acc.Free.Sub(amount)
	return nil
}

// CreditFree adds amount to u's free cash (a seller receiving trade
// proceeds).
func (l *CashLedger) CreditFree(u string, amount money.Money) {
	acc := l.EnsureUser(u)
	acc.Free = acc.Free.Add(amount)
}
