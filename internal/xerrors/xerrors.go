// Package xerrors declares the sentinel error taxonomy shared by the
// ledgers, the book, and the engine. Errors are compared with
// errors.Is, never type-switched — the same discipline fenrir uses
// for ErrNotEnoughLiquidity and ErrClientDoesNotExist.
package xerrors

import "errors"

var (
	// ErrInvalidInput covers a missing field, a non-integer quantity,
	// qty <= 0, a price outside [1, 10], or an unknown outcome.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUserNotFound is surfaced only on an explicit cash lookup for
	// a user that has never been touched; write paths auto-create.
	ErrUserNotFound = errors.New("user not found")

	// ErrSymbolNotFound means a trade or cancel targeted a symbol with
	// no book entry.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrSymbolExists means create_symbol targeted an existing symbol.
	ErrSymbolExists = errors.New("symbol already exists")

	// ErrInsufficientCash means a buy or mint could not lock the
	// required notional.
	ErrInsufficientCash = errors.New("insufficient cash")

	// ErrInsufficientInventory means a sell could not lock the
	// requested quantity.
	ErrInsufficientInventory = errors.New("insufficient inventory")

	// ErrOrderNotFound means a cancel targeted a (symbol, outcome,
	// price, user) key with no resting quantity.
	ErrOrderNotFound = errors.New("order not found")

	// ErrLedgerInconsistency means an internal invariant was about to
	// be violated (e.g. an unlock larger than what is locked). It
	// should never surface; when it does, the operation that
	// triggered it is reported but the mutation that was already
	// applied is not retroactively undone by the ledger itself — see
	// DESIGN.md's note on the seeded-cancel scenario.
	ErrLedgerInconsistency = errors.New("ledger inconsistency")
)
