package ledger

import (
	"fmt"

	"github.com/aaryan182/probo/internal/money"
	"github.com/aaryan182/probo/internal/xerrors"
)

// Outcome is the enumeration of complementary outcome tokens.
type Outcome int

const (
	YES Outcome = iota
	NO
)

// Complement returns the other outcome of the pair.
func (o Outcome) Complement() Outcome {
	if o == YES {
		return NO
	}
	return YES
}

func (o Outcome) String() string {
	if o == YES {
		return "yes"
	}
	return "no"
}

// ParseOutcome parses the "yes"/"no" wire representation.
func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "yes":
		return YES, nil
	case "no":
		return NO, nil
	default:
		return 0, fmt.Errorf("%w: unknown outcome %q", xerrors.ErrInvalidInput, s)
	}
}

// OutcomeBalance is a user's free and locked token quantity for one
// outcome of one symbol.
type OutcomeBalance struct {
	Free   money.Quantity
	Locked money.Quantity
}

// Position is a user's holdings in a single symbol, one balance per
// outcome.
type Position struct {
	Yes OutcomeBalance
	No  OutcomeBalance
}

func (p *Position) balance(o Outcome) *OutcomeBalance {
	if o == YES {
		return &p.Yes
	}
	return &p.No
}

// InventoryLedger is the per-(user, symbol) token register (spec.md
// §4.2), symmetric to CashLedger.
type InventoryLedger struct {
	positions map[string]map[string]*Position // user -> symbol -> position
}

// NewInventoryLedger returns an empty ledger.
func NewInventoryLedger() *InventoryLedger {
	return &InventoryLedger{positions: make(map[string]map[string]*Position)}
}

// EnsurePosition idempotently creates a zero position for (u, symbol).
func (l *InventoryLedger) EnsurePosition(u, symbol string) *Position {
	bySymbol, ok := l.positions[u]
	if !ok {
		bySymbol = make(map[string]*Position)
		l.positions[u] = bySymbol
	}
	pos, ok := bySymbol[symbol]
	if !ok {
		pos = &Position{}
		bySymbol[symbol] = pos
	}
	return pos
}

// Position returns the position for (u, symbol), or false if never
// touched.
func (l *InventoryLedger) Position(u, symbol string) (Position, bool) {
	bySymbol, ok := l.positions[u]
	if !ok {
		return Position{}, false
	}
	pos, ok := bySymbol[symbol]
	if !ok {
		return Position{}, false
	}
	return *pos, true
}

// Snapshot returns a copy of every known position, keyed by user then
// symbol.
func (l *InventoryLedger) Snapshot() map[string]map[string]Position {
	out := make(map[string]map[string]Position, len(l.positions))
	for u, bySymbol := range l.positions {
		inner := make(map[string]Position, len(bySymbol))
		for sym, pos := range bySymbol {
			inner[sym] = *pos
		}
		out[u] = inner
	}
	return out
}

// LockQty moves qty from free to locked for (u, symbol, outcome).
// Fails ErrInsufficientInventory if free < qty.
func (l *InventoryLedger) LockQty(u, symbol string, o Outcome, qty money.Quantity) error {
	pos := l.EnsurePosition(u, symbol)
	bal := pos.balance(o)
	if bal.Free < qty {
		return xerrors.ErrInsufficientInventory
	}
	bal.Free -= qty
	bal.Locked += qty
	return nil
}

// UnlockQty moves qty from locked back to free. Mirrors CashLedger's
// clamp-and-report policy on an under-locked position.
func (l *InventoryLedger) UnlockQty(u, symbol string, o Outcome, qty money.Quantity) error {
	pos := l.EnsurePosition(u, symbol)
	bal := pos.balance(o)
	if bal.Locked < qty {
		recovered := bal.Locked
		bal.Free += recovered
		bal.Locked = 0
		return xerrors.ErrLedgerInconsistency
	}
	bal.Locked -= qty
	bal.Free += qty
	return nil
}

// ConsumeLockedQty removes qty from locked inventory entirely — the
// tokens leave u's position (delivered to the trade counterparty, or
// the taker, via CreditFreeQty).
func (l *InventoryLedger) ConsumeLockedQty(u, symbol string, o Outcome, qty money.Quantity) error {
	pos := l.EnsurePosition(u, symbol)
	bal := pos.balance(o)
	if bal.Locked < qty {
		bal.Locked = 0
		return xerrors.ErrLedgerInconsistency
	}
	bal.Locked -= qty
	return nil
}

// CreditFreeQty adds qty to u's free balance for (symbol, outcome).
func (l *InventoryLedger) CreditFreeQty(u, symbol string, o Outcome, qty money.Quantity) {
	pos := l.EnsurePosition(u, symbol)
	bal := pos.balance(o)
	bal.Free += qty
}

// Mint credits qty to both outcomes' free balance for (u, symbol) in
// one call, guaranteeing outcome symmetry (spec.md invariant 6).
func (l *InventoryLedger) Mint(u, symbol string, qty money.Quantity) {
	pos := l.EnsurePosition(u, symbol)
	pos.Yes.Free += qty
	pos.No.Free += qty
}
