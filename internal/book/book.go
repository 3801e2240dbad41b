// Package book implements the per-symbol, per-outcome order book
// (spec.md §4.3): an ordered price index per resting side, with
// insertion-ordered per-maker quantities at each price level.
package book

import (
	"github.com/aaryan182/probo/internal/ledger"
	"github.com/aaryan182/probo/internal/money"
	"github.com/aaryan182/probo/internal/xerrors"
)

// outcomeBook is one outcome's resting buy side and resting ask side.
type outcomeBook struct {
	Bids *bookSide
	Asks *bookSide
}

func newOutcomeBook() *outcomeBook {
	return &outcomeBook{Bids: newBookSide(), Asks: newBookSide()}
}

// SymbolBook is a symbol's full book: one outcomeBook per outcome.
type SymbolBook struct {
	Yes *outcomeBook
	No  *outcomeBook
}

func newSymbolBook() *SymbolBook {
	return &SymbolBook{Yes: newOutcomeBook(), No: newOutcomeBook()}
}

func (sb *SymbolBook) outcome(o ledger.Outcome) *outcomeBook {
	if o == ledger.YES {
		return sb.Yes
	}
	return sb.No
}

// Book is the exchange-wide collection of per-symbol books. A symbol
// exists iff it has an entry here (possibly empty on every side).
type Book struct {
	symbols map[string]*SymbolBook
}

// New returns an empty Book.
func New() *Book {
	return &Book{symbols: make(map[string]*SymbolBook)}
}

// CreateSymbol creates an empty book for symbol. Fails
// ErrSymbolExists if the symbol already has a book.
func (b *Book) CreateSymbol(symbol string) error {
	if _, ok := b.symbols[symbol]; ok {
		return xerrors.ErrSymbolExists
	}
	b.symbols[symbol] = newSymbolBook()
	return nil
}

// Exists reports whether symbol has a book entry.
func (b *Book) Exists(symbol string) bool {
	_, ok := b.symbols[symbol]
	return ok
}

// Symbols returns every known symbol ID, in no particular order.
func (b *Book) Symbols() []string {
	out := make([]string, 0, len(b.symbols))
	for s := range b.symbols {
		out = append(out, s)
	}
	return out
}

// Reset discards every symbol's book.
func (b *Book) Reset() {
	b.symbols = make(map[string]*SymbolBook)
}

func (b *Book) side(symbol string, o ledger.Outcome, side Side) (*bookSide, bool) {
	sb, ok := b.symbols[symbol]
	if !ok {
		return nil, false
	}
	ob := sb.outcome(o)
	if side == Bid {
		return ob.Bids, true
	}
	return ob.Asks, true
}

// AddMaker registers a resting order (spec.md §4.3 add_maker).
func (b *Book) AddMaker(symbol string, o ledger.Outcome, side Side, price money.Price, user string, qty money.Quantity) error {
	s, ok := b.side(symbol, o, side)
	if !ok {
		return xerrors.ErrSymbolNotFound
	}
	s.addMaker(price, user, qty)
	return nil
}

// ReduceMaker shrinks a resting order by up to qty (spec.md §4.3
// reduce_maker). Returns the quantity actually removed.
func (b *Book) ReduceMaker(symbol string, o ledger.Outcome, side Side, price money.Price, user string, qty money.Quantity) (money.Quantity, error) {
	s, ok := b.side(symbol, o, side)
	if !ok {
		return 0, xerrors.ErrSymbolNotFound
	}
	removed, found := s.reduceMaker(price, user, qty)
	if !found {
		return 0, xerrors.ErrOrderNotFound
	}
	return removed, nil
}

// UserQtyAt returns how much of (symbol, outcome, side) user has
// resting at price.
func (b *Book) UserQtyAt(symbol string, o ledger.Outcome, side Side, price money.Price, user string) money.Quantity {
	s, ok := b.side(symbol, o, side)
	if !ok {
		return 0
	}
	lvl, ok := s.level(price)
	if !ok {
		return 0
	}
	return lvl.UserQty(user)
}

// Levels returns a read-only, ascending- or descending-sorted
// snapshot of every live level on one side of one outcome's book.
func (b *Book) Levels(symbol string, o ledger.Outcome, side Side, ascending bool) ([]LevelView, error) {
	s, ok := b.side(symbol, o, side)
	if !ok {
		return nil, xerrors.ErrSymbolNotFound
	}
	return s.views(ascending), nil
}
