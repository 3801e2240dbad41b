package book

import (
	"github.com/aaryan182/probo/internal/money"
	"github.com/tidwall/btree"
)

// Side distinguishes resting buy orders from resting sell (ask)
// orders on one (symbol, outcome) book. See DESIGN.md for why this
// split exists even though spec.md §4.3 describes the book as a bare
// Outcome -> Price -> PriceLevel map: sells never taker-match in this
// spec, so a symbol can transiently hold non-crossing resting buys
// and asks at the same time, and the two must not be aggregated
// together.
type Side int

const (
	Bid Side = iota
	Ask
)

// bookSide is one ordered price index (spec.md §4.3: "a strong
// implementation uses ... an ordered price index"). It always keeps
// levels sorted ascending by price internally; descending views are
// produced at read time by reversing, per spec.md's "iteration order
// is defined by explicit sorts at read time."
type bookSide struct {
	levels *btree.BTreeG[*PriceLevel]
}

func newBookSide() *bookSide {
	return &bookSide{
		levels: btree.NewBTreeG(func(a, b *PriceLevel) bool {
			return a.Price.LessThan(b.Price)
		}),
	}
}

// addMaker grows the level at price by qty for user, creating the
// level if it did not already exist.
func (s *bookSide) addMaker(price money.Price, user string, qty money.Quantity) {
	probe := &PriceLevel{Price: price}
	lvl, ok := s.levels.GetMut(probe)
	if !ok {
		lvl = newPriceLevel(price)
		s.levels.Set(lvl)
	}
	lvl.add(user, qty)
}

// reduceMaker shrinks user's quantity at price by up to qty, removing
// the user when it reaches zero and the level when its total reaches
// zero. Returns the quantity actually removed and whether user had
// anything resting at price at all.
func (s *bookSide) reduceMaker(price money.Price, user string, qty money.Quantity) (removed money.Quantity, found bool) {
	probe := &PriceLevel{Price: price}
	lvl, ok := s.levels.GetMut(probe)
	if !ok {
		return 0, false
	}
	owned := lvl.UserQty(user)
	if owned == 0 {
		return 0, false
	}
	actual := qty
	if actual > owned {
		actual = owned
	}
	lvl.reduce(user, actual)
	if lvl.Total == 0 {
		s.levels.Delete(probe)
	}
	return actual, true
}

// level returns the live level at price, if any. Used by
// Book.UserQtyAt; callers must not mutate the returned pointer's
// fields directly, only through addMaker/reduceMaker.
func (s *bookSide) level(price money.Price) (*PriceLevel, bool) {
	return s.levels.GetMut(&PriceLevel{Price: price})
}

// best returns the lowest-priced live level (Min is ascending
// regardless of what the caller ultimately wants — callers needing
// the highest price read levelsOrdered(false)[0] instead).
func (s *bookSide) best() (*PriceLevel, bool) {
	return s.levels.Min()
}

// levelsOrdered returns every live level, ascending or descending by price.
func (s *bookSide) levelsOrdered(ascending bool) []*PriceLevel {
	items := s.levels.Items()
	if ascending {
		return items
	}
	reversed := make([]*PriceLevel, len(items))
	for i, v := range items {
		reversed[len(items)-1-i] = v
	}
	return reversed
}

// views returns a read-only snapshot of every live level, ascending
// or descending by price.
func (s *bookSide) views(ascending bool) []LevelView {
	lvls := s.levelsOrdered(ascending)
	out := make([]LevelView, len(lvls))
	for i, lvl := range lvls {
		out[i] = lvl.view()
	}
	return out
}

func (s *bookSide) empty() bool {
	return s.levels.Len() == 0
}
