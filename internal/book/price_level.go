package book

import "github.com/aaryan182/probo/internal/money"

// PriceLevel aggregates the resting quantity of every maker at one
// price on one side of one (symbol, outcome) book. A level is present
// in its owning bookSide iff Total > 0; Total always equals the sum
// of the per-maker quantities (spec.md invariant 4).
type PriceLevel struct {
	Price   money.Price
	Total   money.Quantity
	makers  *makerQueue
}

func newPriceLevel(price money.Price) *PriceLevel {
	return &PriceLevel{Price: price, makers: newMakerQueue()}
}

func (lvl *PriceLevel) add(user string, qty money.Quantity) {
	lvl.makers.add(user, qty)
	lvl.Total += qty
}

// reduce shrinks user's quantity at this level by qty. Caller must
// ensure qty does not exceed the user's resting quantity.
func (lvl *PriceLevel) reduce(user string, qty money.Quantity) {
	lvl.makers.reduce(user, qty)
	lvl.Total -= qty
}

// UserQty returns the maker's resting quantity at this level, or 0 if
// the maker has nothing resting here.
func (lvl *PriceLevel) UserQty(user string) money.Quantity {
	return lvl.makers.get(user)
}

// Maker is a (user, quantity) pair in FIFO order, used for read-only
// views of a level (see LevelView) and for maker iteration during
// matching.
type Maker struct {
	User string
	Qty  money.Quantity
}

// makersInOrder returns every maker at this level in FIFO insertion
// order.
func (lvl *PriceLevel) makersInOrder() []Maker {
	users := lvl.makers.users()
	out := make([]Maker, len(users))
	for i, u := range users {
		out[i] = Maker{User: u, Qty: lvl.makers.get(u)}
	}
	return out
}

// LevelView is an immutable snapshot of a PriceLevel for read APIs
// (view_book) — it never aliases the live makerQueue.
type LevelView struct {
	Price   money.Price
	Total   money.Quantity
	Makers  []Maker
}

func (lvl *PriceLevel) view() LevelView {
	return LevelView{Price: lvl.Price, Total: lvl.Total, Makers: lvl.makersInOrder()}
}
