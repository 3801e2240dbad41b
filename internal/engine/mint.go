package engine

import (
	"fmt"

	"github.com/aaryan182/probo/internal/events"
	"github.com/aaryan182/probo/internal/money"
	"github.com/aaryan182/probo/internal/xerrors"
)

// Mint synthesizes a matched YES/NO pair from cash (spec.md §4.4.5).
// Unlike a buy, the cash is spent straight out of free balance — there
// is no lock/unlock cycle, since minting never rests on the book.
func (ex *Exchange) Mint(u, symbol string, qty money.Quantity, p money.Price) (MintResult, error) {
	if u == "" {
		return MintResult{}, fmt.Errorf("%w: empty user id", xerrors.ErrInvalidInput)
	}

	ex.mu.Lock()
	defer ex.mu.Unlock()

	if err := ex.validateMintInput(qty, p); err != nil {
		return MintResult{}, err
	}

	cost := money.Mul(p, qty)
	if err := ex.cash.ConsumeFree(u, cost); err != nil {
		return MintResult{}, err
	}
	ex.inv.Mint(u, symbol, qty)

	ex.queue.Enqueue(events.New(events.TokensMinted, events.TokensMintedPayload{
		UserID:   u,
		Symbol:   symbol,
		Quantity: int64(qty),
		Price:    p.String(),
	}))

	return MintResult{Quantity: qty, Price: p, CashSpent: cost}, nil
}
