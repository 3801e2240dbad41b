package engine

import (
	"fmt"

	"github.com/aaryan182/probo/internal/money"
	"github.com/aaryan182/probo/internal/xerrors"
)

// validateOrderInput checks the shared precondition of buy, sell, and
// cancel (spec.md §6.2): qty a positive integer, price in
// [priceMin, priceMax], symbol already created. Outcome is parsed by
// the caller (ledger.ParseOutcome already rejects anything but
// yes/no), so it is not re-checked here.
func (ex *Exchange) validateOrderInput(symbol string, qty money.Quantity, p money.Price) error {
	if !money.ValidQuantity(qty) {
		return fmt.Errorf("%w: quantity must be a positive integer", xerrors.ErrInvalidInput)
	}
	if !ex.priceInRange(p) {
		return fmt.Errorf("%w: price %s out of range [%s, %s]", xerrors.ErrInvalidInput, p, ex.priceMin, ex.priceMax)
	}
	if !ex.book.Exists(symbol) {
		return xerrors.ErrSymbolNotFound
	}
	return nil
}

// validateMintInput checks mint's precondition: qty positive, price in
// range and no higher than the face value (a mint above face value
// would let a user pay more than the pair can ever be worth), symbol
// need not exist (mint is symbol-scoped inventory only, spec.md
// §4.4.5 never calls book.Exists).
func (ex *Exchange) validateMintInput(qty money.Quantity, p money.Price) error {
	if !money.ValidQuantity(qty) {
		return fmt.Errorf("%w: quantity must be a positive integer", xerrors.ErrInvalidInput)
	}
	if !ex.priceInRange(p) {
		return fmt.Errorf("%w: price %s out of range [%s, %s]", xerrors.ErrInvalidInput, p, ex.priceMin, ex.priceMax)
	}
	if p.GreaterThan(ex.faceValue) {
		return fmt.Errorf("%w: mint price %s exceeds face value %s", xerrors.ErrInvalidInput, p, ex.faceValue)
	}
	return nil
}
