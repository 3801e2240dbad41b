// Package engine implements the matching engine and its coupled
// ledger (spec.md §4.4): the taker match pass, the book-sweep pass,
// cancellation, and minting, all driving the cash ledger, the
// inventory ledger, and the order book atomically under one lock.
//
// Grounded on fenrir's internal/engine/engine.go (a single Engine
// owning every book, matched by one entry point per operation) and
// its internal/net/server.go locking style (a coarse mutex guarding
// shared maps), generalized to the two-ledger, two-outcome, two-pass
// matching rules this spec adds.
package engine

import (
	"fmt"
	"sync"

	"github.com/aaryan182/probo/internal/book"
	"github.com/aaryan182/probo/internal/config"
	"github.com/aaryan182/probo/internal/events"
	"github.com/aaryan182/probo/internal/ledger"
	"github.com/aaryan182/probo/internal/money"
	"github.com/aaryan182/probo/internal/xerrors"
)

// Exchange is the single in-memory register set described by spec.md
// §2: the cash ledger, the inventory ledger, the order book, and the
// outbound event queue, all guarded by one exclusive lock. There is
// no suspension point inside the critical section (spec.md §5):
// every write path takes the lock, mutates synchronously, enqueues
// its event, and returns.
type Exchange struct {
	mu sync.RWMutex

	cash  *ledger.CashLedger
	inv   *ledger.InventoryLedger
	book  *book.Book
	queue *events.Queue

	faceValue money.Money
	priceMin  money.Price
	priceMax  money.Price
}

// New constructs an empty Exchange from cfg. Callers that want the
// asynchronous fan-out worker running should call
// Exchange.Events().Run(ctx, sink) themselves — the engine never
// starts goroutines on its own, so tests can drive it synchronously.
func New(cfg config.Config) (*Exchange, error) {
	faceValue, err := money.ParseDecimal(cfg.FaceValue)
	if err != nil {
		return nil, fmt.Errorf("invalid face_value: %w", err)
	}
	priceMin, err := money.ParseDecimal(cfg.PriceMin)
	if err != nil {
		return nil, fmt.Errorf("invalid price_min: %w", err)
	}
	priceMax, err := money.ParseDecimal(cfg.PriceMax)
	if err != nil {
		return nil, fmt.Errorf("invalid price_max: %w", err)
	}
	if priceMin.GreaterThan(priceMax) {
		return nil, fmt.Errorf("%w: price_min > price_max", xerrors.ErrInvalidInput)
	}

	return &Exchange{
		cash:      ledger.NewCashLedger(),
		inv:       ledger.NewInventoryLedger(),
		book:      book.New(),
		queue:     events.NewQueue(cfg.EventQueueCapacity),
		faceValue: faceValue,
		priceMin:  priceMin,
		priceMax:  priceMax,
	}, nil
}

// Events returns the outbound event queue, for wiring a Sink.
func (ex *Exchange) Events() *events.Queue {
	return ex.queue
}

func (ex *Exchange) priceInRange(p money.Price) bool {
	return !p.LessThan(ex.priceMin) && !p.GreaterThan(ex.priceMax)
}

// PriceBounds returns the configured [min, max] price range, for
// callers (the CLI, tests) that need to parse a raw price string with
// money.ParsePrice ahead of a call into the engine.
func (ex *Exchange) PriceBounds() (min, max money.Price) {
	return ex.priceMin, ex.priceMax
}

// EnsureUser idempotently creates zero balances for u (spec.md §4.1
// ensure_user). Write paths do not need it: the ledgers auto-create a
// user on first touch (spec.md §3 Lifecycle).
func (ex *Exchange) EnsureUser(u string) error {
	if u == "" {
		return fmt.Errorf("%w: empty user id", xerrors.ErrInvalidInput)
	}
	ex.mu.Lock()
	defer ex.mu.Unlock()
	ex.cash.EnsureUser(u)
	ex.queue.Enqueue(events.New(events.UserCreated, events.UserCreatedPayload{UserID: u}))
	return nil
}

// CreateSymbol creates an empty book for symbol (spec.md §4.3,
// ErrSymbolExists if it already exists).
func (ex *Exchange) CreateSymbol(symbol string) error {
	if symbol == "" {
		return fmt.Errorf("%w: empty symbol", xerrors.ErrInvalidInput)
	}
	ex.mu.Lock()
	defer ex.mu.Unlock()
	if err := ex.book.CreateSymbol(symbol); err != nil {
		return err
	}
	ex.queue.Enqueue(events.New(events.SymbolCreated, events.SymbolCreatedPayload{SymbolName: symbol}))
	return nil
}

// Onramp credits amount to u's free cash (spec.md §4.1 deposit).
func (ex *Exchange) Onramp(u string, amount money.Money) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: onramp amount must be positive", xerrors.ErrInvalidInput)
	}
	ex.mu.Lock()
	defer ex.mu.Unlock()
	if err := ex.cash.Deposit(u, amount); err != nil {
		return err
	}
	free, locked, _ := ex.cash.Balances(u)
	ex.queue.Enqueue(events.New(events.BalanceUpdated, events.BalanceUpdatedPayload{
		UserID: u,
		Free:   free.String(),
		Locked: locked.String(),
	}))
	return nil
}

// GetCash returns (free, locked) for u, or ErrUserNotFound if u has
// never been touched (spec.md §6.1 get_cash(userId)).
func (ex *Exchange) GetCash(u string) (money.Money, money.Money, error) {
	ex.mu.RLock()
	defer ex.mu.RUnlock()
	free, locked, ok := ex.cash.Balances(u)
	if !ok {
		return money.Zero, money.Zero, xerrors.ErrUserNotFound
	}
	return free, locked, nil
}

// GetAllCash returns every known user's cash balance.
func (ex *Exchange) GetAllCash() map[string]ledger.CashBalance {
	ex.mu.RLock()
	defer ex.mu.RUnlock()
	return ex.cash.Snapshot()
}

// GetInventory returns (position, found) for (u, symbol).
func (ex *Exchange) GetInventory(u, symbol string) (ledger.Position, bool) {
	ex.mu.RLock()
	defer ex.mu.RUnlock()
	return ex.inv.Position(u, symbol)
}

// GetUserInventory returns every symbol position held by u (spec.md
// §6.1 get_inventory(userId), the one-user/all-symbols form), or
// (nil, false) if u holds no position in any symbol.
func (ex *Exchange) GetUserInventory(u string) (map[string]ledger.Position, bool) {
	ex.mu.RLock()
	defer ex.mu.RUnlock()
	bySymbol, ok := ex.inv.Snapshot()[u]
	return bySymbol, ok
}

// GetAllInventory returns every known position, keyed by user then
// symbol.
func (ex *Exchange) GetAllInventory() map[string]map[string]ledger.Position {
	ex.mu.RLock()
	defer ex.mu.RUnlock()
	return ex.inv.Snapshot()
}

// Symbols returns every symbol with a book entry.
func (ex *Exchange) Symbols() []string {
	ex.mu.RLock()
	defer ex.mu.RUnlock()
	return ex.book.Symbols()
}

// BookSnapshot is the read view for view_book (spec.md §6.1).
type BookSnapshot struct {
	Symbol   string
	YesBids  []book.LevelView
	YesAsks  []book.LevelView
	NoBids   []book.LevelView
	NoAsks   []book.LevelView
}

// ViewBook returns a point-in-time snapshot of symbol's book, bid
// sides sorted descending (best bid first) and ask sides ascending
// (best ask first).
func (ex *Exchange) ViewBook(symbol string) (BookSnapshot, error) {
	ex.mu.RLock()
	defer ex.mu.RUnlock()

	if !ex.book.Exists(symbol) {
		return BookSnapshot{}, xerrors.ErrSymbolNotFound
	}
	yesBids, _ := ex.book.Levels(symbol, ledger.YES, book.Bid, false)
	yesAsks, _ := ex.book.Levels(symbol, ledger.YES, book.Ask, true)
	noBids, _ := ex.book.Levels(symbol, ledger.NO, book.Bid, false)
	noAsks, _ := ex.book.Levels(symbol, ledger.NO, book.Ask, true)
	return BookSnapshot{
		Symbol:  symbol,
		YesBids: yesBids,
		YesAsks: yesAsks,
		NoBids:  noBids,
		NoAsks:  noAsks,
	}, nil
}

// ViewAllBooks returns a point-in-time snapshot of every symbol's book
// (spec.md §6.1 view_book(), the no-argument "all symbols" form), one
// held read lock covering every symbol so the set is consistent.
func (ex *Exchange) ViewAllBooks() []BookSnapshot {
	ex.mu.RLock()
	defer ex.mu.RUnlock()

	symbols := ex.book.Symbols()
	snaps := make([]BookSnapshot, 0, len(symbols))
	for _, symbol := range symbols {
		yesBids, _ := ex.book.Levels(symbol, ledger.YES, book.Bid, false)
		yesAsks, _ := ex.book.Levels(symbol, ledger.YES, book.Ask, true)
		noBids, _ := ex.book.Levels(symbol, ledger.NO, book.Bid, false)
		noAsks, _ := ex.book.Levels(symbol, ledger.NO, book.Ask, true)
		snaps = append(snaps, BookSnapshot{
			Symbol:  symbol,
			YesBids: yesBids,
			YesAsks: yesAsks,
			NoBids:  noBids,
			NoAsks:  noAsks,
		})
	}
	return snaps
}
