// Package events defines the fire-and-forget outbound event channel
// described in spec.md §5/§6.3. The engine enqueues events inside its
// critical section; a tomb-supervised worker drains the queue and
// hands each event to a Sink outside the lock, mirroring fenrir's
// WorkerPool (internal/worker.go in the teacher repo).
package events

import (
	"time"

	"github.com/google/uuid"
)

// Kind enumerates the wire event types from spec.md §6.3.
type Kind string

const (
	DataReset      Kind = "dataReset"
	UserCreated    Kind = "userCreated"
	SymbolCreated  Kind = "symbolCreated"
	BalanceUpdated Kind = "balanceUpdated"
	OrderPlaced    Kind = "orderPlaced"
	OrderCanceled  Kind = "orderCanceled"
	TokensMinted   Kind = "tokensMinted"
)

// Event is the envelope wrapping one domain payload. The ID and
// Seq fields are an expansion over the bare payload shapes in spec.md
// §6.3 — see SPEC_FULL.md "Event correlation and replay-friendly
// emission" — giving every event a stable, orderable identity without
// requiring a durable log.
type Event struct {
	ID      string
	Seq     uint64
	Kind    Kind
	Emitted time.Time
	Payload any
}

// New stamps a payload with a fresh correlation ID. Seq and Emitted
// are filled in by the queue at enqueue time, since both must be
// assigned under the engine lock to stay totally ordered.
func New(kind Kind, payload any) Event {
	return Event{ID: uuid.NewString(), Kind: kind, Payload: payload}
}

// Payloads for each Kind, matching spec.md §6.3's field lists.
// Prices and cash balances are carried as decimal strings, formatted
// by the engine when it builds the payload; quantities are int64.

type UserCreatedPayload struct {
	UserID string
}

type SymbolCreatedPayload struct {
	SymbolName string
}

type BalanceUpdatedPayload struct {
	UserID string
	Free   string
	Locked string
}

type OrderPlacedPayload struct {
	Type     string // "buy" | "sell"
	UserID   string
	Symbol   string
	Quantity int64
	Price    string
	Outcome  string
}

type OrderCanceledPayload struct {
	UserID   string
	Symbol   string
	Quantity int64
	Price    string
	Outcome  string
}

type TokensMintedPayload struct {
	UserID   string
	Symbol   string
	Quantity int64
	Price    string
}
