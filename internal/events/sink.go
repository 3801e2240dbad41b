package events

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	tomb "gopkg.in/tomb.v2"
)

// Sink is the external collaborator that fans events out to whatever
// listens (WebSocket clients, a log shipper, a test spy). The core
// never imports a concrete sink; spec.md §1 places pub/sub fan-out
// outside this core's boundary. Sink.Notify must not block for long —
// it already runs outside the engine lock, but a slow sink still
// backs up the drain loop and, eventually, the bounded queue below.
type Sink interface {
	Notify(Event)
}

// SinkFunc adapts a plain function to a Sink.
type SinkFunc func(Event)

func (f SinkFunc) Notify(e Event) { f(e) }

// Queue is the bounded outbound event queue spec.md §5 describes:
// events are appended inside the engine's critical section and
// drained by an asynchronous fan-out worker. When full, the oldest
// queued event is dropped — observability is best-effort, the ledger
// remains the source of truth.
type Queue struct {
	capacity int
	ch       chan Event
	seq      uint64
	t        *tomb.Tomb
	dropped  uint64
}

// NewQueue constructs a queue with the given bounded capacity.
func NewQueue(capacity int) *Queue {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue{capacity: capacity, ch: make(chan Event, capacity)}
}

// Enqueue stamps ev with the next sequence number and appends it to
// the queue. Must be called while holding the engine lock, so that
// Seq reflects total order across symbols (spec.md §5 "Operations on
// a given symbol are totally ordered"). If the queue is full, the
// oldest queued event is dropped to make room — this method never
// blocks and never returns an error, matching the "fire-and-forget
// sink" contract in spec.md §1.
func (q *Queue) Enqueue(ev Event) {
	q.seq++
	ev.Seq = q.seq
	ev.Emitted = time.Now()
	select {
	case q.ch <- ev:
		return
	default:
	}
	// Full: drop the oldest, then push. A concurrent drain could have
	// emptied a slot between the failed send and this drop, which is
	// harmless — we just drop one more event than strictly necessary.
	select {
	case <-q.ch:
		q.dropped++
	default:
	}
	select {
	case q.ch <- ev:
	default:
		// Another producer filled the freed slot; give up on this one
		// rather than spin inside the caller's critical section.
		q.dropped++
	}
}

// Dropped returns the number of events dropped so far due to a full
// queue.
func (q *Queue) Dropped() uint64 {
	return q.dropped
}

// Run starts the fan-out worker, which drains the queue and hands
// each event to sink until ctx is done. Grounded on fenrir's
// WorkerPool (internal/worker.go): a tomb.Tomb supervises the drain
// goroutine so shutdown is clean and errors are observable.
func (q *Queue) Run(ctx context.Context, sink Sink) {
	q.t, _ = tomb.WithContext(ctx)
	q.t.Go(func() error {
		for {
			select {
			case <-q.t.Dying():
				return nil
			case ev := <-q.ch:
				sink.Notify(ev)
			}
		}
	})
}

// Stop signals the fan-out worker to exit and waits for it.
func (q *Queue) Stop() error {
	if q.t == nil {
		return nil
	}
	q.t.Kill(nil)
	return q.t.Wait()
}

// LogSink is a Sink that logs every event at debug level via zerolog,
// fenrir's own logging library. Useful as a default sink for cmd/probo
// and for tests asserting on emitted event kinds.
type LogSink struct{}

func (LogSink) Notify(ev Event) {
	log.Debug().
		Str("id", ev.ID).
		Uint64("seq", ev.Seq).
		Str("kind", string(ev.Kind)).
		Any("payload", ev.Payload).
		Msg("event")
}

// CollectSink accumulates every notified event, for tests.
type CollectSink struct {
	Events []Event
}

func (c *CollectSink) Notify(ev Event) {
	c.Events = append(c.Events, ev)
}
