package book

import "github.com/aaryan182/probo/internal/money"

// makerQueue is an insertion-ordered UserId -> Quantity map. Stability
// of maker iteration order is required by spec.md §4.4.3 so that
// repeated runs on identical input produce identical trade sequences;
// a plain Go map cannot give us that, so we keep the insertion order
// explicitly alongside the lookup map.
type makerQueue struct {
	order []string
	qty   map[string]money.Quantity
}

func newMakerQueue() *makerQueue {
	return &makerQueue{qty: make(map[string]money.Quantity)}
}

// add grows user's resting quantity by delta, appending user to the
// back of the queue the first time it is seen.
func (q *makerQueue) add(user string, delta money.Quantity) {
	if _, ok := q.qty[user]; !ok {
		q.order = append(q.order, user)
	}
	q.qty[user] += delta
}

// reduce shrinks user's resting quantity by delta (caller must ensure
// delta <= current quantity) and removes user from the queue once its
// quantity reaches zero.
func (q *makerQueue) reduce(user string, delta money.Quantity) {
	remaining := q.qty[user] - delta
	if remaining <= 0 {
		delete(q.qty, user)
		for i, u := range q.order {
			if u == user {
				q.order = append(q.order[:i], q.order[i+1:]...)
				break
			}
		}
		return
	}
	q.qty[user] = remaining
}

func (q *makerQueue) get(user string) money.Quantity {
	return q.qty[user]
}

func (q *makerQueue) len() int {
	return len(q.order)
}

// users returns the makers at this level in FIFO insertion order.
func (q *makerQueue) users() []string {
	out := make([]string, len(q.order))
	copy(out, q.order)
	return out
}
