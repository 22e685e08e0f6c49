package queue

import "sync"

// fifo buffers items between the intake goroutine and the flush loop. A
// channel cannot express "drain up to N without blocking", which is exactly
// the pop the flush loop needs, so this is a small mutex-guarded slice.
type fifo[T any] struct {
	mu    sync.Mutex
	items []*Item[T]
}

func (q *fifo[T]) push(item *Item[T]) {
	q.mu.Lock()
	q.items = append(q.items, item)
	q.mu.Unlock()
}

// popN removes and returns up to max items in arrival order.
func (q *fifo[T]) popN(max int) []*Item[T] {
	q.mu.Lock()
	defer q.mu.Unlock()

	n := len(q.items)
	if n == 0 {
		return nil
	}
	if n > max {
		n = max
	}
	batch := make([]*Item[T], n)
	copy(batch, q.items[:n])
	q.items = q.items[n:]
	return batch
}

func (q *fifo[T]) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// clear drops everything buffered and reports how many items were dropped.
func (q *fifo[T]) clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	n := len(q.items)
	q.items = nil
	return n
}
