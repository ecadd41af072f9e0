package listing

import "sync"

// Accumulator collects the records of successive loads.
// It is owned by a single view which resets it whenever the view is entered.
type Accumulator[T any] struct {
	mu   sync.Mutex
	rows []T
}

// Reset drops every collected record
func (acc *Accumulator[T]) Reset() {
	acc.mu.Lock()
	defer acc.mu.Unlock()
	acc.rows = nil
}

// Add appends records
func (acc *Accumulator[T]) Add(rows ...T) {
	acc.mu.Lock()
	defer acc.mu.Unlock()
	acc.rows = append(acc.rows, rows...)
}

// Rows returns a copy of the collected records
func (acc *Accumulator[T]) Rows() []T {
	acc.mu.Lock()
	defer acc.mu.Unlock()
	cpy := make([]T, len(acc.rows))
	copy(cpy, acc.rows)
	return cpy
}

// Len returns the amount of collected records
func (acc *Accumulator[T]) Len() int {
	acc.mu.Lock()
	defer acc.mu.Unlock()
	return len(acc.rows)
}
