// Package mailbox provides a single-slot, last-writer-wins hand-off between
// background producers and the render loop.
package mailbox

import "sync"

// Mailbox holds at most one value. Publishing overwrites whatever is present,
// taking reads and clears. There is no queueing and no ordering between
// concurrent producers: the slot keeps whichever write acquired the lock last.
type Mailbox[T any] struct {
	mu    sync.Mutex
	value T
	full  bool
}

// New creates an empty mailbox
func New[T any]() *Mailbox[T] {
	return &Mailbox[T]{}
}

// Publish overwrites the slot with v
func (m *Mailbox[T]) Publish(v T) {
	m.Swap(v)
}

// PublishNone overwrites the slot with "no value", discarding anything unread
func (m *Mailbox[T]) PublishNone() {
	m.SwapNone()
}

// Swap overwrites the slot with v and returns what it displaced.
// ok is false when the slot was empty.
func (m *Mailbox[T]) Swap(v T) (prev T, ok bool) {
	m.mu.Lock()
	prev, ok = m.value, m.full
	m.value = v
	m.full = true
	m.mu.Unlock()

	return prev, ok
}

// SwapNone empties the slot and returns what it displaced
func (m *Mailbox[T]) SwapNone() (prev T, ok bool) {
	var zero T

	m.mu.Lock()
	prev, ok = m.value, m.full
	m.value = zero
	m.full = false
	m.mu.Unlock()

	return prev, ok
}

// Take returns the current value and leaves the slot empty.
// ok is false when the slot was empty.
func (m *Mailbox[T]) Take() (v T, ok bool) {
	var zero T

	m.mu.Lock()
	v, ok = m.value, m.full
	m.value = zero
	m.full = false
	m.mu.Unlock()

	return v, ok
}
