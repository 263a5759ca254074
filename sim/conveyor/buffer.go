// Package conveyor is the goroutine variant of the factory line: producers
// and consumers share a bounded buffer instead of a ticked belt. It exists
// to measure real concurrent throughput; the deterministic engine lives in
// the parent sim package.
package conveyor

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Buffer is a bounded FIFO shared between producer and consumer goroutines.
// Two counting semaphores account for empty and filled slots, so producers
// park when the buffer is full and consumers park when it is empty. The
// context passed to Put and Take carries both the per-operation timeout and
// the line's stop signal; cancelling it unblocks parked goroutines.
type Buffer struct {
	mu    sync.Mutex
	items []int

	capacity int
	empty    *semaphore.Weighted // free slots, producers acquire
	filled   *semaphore.Weighted // occupied slots, consumers acquire
}

// NewBuffer creates an empty buffer with the given capacity.
func NewBuffer(capacity int) (*Buffer, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("buffer capacity must be positive, got %d", capacity)
	}
	empty := semaphore.NewWeighted(int64(capacity))
	filled := semaphore.NewWeighted(int64(capacity))
	// Drain filled so consumers block until a producer releases a slot.
	if err := filled.Acquire(context.Background(), int64(capacity)); err != nil {
		return nil, fmt.Errorf("draining filled-slot semaphore: %w", err)
	}
	return &Buffer{
		items:    make([]int, 0, capacity),
		capacity: capacity,
		empty:    empty,
		filled:   filled,
	}, nil
}

// Put appends item, blocking while the buffer is full. It reports false
// when ctx expires or is cancelled before a slot frees up.
func (b *Buffer) Put(ctx context.Context, item int) bool {
	if err := b.empty.Acquire(ctx, 1); err != nil {
		return false
	}
	b.mu.Lock()
	b.items = append(b.items, item)
	b.mu.Unlock()
	b.filled.Release(1)
	return true
}

// Take removes the oldest item, blocking while the buffer is empty. It
// reports false when ctx expires or is cancelled before an item arrives.
func (b *Buffer) Take(ctx context.Context) (int, bool) {
	if err := b.filled.Acquire(ctx, 1); err != nil {
		return 0, false
	}
	b.mu.Lock()
	item := b.items[0]
	b.items = b.items[1:]
	b.mu.Unlock()
	b.empty.Release(1)
	return item, true
}

// Len returns the number of buffered items.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.items)
}

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int {
	return b.capacity
}

// IsEmpty reports whether no items are buffered.
func (b *Buffer) IsEmpty() bool {
	return b.Len() == 0
}

// IsFull reports whether every slot is occupied.
func (b *Buffer) IsFull() bool {
	return b.Len() == b.capacity
}
