package conveyor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer_NonPositiveCapacity_Errors(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		_, err := NewBuffer(capacity)
		assert.Error(t, err, "capacity %d", capacity)
	}
}

func TestBuffer_PutTake_FIFO(t *testing.T) {
	b, err := NewBuffer(3)
	require.NoError(t, err)
	ctx := context.Background()

	require.True(t, b.Put(ctx, 1))
	require.True(t, b.Put(ctx, 2))
	require.True(t, b.Put(ctx, 3))
	assert.True(t, b.IsFull())

	for want := 1; want <= 3; want++ {
		got, ok := b.Take(ctx)
		require.True(t, ok)
		assert.Equal(t, want, got)
	}
	assert.True(t, b.IsEmpty())
}

func TestBuffer_Put_Full_TimesOut(t *testing.T) {
	b, err := NewBuffer(1)
	require.NoError(t, err)
	require.True(t, b.Put(context.Background(), 1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.False(t, b.Put(ctx, 2), "put into a full buffer must fail once the timeout fires")
	assert.Equal(t, 1, b.Len())
}

func TestBuffer_Take_Empty_TimesOut(t *testing.T) {
	b, err := NewBuffer(1)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, ok := b.Take(ctx)
	assert.False(t, ok, "take from an empty buffer must fail once the timeout fires")
}

func TestBuffer_Cancel_UnblocksParkedTake(t *testing.T) {
	b, err := NewBuffer(1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan bool, 1)
	go func() {
		_, ok := b.Take(ctx)
		done <- ok
	}()

	cancel()
	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("cancel did not unblock the parked Take")
	}
}

func TestBuffer_Cancel_UnblocksParkedPut(t *testing.T) {
	b, err := NewBuffer(1)
	require.NoError(t, err)
	require.True(t, b.Put(context.Background(), 1))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan bool, 1)
	go func() {
		done <- b.Put(ctx, 2)
	}()

	cancel()
	select {
	case ok := <-done:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("cancel did not unblock the parked Put")
	}
}

func TestBuffer_SlotFreedWhileParked_PutSucceeds(t *testing.T) {
	b, err := NewBuffer(1)
	require.NoError(t, err)
	ctx := context.Background()
	require.True(t, b.Put(ctx, 1))

	done := make(chan bool, 1)
	go func() {
		done <- b.Put(ctx, 2)
	}()

	got, ok := b.Take(ctx)
	require.True(t, ok)
	assert.Equal(t, 1, got)

	select {
	case ok := <-done:
		assert.True(t, ok, "freed slot must admit the parked Put")
	case <-time.After(time.Second):
		t.Fatal("freed slot did not unblock the parked Put")
	}
	assert.Equal(t, 1, b.Len())
}

func TestBuffer_ConcurrentPutTake_NothingLostOrDuplicated(t *testing.T) {
	const items = 200
	b, err := NewBuffer(5)
	require.NoError(t, err)
	ctx := context.Background()

	go func() {
		for i := 1; i <= items; i++ {
			b.Put(ctx, i)
		}
	}()

	seen := make(map[int]bool, items)
	for i := 0; i < items; i++ {
		item, ok := b.Take(ctx)
		require.True(t, ok)
		require.False(t, seen[item], "item %d delivered twice", item)
		seen[item] = true
	}
	assert.Len(t, seen, items)
	assert.True(t, b.IsEmpty())
}
