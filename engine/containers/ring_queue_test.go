package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRingQueueFIFO(t *testing.T) {
	rq := NewRingQueue[int](3)
	assert.True(t, rq.IsEmpty())

	_, err := rq.Dequeue()
	assert.ErrorIs(t, err, ErrQueueEmpty)

	for i := 1; i <= 3; i++ {
		require.NoError(t, rq.Enqueue(i))
	}
	assert.True(t, rq.IsFull())
	assert.ErrorIs(t, rq.Enqueue(4), ErrQueueFull)

	v, err := rq.Peek()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = rq.Dequeue()
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	require.NoError(t, rq.Enqueue(4))
	assert.Equal(t, []int{2, 3, 4}, rq.Drain())
	assert.Equal(t, 0, rq.Len())
}

func TestRingQueuePushEvictsOldest(t *testing.T) {
	rq := NewRingQueue[string](2)
	assert.False(t, rq.Push("a"))
	assert.False(t, rq.Push("b"))
	assert.True(t, rq.Push("c"))
	assert.Equal(t, []string{"b", "c"}, rq.Drain())
}

func TestRingQueueMinimumSize(t *testing.T) {
	rq := NewRingQueue[int](0)
	require.NoError(t, rq.Enqueue(1))
	assert.True(t, rq.IsFull())
}
