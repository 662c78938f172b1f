package io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueue_Order(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{}
	for _, v := range []int32{3, 1, 2} {
		assert.NoError(q.Send(v))
	}

	assert.Equal(3, q.Len())
	assert.Equal([]int32{3, 1, 2}, q.Values())

	for _, expected := range []int32{3, 1, 2} {
		value, ok := q.Get()
		assert.True(ok)
		assert.Equal(expected, value)
	}

	value, ok := q.Get()
	assert.False(ok)
	assert.Equal(int32(0), value)
}

func TestQueue_Capacity(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{Capacity: 2}
	assert.NoError(q.Send(1))
	assert.NoError(q.Send(2))
	assert.ErrorIs(q.Send(3), ErrChannelFull)
	assert.Equal([]int32{1, 2}, q.Values())

	// Draining makes room again.
	q.Get()
	assert.NoError(q.Send(3))
	assert.Equal([]int32{2, 3}, q.Values())
}

func TestQueue_ValuesIsCopy(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{}
	q.Send(5)
	values := q.Values()
	values[0] = 6

	value, _ := q.Get()
	assert.Equal(int32(5), value)
}

func TestQueue_Reset(t *testing.T) {
	assert := assert.New(t)

	q := &Queue{}
	q.Send(1)
	q.Reset()
	assert.Equal(0, q.Len())
}
