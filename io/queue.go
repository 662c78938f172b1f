package io

import (
	"slices"
)

// Queue collects output values in a FIFO for later retrieval by its owner.
type Queue struct {
	Capacity int // Maximum queued values; zero is unbounded.

	Data []int32
}

var _ Output = (*Queue)(nil)

// Send appends a value to the queue.
// Returns ErrChannelFull if the queue has reached a non-zero capacity.
func (q *Queue) Send(value int32) (err error) {
	if q.Capacity > 0 && len(q.Data) >= q.Capacity {
		err = ErrChannelFull
		return
	}

	q.Data = append(q.Data, value)

	return
}

// Get removes and returns the oldest value in the queue.
func (q *Queue) Get() (value int32, ok bool) {
	if len(q.Data) > 0 {
		ok = true
		value = q.Data[0]
		q.Data = q.Data[1:]
	}

	return
}

// Len returns the count of queued values.
func (q *Queue) Len() int {
	return len(q.Data)
}

// Values returns a copy of the queued values, oldest first.
func (q *Queue) Values() []int32 {
	return slices.Clone(q.Data)
}

// Reset discards all queued values.
func (q *Queue) Reset() {
	q.Data = nil
}
