package io

import (
	"time"
)

const (
	// PIPE_DEFAULT_TIMEOUT is the wait used when a pipe has no Timeout set.
	PIPE_DEFAULT_TIMEOUT = time.Second
)

// pipeTimeout returns the effective wait for a configured timeout.
func pipeTimeout(timeout time.Duration) time.Duration {
	if timeout <= 0 {
		return PIPE_DEFAULT_TIMEOUT
	}
	return timeout
}

// PipeInput receives values from a concurrent producer.
type PipeInput struct {
	Pipe    <-chan int32
	Timeout time.Duration // Maximum wait per value.
}

var _ Input = (*PipeInput)(nil)

// NewPipeInput creates an input reading from pipe.
func NewPipeInput(pipe <-chan int32, timeout time.Duration) *PipeInput {
	return &PipeInput{Pipe: pipe, Timeout: timeout}
}

// Receive blocks until a value arrives.
// Returns ErrTimeout if the wait expires, or ErrPipeClosed if the producer
// closed the pipe.
func (pi *PipeInput) Receive() (value int32, err error) {
	timer := time.NewTimer(pipeTimeout(pi.Timeout))
	defer timer.Stop()

	select {
	case recv, ok := <-pi.Pipe:
		if !ok {
			err = ErrPipeClosed
			return
		}
		value = recv
	case <-timer.C:
		err = ErrTimeout
	}

	return
}

// PipeOutput sends values to a concurrent consumer.
type PipeOutput struct {
	Pipe    chan<- int32
	Timeout time.Duration // Maximum wait per value.
}

var _ Output = (*PipeOutput)(nil)

// NewPipeOutput creates an output writing to pipe.
func NewPipeOutput(pipe chan<- int32, timeout time.Duration) *PipeOutput {
	return &PipeOutput{Pipe: pipe, Timeout: timeout}
}

// Send blocks until the consumer accepts the value.
// Returns ErrTimeout if the wait expires, or ErrPipeClosed if the pipe
// was closed to stop the producer.
func (po *PipeOutput) Send(value int32) (err error) {
	// A send on a closed channel is the only panic possible here.
	defer func() {
		if recover() != nil {
			err = ErrPipeClosed
		}
	}()

	timer := time.NewTimer(pipeTimeout(po.Timeout))
	defer timer.Stop()

	select {
	case po.Pipe <- value:
	case <-timer.C:
		err = ErrTimeout
	}

	return
}
