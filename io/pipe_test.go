package io

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPipeInput_Receive(t *testing.T) {
	assert := assert.New(t)

	pipe := make(chan int32, 2)
	pipe <- 42
	pipe <- -1

	pi := NewPipeInput(pipe, 10*time.Millisecond)

	value, err := pi.Receive()
	assert.NoError(err)
	assert.Equal(int32(42), value)

	value, err = pi.Receive()
	assert.NoError(err)
	assert.Equal(int32(-1), value)

	_, err = pi.Receive()
	assert.ErrorIs(err, ErrTimeout)
}

func TestPipeInput_Closed(t *testing.T) {
	assert := assert.New(t)

	pipe := make(chan int32)
	close(pipe)

	pi := NewPipeInput(pipe, time.Second)
	_, err := pi.Receive()
	assert.ErrorIs(err, ErrPipeClosed)
}

func TestPipeInput_Producer(t *testing.T) {
	assert := assert.New(t)

	pipe := make(chan int32)
	go func() {
		time.Sleep(5 * time.Millisecond)
		pipe <- 7
	}()

	pi := NewPipeInput(pipe, time.Second)
	value, err := pi.Receive()
	assert.NoError(err)
	assert.Equal(int32(7), value)
}

func TestPipeOutput_Send(t *testing.T) {
	assert := assert.New(t)

	pipe := make(chan int32, 1)
	po := NewPipeOutput(pipe, 10*time.Millisecond)

	assert.NoError(po.Send(3))
	assert.Equal(int32(3), <-pipe)

	assert.NoError(po.Send(4))
	// Nobody drains the full pipe.
	assert.ErrorIs(po.Send(5), ErrTimeout)
	assert.Equal(int32(4), <-pipe)
}

func TestPipeTimeout(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(PIPE_DEFAULT_TIMEOUT, pipeTimeout(0))
	assert.Equal(PIPE_DEFAULT_TIMEOUT, pipeTimeout(-time.Second))
	assert.Equal(time.Minute, pipeTimeout(time.Minute))
}

func TestPipeOutput_Closed(t *testing.T) {
	assert := assert.New(t)

	pipe := make(chan int32)
	close(pipe)

	po := NewPipeOutput(pipe, time.Second)
	assert.ErrorIs(po.Send(1), ErrPipeClosed)

	// Closing while a send is blocked also fails the send.
	pipe = make(chan int32)
	po = NewPipeOutput(pipe, time.Second)
	closer := time.AfterFunc(5*time.Millisecond, func() { close(pipe) })
	defer closer.Stop()

	assert.ErrorIs(po.Send(2), ErrPipeClosed)
}
