package io

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsole_Receive(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	con := &Console{
		Input:  strings.NewReader("12\n -3 \n7"),
		Output: out,
		Prompt: "input : ",
	}

	for _, expected := range []int32{12, -3, 7} {
		value, err := con.Receive()
		assert.NoError(err)
		assert.Equal(expected, value)
	}

	assert.Equal("input : input : input : ", out.String())

	_, err := con.Receive()
	assert.ErrorIs(err, ErrInputExhausted)
	assert.ErrorIs(err, io.EOF)
}

func TestConsole_ReceiveSyntax(t *testing.T) {
	assert := assert.New(t)

	con := &Console{Input: strings.NewReader("twelve\n")}
	_, err := con.Receive()
	assert.ErrorIs(err, ErrInputSyntax)
}

func TestConsole_ReceiveOverflow(t *testing.T) {
	assert := assert.New(t)

	con := &Console{Input: strings.NewReader("4294967296\n")}
	_, err := con.Receive()
	assert.ErrorIs(err, ErrInputSyntax)
}

func TestConsole_Send(t *testing.T) {
	assert := assert.New(t)

	out := &bytes.Buffer{}
	con := &Console{Output: out}

	assert.NoError(con.Send(1))
	assert.NoError(con.Send(-25))
	assert.Equal("1\n-25\n", out.String())
}

type brokenWriter struct{}

var errBroken = errors.New("broken")

func (brokenWriter) Write(p []byte) (int, error) {
	return 0, errBroken
}

func TestConsole_SendError(t *testing.T) {
	assert := assert.New(t)

	con := &Console{Output: brokenWriter{}}
	assert.ErrorIs(con.Send(1), errBroken)
}

func TestConsole_Unset(t *testing.T) {
	assert := assert.New(t)

	con := &Console{}

	_, err := con.Receive()
	assert.ErrorIs(err, ErrInputExhausted)

	assert.ErrorIs(con.Send(1), ErrChannelFull)
}
