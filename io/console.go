package io

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Console provides line-oriented text I/O for an operator.
// It wraps an io.Reader for input and io.Writer for output; each value
// is one decimal line in either direction.
type Console struct {
	Input  io.Reader // Source of input lines.
	Output io.Writer // Sink for output lines and prompts.
	Prompt string    // If set, written to Output before each read.

	reader *bufio.Reader
}

var _ Input = (*Console)(nil)
var _ Output = (*Console)(nil)

// Receive prompts, then reads and parses one line from the input stream.
// A final line without a newline is accepted. Without an Input stream,
// Receive returns ErrInputExhausted.
func (con *Console) Receive() (value int32, err error) {
	if con.Input == nil {
		err = ErrInputExhausted
		return
	}

	if con.reader == nil {
		var ok bool
		con.reader, ok = con.Input.(*bufio.Reader)
		if !ok {
			con.reader = bufio.NewReader(con.Input)
		}
	}

	if len(con.Prompt) != 0 && con.Output != nil {
		_, err = fmt.Fprint(con.Output, con.Prompt)
		if err != nil {
			return
		}
	}

	line, err := con.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return
		}
		if len(line) == 0 {
			err = errors.Join(ErrInputExhausted, err)
			return
		}
		err = nil
	}

	v64, err := strconv.ParseInt(strings.TrimSpace(line), 10, 32)
	if err != nil {
		err = errors.Join(ErrInputSyntax, err)
		return
	}

	value = int32(v64)
	return
}

// Send writes a value to the output stream, followed by a newline.
// Without an Output stream, Send returns ErrChannelFull.
func (con *Console) Send(value int32) (err error) {
	if con.Output == nil {
		err = ErrChannelFull
		return
	}

	_, err = fmt.Fprintln(con.Output, value)
	return
}
