package cpu

import (
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseProgram parses comma separated program text into memory.
// Leading and trailing newlines are ignored; no other whitespace is.
func ParseProgram(text string) (mem Memory, err error) {
	text = strings.Trim(text, "\n")

	for _, token := range strings.Split(text, ",") {
		var v64 int64
		v64, err = strconv.ParseInt(token, 10, 32)
		if err != nil {
			err = &ErrParse{Token: token, Err: err}
			mem = nil
			return
		}
		mem = append(mem, int32(v64))
	}

	return
}

// LoadProgram reads and parses program text from a reader.
func LoadProgram(input io.Reader) (mem Memory, err error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return
	}

	return ParseProgram(string(data))
}

// LoadFile reads and parses program text from a file.
func LoadFile(path string) (mem Memory, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}

	return ParseProgram(string(data))
}
