package cpu

import (
	"strconv"
	"strings"
)

// Memory is the program and data store of the machine.
type Memory []int32

// Valid returns true if address is within the memory bounds.
func (mem Memory) Valid(address int) bool {
	return address >= 0 && address < len(mem)
}

// Get reads the word at address.
func (mem Memory) Get(address int) (value int32, err error) {
	if !mem.Valid(address) {
		err = ErrAddressRange
		return
	}

	value = mem[address]
	return
}

// Put writes the word at address.
func (mem Memory) Put(address int, value int32) (err error) {
	if !mem.Valid(address) {
		err = ErrAddressRange
		return
	}

	mem[address] = value
	return
}

// Clone returns an independent copy of the memory.
func (mem Memory) Clone() Memory {
	if mem == nil {
		return nil
	}
	out := make(Memory, len(mem))
	copy(out, mem)
	return out
}

// String returns the memory in program text form.
func (mem Memory) String() string {
	var text strings.Builder
	for n, word := range mem {
		if n > 0 {
			text.WriteByte(',')
		}
		text.WriteString(strconv.FormatInt(int64(word), 10))
	}
	return text.String()
}
