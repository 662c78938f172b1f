package cpu

import (
	"iter"
)

// Opcode represents a line of assembled code with its source location and
// generated memory words.
type Opcode struct {
	LineNo int
	Ip     int
	Words  []string
	Codes  []int32
	Links  map[int]string // Index into Codes of each label reference.
}

// Program is an assembled listing.
type Program struct {
	Opcodes []Opcode
}

// Debug locates a memory address within a listing.
type Debug struct {
	*Opcode
	Index int
}

// Debug returns the listing entry that generated the word at ip.
// The Opcode is nil if no entry covers ip.
func (prog *Program) Debug(ip int) (dbg Debug) {
	for n, op := range prog.Opcodes {
		if ip >= op.Ip && ip < op.Ip+len(op.Codes) {
			dbg = Debug{
				Opcode: &prog.Opcodes[n],
				Index:  ip - op.Ip,
			}
			break
		}
	}

	return
}

// Binary returns the memory image of the program.
func (prog *Program) Binary() (mem Memory) {
	for ip, code := range prog.Codes() {
		for len(mem) < ip {
			mem = append(mem, 0)
		}
		mem = append(mem, code)
	}

	return
}

// Codes iterates over every generated memory word and its address.
func (prog *Program) Codes() iter.Seq2[int, int32] {
	return func(yield func(ip int, code int32) bool) {
		for _, op := range prog.Opcodes {
			for n, code := range op.Codes {
				if !yield(op.Ip+n, code) {
					return
				}
			}
		}
	}
}
