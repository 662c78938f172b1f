package cpu

import (
	"fmt"
	"strings"
)

// CodeOp is an operation code, the low two decimal digits of an instruction word.
type CodeOp int32

const (
	OP_ADD           = CodeOp(1)  // add
	OP_MUL           = CodeOp(2)  // mul
	OP_INPUT         = CodeOp(3)  // in
	OP_OUTPUT        = CodeOp(4)  // out
	OP_JUMP_IF_TRUE  = CodeOp(5)  // jt
	OP_JUMP_IF_FALSE = CodeOp(6)  // jf
	OP_LESS          = CodeOp(7)  // lt
	OP_EQUAL         = CodeOp(8)  // eq
	OP_HALT          = CodeOp(99) // halt
)

// Ops lists every valid operation code.
var Ops = []CodeOp{
	OP_ADD, OP_MUL, OP_INPUT, OP_OUTPUT,
	OP_JUMP_IF_TRUE, OP_JUMP_IF_FALSE, OP_LESS, OP_EQUAL,
	OP_HALT,
}

// String returns the assembler mnemonic of the operation.
func (op CodeOp) String() string {
	switch op {
	case OP_ADD:
		return "add"
	case OP_MUL:
		return "mul"
	case OP_INPUT:
		return "in"
	case OP_OUTPUT:
		return "out"
	case OP_JUMP_IF_TRUE:
		return "jt"
	case OP_JUMP_IF_FALSE:
		return "jf"
	case OP_LESS:
		return "lt"
	case OP_EQUAL:
		return "eq"
	case OP_HALT:
		return "halt"
	}
	return fmt.Sprintf("CodeOp(%d)", int32(op))
}

// Valid returns true if op is one of the defined operations.
func (op CodeOp) Valid() bool {
	reads, _ := op.Params()
	return reads >= 0
}

// Params returns the count of read parameters, and the count of write
// addresses that follow them. Returns -1 reads for an unknown operation.
func (op CodeOp) Params() (reads int, writes int) {
	switch op {
	case OP_ADD, OP_MUL, OP_LESS, OP_EQUAL:
		return 2, 1
	case OP_INPUT:
		return 0, 1
	case OP_OUTPUT:
		return 1, 0
	case OP_JUMP_IF_TRUE, OP_JUMP_IF_FALSE:
		return 2, 0
	case OP_HALT:
		return 0, 0
	}
	return -1, 0
}

// CodeMode is a parameter addressing mode.
type CodeMode int32

const (
	MODE_POSITION  = CodeMode(0) // Parameter is the address of the value.
	MODE_IMMEDIATE = CodeMode(1) // Parameter is the value.
)

// String returns the name of the mode.
func (mode CodeMode) String() string {
	switch mode {
	case MODE_POSITION:
		return "position"
	case MODE_IMMEDIATE:
		return "immediate"
	}
	return fmt.Sprintf("CodeMode(%d)", int32(mode))
}

// Code is a decoded instruction word.
type Code struct {
	Word  int32      // Raw instruction word.
	Op    CodeOp     // Operation.
	Modes []CodeMode // Parameter modes, in operand order.
}

// Decode decodes an instruction word.
// Mode digits missing from the word are left out of Modes; use Mode()
// to read them with the position default applied.
func Decode(word int32) (code Code, err error) {
	if word < 0 {
		err = ErrDecodeNegative
		return
	}

	op := CodeOp(word % 100)
	if !op.Valid() {
		err = ErrDecodeOpcode
		return
	}

	var modes []CodeMode
	for data := word / 100; data != 0; data /= 10 {
		mode := CodeMode(data % 10)
		switch mode {
		case MODE_POSITION, MODE_IMMEDIATE:
			modes = append(modes, mode)
		default:
			err = ErrDecodeMode
			return
		}
	}

	code = Code{Word: word, Op: op, Modes: modes}

	return
}

// MakeCode encodes an operation and its parameter modes into a Code.
// Trailing position modes are not encoded.
func MakeCode(op CodeOp, modes ...CodeMode) Code {
	for len(modes) > 0 && modes[len(modes)-1] == MODE_POSITION {
		modes = modes[:len(modes)-1]
	}

	word := int32(op)
	scale := int32(100)
	for _, mode := range modes {
		word += int32(mode) * scale
		scale *= 10
	}

	return Code{Word: word, Op: op, Modes: modes}
}

// Mode returns the addressing mode of the n'th parameter.
func (code Code) Mode(n int) CodeMode {
	if n >= len(code.Modes) {
		return MODE_POSITION
	}
	return code.Modes[n]
}

// Size returns the count of memory words used by the instruction.
func (code Code) Size() int {
	reads, writes := code.Op.Params()
	return 1 + reads + writes
}

// String returns a trace representation of the instruction.
func (code Code) String() string {
	reads, writes := code.Op.Params()

	var modes []string
	for n := range reads + writes {
		switch {
		case n >= reads:
			modes = append(modes, "@")
		case code.Mode(n) == MODE_IMMEDIATE:
			modes = append(modes, "#")
		default:
			modes = append(modes, "*")
		}
	}

	return fmt.Sprintf("%v.%v (%d)", code.Op.String(), strings.Join(modes, ""), code.Word)
}
