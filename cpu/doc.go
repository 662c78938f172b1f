// Package cpu implements the Intcode machine and its assembler.
//
// An Intcode program is a flat memory of signed 32-bit words, which
// holds both code and data. Each instruction word encodes an opcode in
// its two low decimal digits, and one addressing mode per parameter in
// the digits above them, least significant first. Parameters are either
// positions (addresses to dereference) or immediates (literal values).
//
// The CPU executes until a halt instruction, until the instruction
// pointer runs off the end of memory, or until an instruction fails.
// Input and output instructions exchange values through the ports
// defined in the io package.
//
// The assembler provides a small assembly language for the instruction
// set, supporting labels, equates, and compile-time expression evaluation.
package cpu
