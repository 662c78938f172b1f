package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/io"
)

// CodeState is the execution state of the CPU.
type CodeState int

const (
	STATE_RUNNING = CodeState(0) // Executing instructions.
	STATE_HALTED  = CodeState(1) // Stopped by a halt instruction.
	STATE_ENDED   = CodeState(2) // Ran off the end of memory.
	STATE_FAILED  = CodeState(3) // Stopped by an error.
)

// String returns the name of the state.
func (state CodeState) String() string {
	switch state {
	case STATE_RUNNING:
		return "running"
	case STATE_HALTED:
		return "halted"
	case STATE_ENDED:
		return "ended"
	case STATE_FAILED:
		return "failed"
	}
	return fmt.Sprintf("CodeState(%d)", int(state))
}

var _op_defines = map[string]string{
	"OP_ADD":           fmt.Sprint(int32(OP_ADD)),
	"OP_MUL":           fmt.Sprint(int32(OP_MUL)),
	"OP_INPUT":         fmt.Sprint(int32(OP_INPUT)),
	"OP_OUTPUT":        fmt.Sprint(int32(OP_OUTPUT)),
	"OP_JUMP_IF_TRUE":  fmt.Sprint(int32(OP_JUMP_IF_TRUE)),
	"OP_JUMP_IF_FALSE": fmt.Sprint(int32(OP_JUMP_IF_FALSE)),
	"OP_LESS":          fmt.Sprint(int32(OP_LESS)),
	"OP_EQUAL":         fmt.Sprint(int32(OP_EQUAL)),
	"OP_HALT":          fmt.Sprint(int32(OP_HALT)),
}

var _mode_defines = map[string]string{
	"MODE_POSITION":  fmt.Sprint(int32(MODE_POSITION)),
	"MODE_IMMEDIATE": fmt.Sprint(int32(MODE_IMMEDIATE)),
}

// snapshot is the instruction being executed, kept for diagnostics.
type snapshot struct {
	Word int32
	Ip   int
}

// Cpu is the execution engine. It exclusively owns its memory and ports
// for the duration of a run.
//
// Arithmetic is on int32 and wraps on overflow.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory Memory    // Program and data.
	Input  io.Input  // Source for input instructions.
	Output io.Output // Sink for output instructions.

	Ip    int       // Current instruction pointer.
	State CodeState // Current execution state.
	Err   error     // Failure that stopped execution.

	Ticks int // Executed instruction counter.

	last snapshot
}

// NewCpu creates a new CPU running memory from address 0.
func NewCpu(memory Memory, input io.Input, output io.Output) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: memory,
		Input:  input,
		Output: output,
	}

	return
}

// Run executes memory until halt, the end of memory, or a failure.
// The memory is modified in place.
func Run(memory Memory, input io.Input, output io.Output) (err error) {
	return NewCpu(memory, input, output).Run()
}

// Defines returns the assembler equates for the instruction set.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_op_defines), maps.All(_mode_defines))
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	text += fmt.Sprintf("% 6s: %v\n", "state", cpu.State)
	text += fmt.Sprintf("% 6s: %d\n", "ip", cpu.Ip)
	text += fmt.Sprintf("% 6s: %d\n", "ticks", cpu.Ticks)
	text += fmt.Sprintf("% 6s: %d\n", "memory", len(cpu.Memory))
	if cpu.Memory.Valid(cpu.Ip) {
		word := cpu.Memory[cpu.Ip]
		code, err := Decode(word)
		if err != nil {
			text += fmt.Sprintf("% 6s: %d (%v)\n", "next", word, err)
		} else {
			text += fmt.Sprintf("% 6s: %v\n", "next", code)
		}
	}

	return
}

// Run ticks the CPU until it stops.
// Returns nil if the program halted or ran off the end of memory.
func (cpu *Cpu) Run() (err error) {
	for {
		var done bool
		done, err = cpu.Tick()
		if err != nil || done {
			return
		}
	}
}

// Tick executes a single instruction.
// Once the CPU has stopped, every Tick reports done, and the
// failure if it stopped on one.
func (cpu *Cpu) Tick() (done bool, err error) {
	switch cpu.State {
	case STATE_HALTED, STATE_ENDED:
		done = true
		return
	case STATE_FAILED:
		done = true
		err = cpu.Err
		return
	}

	if cpu.Ip >= len(cpu.Memory) {
		if cpu.Verbose {
			log.Printf("cpu: ip %d past end of memory", cpu.Ip)
		}
		cpu.State = STATE_ENDED
		done = true
		return
	}

	defer func() {
		if err != nil {
			if _, ok := err.(*ErrExecution); !ok {
				err = cpu.raise(err)
			}
			cpu.State = STATE_FAILED
			cpu.Err = err
			done = true
		}
	}()

	cpu.last = snapshot{Ip: cpu.Ip}
	cpu.last.Word, err = cpu.fetch(cpu.Ip)
	if err != nil {
		return
	}

	code, err := Decode(cpu.last.Word)
	if err != nil {
		return
	}

	if cpu.Verbose {
		log.Printf("%04d: %v", cpu.Ip, code)
	}

	cpu.Ip++
	cpu.Ticks++

	return cpu.Execute(code)
}

// Execute executes a single decoded instruction, whose parameters
// start at the instruction pointer.
func (cpu *Cpu) Execute(code Code) (done bool, err error) {
	switch code.Op {
	case OP_ADD:
		err = cpu.doAlu(code, func(a, b int32) int32 { return a + b })
	case OP_MUL:
		err = cpu.doAlu(code, func(a, b int32) int32 { return a * b })
	case OP_INPUT:
		var value int32
		value, err = cpu.receive()
		if err != nil {
			return
		}
		err = cpu.putValue(value)
	case OP_OUTPUT:
		var value int32
		value, err = cpu.getValue(code, 0)
		if err != nil {
			return
		}
		cpu.Ip++
		err = cpu.send(value)
	case OP_JUMP_IF_TRUE:
		err = cpu.doJump(code, func(a int32) bool { return a != 0 })
	case OP_JUMP_IF_FALSE:
		err = cpu.doJump(code, func(a int32) bool { return a == 0 })
	case OP_LESS:
		err = cpu.doCond(code, func(a, b int32) bool { return a < b })
	case OP_EQUAL:
		err = cpu.doCond(code, func(a, b int32) bool { return a == b })
	case OP_HALT:
		if cpu.Verbose {
			log.Printf("cpu: halt after %d ticks", cpu.Ticks)
		}
		cpu.State = STATE_HALTED
		done = true
	default:
		err = ErrDecodeOpcode
	}

	return
}

// raise wraps err with the context of the executing instruction.
func (cpu *Cpu) raise(err error) (exec *ErrExecution) {
	exec = &ErrExecution{Err: err}
	exec.AddInfo(INFO_INSTRUCTION, cpu.last.Word)
	exec.AddInfo(INFO_ADDRESS, cpu.last.Ip)
	return
}

// raiseAddress wraps an addressing err with the offending address.
func (cpu *Cpu) raiseAddress(err error, address int64) (exec *ErrExecution) {
	exec = cpu.raise(err)
	exec.AddInfo(INFO_ATTEMPTED, address)
	return
}

// fetch reads a raw word from memory.
func (cpu *Cpu) fetch(address int) (value int32, err error) {
	value, err = cpu.Memory.Get(address)
	if err != nil {
		err = cpu.raiseAddress(err, int64(address))
	}
	return
}

// addressOf validates a raw word as a memory address.
func (cpu *Cpu) addressOf(raw int32) (address int, err error) {
	if raw < 0 {
		err = cpu.raiseAddress(ErrAddressNegative, int64(raw))
		return
	}

	address = int(raw)
	if !cpu.Memory.Valid(address) {
		err = cpu.raiseAddress(ErrAddressRange, int64(raw))
		return
	}

	return
}

// getValue resolves the n'th read parameter, relative to the
// instruction pointer.
func (cpu *Cpu) getValue(code Code, n int) (value int32, err error) {
	raw, err := cpu.fetch(cpu.Ip + n)
	if err != nil {
		return
	}

	switch code.Mode(n) {
	case MODE_IMMEDIATE:
		value = raw
	default:
		var address int
		address, err = cpu.addressOf(raw)
		if err != nil {
			return
		}
		value = cpu.Memory[address]
	}

	return
}

// getValues resolves both read parameters of a two operand instruction,
// and advances past them.
func (cpu *Cpu) getValues(code Code) (a, b int32, err error) {
	a, err = cpu.getValue(code, 0)
	if err != nil {
		return
	}
	b, err = cpu.getValue(code, 1)
	if err != nil {
		return
	}

	cpu.Ip += 2
	return
}

// putValue stores value at the write address under the instruction
// pointer, and advances past it. The write address is never dereferenced,
// whatever its mode.
func (cpu *Cpu) putValue(value int32) (err error) {
	raw, err := cpu.fetch(cpu.Ip)
	if err != nil {
		return
	}

	address, err := cpu.addressOf(raw)
	if err != nil {
		return
	}

	cpu.Ip++
	cpu.Memory[address] = value

	return
}

// receive pulls a value from the input port.
func (cpu *Cpu) receive() (value int32, err error) {
	if cpu.Input == nil {
		err = errors.Join(ErrInput, io.ErrInputExhausted)
		return
	}

	value, err = cpu.Input.Receive()
	if err != nil {
		err = errors.Join(ErrInput, err)
	}

	return
}

// send pushes a value to the output port.
func (cpu *Cpu) send(value int32) (err error) {
	if cpu.Output == nil {
		err = errors.Join(ErrOutput, io.ErrChannelFull)
		return
	}

	err = cpu.Output.Send(value)
	if err != nil {
		err = errors.Join(ErrOutput, err)
	}

	return
}

// doAlu performs an arithmetic instruction.
func (cpu *Cpu) doAlu(code Code, alu func(a, b int32) int32) (err error) {
	a, b, err := cpu.getValues(code)
	if err != nil {
		return
	}

	return cpu.putValue(alu(a, b))
}

// doCond performs a comparison instruction, storing 1 if true, else 0.
func (cpu *Cpu) doCond(code Code, cond func(a, b int32) bool) (err error) {
	a, b, err := cpu.getValues(code)
	if err != nil {
		return
	}

	var value int32
	if cond(a, b) {
		value = 1
	}

	return cpu.putValue(value)
}

// doJump performs a conditional jump instruction.
func (cpu *Cpu) doJump(code Code, cond func(a int32) bool) (err error) {
	a, b, err := cpu.getValues(code)
	if err != nil {
		return
	}

	if !cond(a) {
		return
	}

	next_ip, err := cpu.addressOf(b)
	if err != nil {
		return
	}

	cpu.Ip = next_ip

	return
}
