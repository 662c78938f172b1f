// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/internal"
	"github.com/ezrec/intcode/io"
)

const (
	TRUE  = 1 // Result of a true comparison.
	FALSE = 0 // Result of a false comparison.
)

var _emulator_defines = map[string]string{
	"TRUE":  fmt.Sprintf("%v", TRUE),
	"FALSE": fmt.Sprintf("%v", FALSE),
}

// Emulator state. CPU + program listing + memory image.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program listing.

	Image cpu.Memory // Memory image copied into the CPU on each reset.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(nil, nil, nil),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Load an assembled program listing.
func (emu *Emulator) Load(prog *cpu.Program) {
	emu.Program = prog
	emu.Image = prog.Binary()
}

// LoadImage loads a raw memory image, without a listing.
func (emu *Emulator) LoadImage(mem cpu.Memory) {
	emu.Program = &cpu.Program{}
	emu.Image = mem.Clone()
}

// Reset the CPU to the start of a fresh copy of the loaded image.
func (emu *Emulator) Reset(input io.Input, output io.Output) {
	emu.Cpu = cpu.NewCpu(emu.Image.Clone(), input, output)
	emu.Cpu.Verbose = emu.Verbose

	if emu.Verbose {
		log.Printf("emulator: reset, %d words", len(emu.Image))
	}
}

// LineNo returns the current line number for the executing opcode.
// Returns 0 if there is no listing for the instruction pointer.
func (emu *Emulator) LineNo() int {
	dbg := emu.Program.Debug(emu.Cpu.Ip)
	if dbg.Opcode == nil {
		return 0
	}

	return dbg.LineNo
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	return emu.Cpu.Tick()
}

// Run ticks the emulator until the program stops, or ctx is done.
// The context is only checked between instructions.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
