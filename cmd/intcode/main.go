// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"gitlab.com/efronlicht/enve"

	"github.com/ezrec/intcode/cpu"
	"github.com/ezrec/intcode/emulator"
	"github.com/ezrec/intcode/io"
)

func main() {
	var program string
	var compile string
	var save bool
	var inputs string
	var dump bool
	var timeout = enve.DurationOr("INTCODE_TIMEOUT", 0)
	var prompt = enve.StringOr("INTCODE_PROMPT", "")
	var verbose = enve.BoolOr("INTCODE_VERBOSE", false)

	flag.StringVar(&program, "p", "", "Intcode program text file to run")
	flag.StringVar(&compile, "c", "", "Intcode assembly file to compile")
	flag.BoolVar(&save, "s", false, "Print the program memory image, do not execute")
	flag.StringVar(&inputs, "i", "", "Comma separated inputs, served before console input")
	flag.BoolVar(&dump, "x", false, "Print the final memory image after execution")
	flag.DurationVar(&timeout, "t", timeout, "Execution deadline (0 for none)")
	flag.BoolVar(&verbose, "v", verbose, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(program) != 0 && len(compile) != 0 {
		log.Fatalf("%v: -p and -c are exclusive", os.Args[0])
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	switch {
	case len(program) != 0:
		mem, err := cpu.LoadFile(program)
		if err != nil {
			log.Fatalf("%v: %v", program, err)
		}
		emu.LoadImage(mem)
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		emu.Load(prog)
	default:
		log.Fatalf("%v: one of -p or -c is required", os.Args[0])
	}

	if save {
		fmt.Println(emu.Image)
		return
	}

	var prefix cpu.Memory
	if len(inputs) != 0 {
		var err error
		prefix, err = cpu.ParseProgram(inputs)
		if err != nil {
			log.Fatalf("-i: %v", err)
		}
	}

	console := &io.Console{Input: os.Stdin, Output: os.Stdout, Prompt: prompt}
	emu.Reset(io.NewExtendedInput(console, prefix...), console)

	ctx := context.Background()
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	err := emu.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}

	if dump {
		fmt.Println(emu.Memory)
	}
}
