// Package io provides the I/O ports of the Intcode machine.
// The CPU pulls values from an Input and pushes values to an Output;
// this package supplies the console (Console), in-memory (FixedInput,
// ExtendedInput, Queue) and concurrent (PipeInput, PipeOutput) transports.
package io

// Input is the capability the CPU pulls values from.
type Input interface {
	// Receive returns the next value, or an error if none can be supplied.
	Receive() (value int32, err error)
}

// Output is the capability the CPU pushes values to.
type Output interface {
	// Send delivers a single value, or returns an error if it is rejected.
	Send(value int32) error
}
