package io

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Port errors
	ErrChannelFull    = errors.New(f("channel full"))
	ErrInputExhausted = errors.New(f("no more inputs"))
	ErrInputSyntax    = errors.New(f("input is not a number"))
	ErrPipeClosed     = errors.New(f("pipe closed"))
	ErrTimeout        = errors.New(f("pipe timeout"))
)
