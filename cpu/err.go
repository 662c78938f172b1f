package cpu

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Instruction decode errors
	ErrDecodeNegative = errors.New(f("negative instruction"))
	ErrDecodeOpcode   = errors.New(f("invalid opcode"))
	ErrDecodeMode     = errors.New(f("invalid parameter mode"))

	// Addressing errors
	ErrAddressNegative = errors.New(f("tried accessing negative address"))
	ErrAddressRange    = errors.New(f("tried accessing address out of memory range"))

	// Port errors
	ErrInput  = errors.New(f("input"))
	ErrOutput = errors.New(f("output"))

	// Assembler errors
	ErrEquateSyntax       = errors.New(f(".equ syntax"))
	ErrEquateDuplicate    = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate     = errors.New(f("label duplicated"))
	ErrMacroSyntax        = errors.New(f(".macro syntax"))
	ErrMacroNesting       = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate     = errors.New(f(".macro duplicated"))
	ErrMacroLonely        = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm    = errors.New(f(".endm without .macro"))
	ErrMacroRecursion     = errors.New(f(".macro expansion too deep"))
	ErrOpcodeExtraArgs    = errors.New(f("excessive arguments"))
	ErrOpcodeValueMissing = errors.New(f("value missing"))
	ErrTargetInvalid      = errors.New(f("target invalid"))
	ErrInstructionInvalid = errors.New(f("instruction invalid"))
)

// Diagnostic keys of ErrExecution.Info.
const (
	INFO_INSTRUCTION = "instruction"
	INFO_ADDRESS     = "instruction address"
	INFO_ATTEMPTED   = "attempted address"
)

// ErrExecution is a failure of a running program, with the diagnostic
// context of the instruction that raised it.
type ErrExecution struct {
	Err  error
	Info map[string]string
}

// AddInfo sets a diagnostic key.
func (err *ErrExecution) AddInfo(key string, value any) {
	if err.Info == nil {
		err.Info = make(map[string]string, 3)
	}
	err.Info[key] = fmt.Sprint(value)
}

func (err *ErrExecution) Error() string {
	var info []string
	for _, key := range slices.Sorted(maps.Keys(err.Info)) {
		info = append(info, key+": "+err.Info[key])
	}
	return f("%v [%v]", err.Err, strings.Join(info, ", "))
}

func (err *ErrExecution) Unwrap() error {
	return err.Err
}

// ErrParse is a program text token that is not an integer.
type ErrParse struct {
	Token string
	Err   error
}

func (err *ErrParse) Error() string {
	return f("%v : %v", err.Err, err.Token)
}

func (err *ErrParse) Unwrap() error {
	return err.Err
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrMacro is a failure within the expansion of a macro.
type ErrMacro struct {
	Macro  string
	LineNo int
	Err    error
}

func (err *ErrMacro) Error() string {
	return f("macro %v line %d %v", err.Macro, err.LineNo, err.Err)
}

func (err *ErrMacro) Unwrap() error {
	return err.Err
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}
