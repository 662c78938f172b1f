// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// MACRO_DEPTH_MAX is the deepest allowed nesting of macro expansions.
const MACRO_DEPTH_MAX = 16

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the first line of macro text.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// mnemonicMap maps instruction mnemonics to operations.
var mnemonicMap = func() map[string]CodeOp {
	mnemonics := make(map[string]CodeOp, len(Ops))
	for _, op := range Ops {
		mnemonics[op.String()] = op
	}
	return mnemonics
}()

var (
	reLabel     = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reCharacter = regexp.MustCompile(`'\\?[^']'`)
	reParen     = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a single pass assembler for Intcode programs.
//
// Each line is `[label:]... mnemonic operand...`, with `;` comments.
// Operands prefixed with `#` are immediate; all others are positions.
// Values may be numbers, 'c' characters, equates, labels, or $(...)
// expressions evaluated at assembly time.
//
// Macros are defined between `.macro NAME arg...` and `.endm`, and are
// invoked as `NAME value...`. Within a macro, arguments are equates, and
// `@` expands to a prefix unique to each expansion, for local labels.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to memory addresses.
	Equate    map[string]string // Map of equates.
	Macro     map[string]*Macro // Map of macros.

	depth      int // Current macro expansion depth.
	expansions int // Count of macro expansions.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word, or the label it refers to.
func (asm *Assembler) valueOf(word string) (value int32, label string, err error) {
	equate, ok := asm.Equate[word]
	if ok {
		word = equate
	}

	v64, err := strconv.ParseInt(word, 0, 32)
	if err == nil {
		value = int32(v64)
		return
	}
	err = nil

	if reLabel.MatchString(word) {
		label = word
		return
	}

	err = ErrParseNumber(word)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		v64, err := strconv.ParseInt(str, 0, 32)
		if err != nil {
			// Ignore non-integer equates.
			continue
		}
		pred[key] = starlark.MakeInt64(v64)
	}
	for key, ip := range asm.Label {
		pred[key] = starlark.MakeInt(ip)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok || st_int64 != int64(int32(st_int64)) {
		err = ErrParseExpression(expr)
		return
	}
	value = int32(st_int64)
	return
}

// parseLine expands a single line into words, handling equates and labels.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			str = str[1:]
			switch str {
			case "\\":
				str = "\\"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "t":
				str = "\t"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%v", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = words[:0]
		return
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		if !reLabel.MatchString(label) {
			err = ErrTargetInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.currentIp()
		words = words[1:]
	}

	if len(words) == 0 {
		return
	}

	// Macro invocation
	macro, ok := asm.Macro[words[0]]
	if ok {
		err = asm.expandMacro(words[0], macro, words[1:])
		words = nil
		return
	}

	return
}

// expandMacro assembles the text of a macro, with its arguments bound.
func (asm *Assembler) expandMacro(name string, macro *Macro, args []string) (err error) {
	if len(args) != len(macro.Args) {
		err = ErrMacroSyntax
		return
	}

	if asm.depth >= MACRO_DEPTH_MAX {
		err = ErrMacroRecursion
		return
	}

	asm.depth++
	asm.expansions++
	local := fmt.Sprintf("%v_%v_", name, asm.expansions)

	// Turn args into equates.
	old_equate := maps.Clone(asm.Equate)
	for n, arg := range macro.Args {
		value := args[n]
		equate, ok := old_equate[value]
		if ok {
			value = equate
		}
		asm.Equate[arg] = value
	}
	defer func() {
		asm.Equate = old_equate
		asm.depth--
	}()

	for n, line := range macro.Lines {
		lineno := macro.LineNo + n

		line = strings.ReplaceAll(line, "@", local)

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err == nil {
			err = asm.parseWords(words, lineno)
		}
		if err != nil {
			err = &ErrMacro{Macro: name, LineNo: lineno, Err: err}
			return
		}
	}

	return
}

// currentIp gets the current Ip
func (asm *Assembler) currentIp() int {
	if len(asm.Opcode) == 0 {
		return 0
	}

	last := asm.Opcode[len(asm.Opcode)-1]

	return last.Ip + len(last.Codes)
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	var macro *Macro

	asm.Label = make(map[string]int, 16)
	asm.Macro = make(map[string]*Macro)
	asm.depth = 0
	asm.expansions = 0
	asm.Opcode = asm.Opcode[:0]
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.SplitN(text, ";", 2)
		line = strings.TrimSpace(text_comment[0])

		fields := strings.Fields(line)

		// .macro NAME arg...
		if len(fields) > 0 && fields[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(fields) < 2 || !reLabel.MatchString(fields[1]) {
				err = ErrMacroSyntax
				return
			}
			name := fields[1]
			if _, ok := mnemonicMap[name]; ok {
				err = ErrMacroSyntax
				return
			}
			if _, ok := asm.Macro[name]; ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
				Args:   fields[2:],
			}
			asm.Macro[name] = macro
			continue
		}

		if len(fields) > 0 && fields[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	// Final linking of labels.
	for n := range asm.Opcode {
		op := &asm.Opcode[n]

		for index, label := range op.Links {
			ip, ok := asm.Label[label]
			if !ok {
				lineno = op.LineNo
				line = strings.Join(op.Words, " ")
				err = ErrLabelMissing(label)
				return
			}
			op.Codes[index] = int32(ip)
		}
	}

	prog = &Program{
		Opcodes: slices.Clone(asm.Opcode),
	}

	return
}

// parseOperand evaluates an operand word into its mode and value.
func (asm *Assembler) parseOperand(word string) (mode CodeMode, value int32, label string, err error) {
	mode = MODE_POSITION
	if strings.HasPrefix(word, "#") {
		mode = MODE_IMMEDIATE
		word = word[1:]
		if len(word) == 0 {
			err = ErrOpcodeValueMissing
			return
		}
	}

	value, label, err = asm.valueOf(word)
	return
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	var codes []int32
	links := map[int]string{}

	// no-op
	if len(words) == 0 {
		return
	}

	initial_words := words

	defer func() {
		if len(codes) == 0 || err != nil {
			return
		}
		if len(links) == 0 {
			links = nil
		}
		opcode := Opcode{LineNo: lineno, Ip: asm.currentIp(), Words: initial_words, Codes: codes, Links: links}
		asm.Opcode = append(asm.Opcode, opcode)
	}()

	if words[0] == ".data" {
		if len(words) < 2 {
			err = ErrOpcodeValueMissing
			return
		}
		for _, word := range words[1:] {
			var value int32
			var label string
			value, label, err = asm.valueOf(word)
			if err != nil {
				return
			}
			if len(label) != 0 {
				links[len(codes)] = label
			}
			codes = append(codes, value)
		}
		return
	}

	op, ok := mnemonicMap[words[0]]
	if !ok {
		err = ErrInstructionInvalid
		return
	}

	reads, writes := op.Params()
	args := words[1:]
	if len(args) < reads+writes {
		err = ErrOpcodeValueMissing
		return
	}
	if len(args) > reads+writes {
		err = ErrOpcodeExtraArgs
		return
	}

	modes := make([]CodeMode, len(args))
	values := make([]int32, len(args))
	for n, arg := range args {
		var label string
		modes[n], values[n], label, err = asm.parseOperand(arg)
		if err != nil {
			return
		}
		if n >= reads && modes[n] != MODE_POSITION {
			err = ErrTargetInvalid
			return
		}
		if len(label) != 0 {
			links[1+n] = label
		}
	}

	codes = append(codes, MakeCode(op, modes...).Word)
	codes = append(codes, values...)

	return
}
