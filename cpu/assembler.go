// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Memory-reference opcodes, direct (I = 0) form. A trailing I operand
// sets bit 15 for one level of indirection.
var mriTable = map[string]Word{
	"AND": 0x0000,
	"ADD": 0x1000,
	"LDA": 0x2000,
	"STA": 0x3000,
	"BUN": 0x4000,
	"BSA": 0x5000,
	"ISZ": 0x6000,
}

// Register-reference and I/O opcodes, fully encoded.
var rriTable = map[string]Word{
	"CLA": 0x7800,
	"CLE": 0x7400,
	"CMA": 0x7200,
	"CME": 0x7100,
	"CIR": 0x7080,
	"CIL": 0x7040,
	"INC": 0x7020,
	"SPA": 0x7010,
	"SNA": 0x7008,
	"SZA": 0x7004,
	"SZE": 0x7002,
	"HLT": 0x7001,

	"INP": 0xF800,
	"OUT": 0xF400,
	"SKI": 0xF200,
	"SKO": 0xF100,
	"ION": 0xF080,
	"IOF": 0xF040,
}

// Assembler is a two pass assembler for the Basic Computer assembly
// language: pass one builds the symbol table, pass two generates words.
// Numeric literals are hexadecimal, matching Mano's convention.
type Assembler struct {
	Verbose bool // If set, verbosely logs the assembler actions.

	Label  map[string]Word   // Map of labels to addresses.
	Equate map[string]string // Map of equates.

	predefine map[string]string
}

// Predefine defines an equate before parsing begins.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf parses a hexadecimal literal, with or without an 0x prefix.
func (asm *Assembler) valueOf(word string) (value Word, err error) {
	trimmed := strings.TrimPrefix(strings.TrimPrefix(word, "0x"), "0X")
	v64, err := strconv.ParseUint(trimmed, 16, 16)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = Word(v64)
	return
}

// parenEval does compile-time $(...) evaluations. Equates and labels
// defined so far are available as variables.
func (asm *Assembler) parenEval(expr string) (value Word, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value16 Word
		value16, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-numeric equates.
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
	}
	for key, addr := range asm.Label {
		pred[key] = starlark.MakeInt(int(addr))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = Word(st_int64)
	return
}

var parenRe = regexp.MustCompile(`\$\([^\$]*\)`)

// parseLine splits a source line into its label (if any) and statement
// words, after comment stripping, $() evaluation, and equate expansion.
func (asm *Assembler) parseLine(line string) (label string, words []string, err error) {
	// Comments run to end of line.
	for _, sep := range []string{"#", "/"} {
		if n := strings.Index(line, sep); n >= 0 {
			line = line[:n]
		}
	}

	// Do $() evaluations.
	line = parenRe.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%X", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// A label definition ends with a comma: "LOP, LDA X".
	if strings.HasSuffix(words[0], ",") {
		label = strings.TrimSuffix(words[0], ",")
		words = words[1:]
	}

	// Expand equates.
	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	return
}

// statement handles the location-counter directives shared by both
// passes. done reports END; size is the number of words the line emits.
func (asm *Assembler) statement(words []string, lc *Word) (size int, done bool, err error) {
	switch strings.ToUpper(words[0]) {
	case "ORG":
		if len(words) != 2 {
			err = ErrOriginSyntax
			return
		}
		var origin Word
		origin, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		*lc = origin & ADDR_MASK

	case "END":
		done = true

	case ".EQU":
		// Handled in pass one only.

	default:
		size = 1
	}

	return
}

// passOne builds the symbol table and records equates.
func (asm *Assembler) passOne(lines []string) (err error) {
	lc := Word(0)

	for n, line := range lines {
		lineno := n + 1

		fail := func(err error) error {
			return ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}

		label, words, err := asm.parseLine(line)
		if err != nil {
			return fail(err)
		}

		if label != "" {
			_, ok := asm.Label[label]
			if ok {
				return fail(ErrLabelDuplicate)
			}
			asm.Label[label] = lc
			if asm.Verbose {
				log.Printf("asm: %v = 0x%03X", label, lc)
			}
		}

		if len(words) == 0 {
			continue
		}

		// .equ CONST VALUE
		if words[0] == ".equ" {
			if len(words) != 3 {
				return fail(ErrEquateSyntax)
			}
			_, ok := asm.Equate[words[1]]
			if ok {
				return fail(ErrEquateDuplicate)
			}
			asm.Equate[words[1]] = words[2]
			continue
		}

		size, done, err := asm.statement(words, &lc)
		if err != nil {
			return fail(err)
		}
		if done {
			break
		}
		lc += Word(size)
	}

	return
}

// operand resolves a memory-reference operand: a label or a hexadecimal
// address.
func (asm *Assembler) operand(word string) (addr Word, err error) {
	addr, ok := asm.Label[word]
	if ok {
		return
	}

	addr, err = asm.valueOf(word)
	if err != nil {
		err = ErrLabelMissing(word)
	}
	return
}

// encode generates the machine word for a single statement. isData
// reports a HEX/DEC cell, which belongs to the data segment.
func (asm *Assembler) encode(words []string) (word Word, isData bool, err error) {
	token := strings.ToUpper(words[0])

	op, ok := mriTable[token]
	if ok {
		if len(words) < 2 {
			err = ErrOperandMissing
			return
		}
		var addr Word
		addr, err = asm.operand(words[1])
		if err != nil {
			return
		}
		word = op | (addr & ADDR_MASK)
		switch {
		case len(words) == 2:
		case len(words) == 3 && strings.ToUpper(words[2]) == "I":
			word |= SIGN_BIT
		default:
			err = ErrOperandExtra
		}
		return
	}

	word, ok = rriTable[token]
	if ok {
		if len(words) != 1 {
			err = ErrOperandExtra
		}
		return
	}

	switch token {
	case "HEX":
		isData = true
		if len(words) != 2 {
			err = ErrOperandMissing
			return
		}
		word, err = asm.valueOf(words[1])

	case "DEC":
		isData = true
		if len(words) != 2 {
			err = ErrOperandMissing
			return
		}
		var v64 int64
		v64, err = strconv.ParseInt(words[1], 10, 17)
		if err != nil {
			err = ErrParseNumber(words[1])
			return
		}
		// Negative values store as two's complement.
		word = Word(v64) & WORD_MASK

	default:
		err = ErrOpcodeInvalid
	}

	return
}

// passTwo generates the program and data segments.
func (asm *Assembler) passTwo(lines []string) (prog *Program, err error) {
	prog = &Program{}
	lc := Word(0)
	origin := Word(0)
	originSet := false

	for n, line := range lines {
		lineno := n + 1

		fail := func(err error) (*Program, error) {
			return nil, ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}

		_, words, err := asm.parseLine(line)
		if err != nil {
			return fail(err)
		}
		if len(words) == 0 || words[0] == ".equ" {
			continue
		}

		size, done, err := asm.statement(words, &lc)
		if err != nil {
			return fail(err)
		}
		if done {
			break
		}
		if size == 0 {
			continue
		}

		word, isData, err := asm.encode(words)
		if err != nil {
			return fail(err)
		}

		cell := Cell{Addr: lc, Word: word, LineNo: lineno, Source: strings.TrimSpace(line)}
		if isData {
			prog.Data = append(prog.Data, cell)
		} else {
			if !originSet {
				origin = lc
				originSet = true
			}
			prog.Code = append(prog.Code, cell)
		}
		if asm.Verbose {
			log.Printf("asm: %03X  %04X  %v", cell.Addr, cell.Word, cell.Source)
		}

		lc++
	}

	prog.Origin = origin
	return prog, nil
}

// Parse assembles a source listing into a Program.
func (asm *Assembler) Parse(r io.Reader) (prog *Program, err error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	asm.Label = map[string]Word{}
	asm.Equate = maps.Clone(asm.predefine)
	if asm.Equate == nil {
		asm.Equate = map[string]string{}
	}

	err = asm.passOne(lines)
	if err != nil {
		return
	}

	return asm.passTwo(lines)
}
