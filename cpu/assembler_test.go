// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const addProgram = `
      ORG 100
      LDA AL      # first addend
      ADD BL      / second addend
      STA CL
      HLT
AL,   DEC 12
BL,   DEC 40
CL,   HEX 0
      END
`

func TestAssembleProgram(t *testing.T) {
	assert := assert.New(t)

	asm := Assembler{}
	prog, err := asm.Parse(strings.NewReader(addProgram))
	assert.NoError(err)

	assert.Equal(Word(0x100), prog.Origin)
	assert.Equal(Word(0x104), asm.Label["AL"])
	assert.Equal(Word(0x105), asm.Label["BL"])
	assert.Equal(Word(0x106), asm.Label["CL"])

	code := []Word{}
	for _, cell := range prog.Code {
		code = append(code, cell.Word)
	}
	assert.Equal([]Word{0x2104, 0x1105, 0x3106, 0x7001}, code)

	data := []Word{}
	addrs := []Word{}
	for _, cell := range prog.Data {
		data = append(data, cell.Word)
		addrs = append(addrs, cell.Addr)
	}
	assert.Equal([]Word{0x000C, 0x0028, 0x0000}, data)
	assert.Equal([]Word{0x104, 0x105, 0x106}, addrs)

	cell, ok := prog.At(0x102)
	assert.True(ok)
	assert.Equal("STA CL", cell.Source)
	assert.Equal(5, cell.LineNo)
}

func TestAssembleIndirect(t *testing.T) {
	assert := assert.New(t)

	source := `
      ORG 10
      LDA PTR I
      HLT
PTR,  HEX 200
      END
`
	asm := Assembler{}
	prog, err := asm.Parse(strings.NewReader(source))
	assert.NoError(err)
	assert.Equal(Word(0xA012), prog.Code[0].Word)
}

func TestAssembleEquates(t *testing.T) {
	assert := assert.New(t)

	source := `
      .equ COUNT 21
      ORG 0
      LDA COUNT
      HLT
      END
`
	asm := Assembler{}
	prog, err := asm.Parse(strings.NewReader(source))
	assert.NoError(err)
	assert.Equal(Word(0x2021), prog.Code[0].Word)
}

func TestAssembleExpressions(t *testing.T) {
	assert := assert.New(t)

	source := `
      .equ BASE 20
      ORG $(BASE + BASE)
DAT,  HEX 1
      HEX 2
      LDA $(DAT + 1)
      HLT
      END
`
	asm := Assembler{}
	prog, err := asm.Parse(strings.NewReader(source))
	assert.NoError(err)

	assert.Equal(Word(0x040), asm.Label["DAT"])
	// The instruction segment starts after the two data cells.
	assert.Equal(Word(0x042), prog.Origin)
	assert.Equal(Word(0x2041), prog.Code[0].Word)
}

func TestAssembleDec(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		literal string
		word    Word
	}){
		{"40", 0x0028},
		{"-1", 0xFFFF},
		{"-32768", 0x8000},
		{"0", 0x0000},
	}

	for _, entry := range table {
		source := "ORG 0\nDEC " + entry.literal + "\nEND\n"
		asm := Assembler{}
		prog, err := asm.Parse(strings.NewReader(source))
		assert.NoError(err, entry.literal)
		assert.Equal(entry.word, prog.Data[0].Word, entry.literal)
	}
}

func TestAssemblePredefine(t *testing.T) {
	assert := assert.New(t)

	asm := Assembler{}
	asm.Predefine("LIMIT", "10")

	prog, err := asm.Parse(strings.NewReader("ORG 0\nLDA LIMIT\nHLT\nEND\n"))
	assert.NoError(err)
	assert.Equal(Word(0x2010), prog.Code[0].Word)
}

func TestAssembleErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		source string
		want   error
		lineno int
	}){
		{"label_duplicate", "A, HLT\nA, HLT\nEND\n", ErrLabelDuplicate, 2},
		{"equate_duplicate", ".equ A 1\n.equ A 2\nEND\n", ErrEquateDuplicate, 2},
		{"equate_syntax", ".equ A\nEND\n", ErrEquateSyntax, 1},
		{"origin_syntax", "ORG\nEND\n", ErrOriginSyntax, 1},
		{"opcode_invalid", "FROB 10\nEND\n", ErrOpcodeInvalid, 1},
		{"operand_missing", "LDA\nEND\n", ErrOperandMissing, 1},
		{"operand_extra", "LDA 10 20\nEND\n", ErrOperandExtra, 1},
		{"rri_operand", "CLA 10\nEND\n", ErrOperandExtra, 1},
		{"label_missing", "LDA WXYZ\nEND\n", ErrLabelMissing("WXYZ"), 1},
		{"bad_number", "HEX WXYZ\nEND\n", ErrParseNumber("WXYZ"), 1},
		{"bad_dec", "DEC 99999\nEND\n", ErrParseNumber("99999"), 1},
	}

	for _, entry := range table {
		asm := Assembler{}
		_, err := asm.Parse(strings.NewReader(entry.source))
		assert.ErrorIs(err, entry.want, entry.name)

		var serr ErrSyntax
		if assert.True(errors.As(err, &serr), entry.name) {
			assert.Equal(entry.lineno, serr.LineNo, entry.name)
		}
	}
}

func TestAssembleComments(t *testing.T) {
	assert := assert.New(t)

	source := "# leading comment\n/ another\nORG 0\nHLT # trailing\nEND\n"
	asm := Assembler{}
	prog, err := asm.Parse(strings.NewReader(source))
	assert.NoError(err)
	assert.Len(prog.Code, 1)
	assert.Equal(Word(0x7001), prog.Code[0].Word)
}
