package cpu

import (
	"iter"
	"slices"

	"github.com/ezrec/manobc/internal"
)

// Cell is a single assembled or loaded memory word. LineNo and Source are
// populated by the assembler for diagnostics; an image loader leaves them
// zero.
type Cell struct {
	Addr   Word
	Word   Word
	LineNo int
	Source string
}

// Program is assembler output: the instruction segment, the data segment,
// and the origin address execution starts from.
type Program struct {
	Origin Word
	Code   []Cell
	Data   []Cell
}

// Cells iterates over every assembled cell, instruction segment first.
func (prog *Program) Cells() iter.Seq[Cell] {
	return internal.IterSeqConcat(slices.Values(prog.Code), slices.Values(prog.Data))
}

// At returns the cell assembled at addr, for source-level diagnostics.
func (prog *Program) At(addr Word) (cell Cell, ok bool) {
	for c := range prog.Cells() {
		if c.Addr == addr {
			return c, true
		}
	}

	return
}
