package cpu

import (
	"fmt"
	"iter"
	"strings"

	"github.com/ezrec/manobc/internal"
)

// Registers is the architectural register file and flag set. All stores
// funnel through the Set methods, which mask to the register's hardware
// width; overflow silently wraps.
type Registers struct {
	AC   Word // Accumulator.
	DR   Word // Data register.
	IR   Word // Instruction register.
	TR   Word // Temporary register.
	AR   Word // Address register, 12-bit.
	PC   Word // Program counter, 12-bit.
	OUTR Word // Output register, 8-bit.
	INPR Word // Input register, 8-bit.
	SC   Word // Sequence counter, names timing state T0..T15.

	E   Bit // Extended carry bit.
	S   Bit // Run/stop; 0 halts all state advancement.
	IEN Bit // Interrupt enable.
	R   Bit // Interrupt cycle in progress.
	FGI Bit // Input ready.
	FGO Bit // Output ready.
	I   Bit // Indirect bit, latched from IR(15) at decode.
}

// Reset returns every register and flag to its power-on value, with PC
// loaded from the image origin.
func (r *Registers) Reset(origin Word) {
	*r = Registers{}
	r.SetPC(origin)
	r.S.Set()
}

func (r *Registers) SetAC(v Word)   { r.AC = v & WORD_MASK }
func (r *Registers) SetDR(v Word)   { r.DR = v & WORD_MASK }
func (r *Registers) SetIR(v Word)   { r.IR = v & WORD_MASK }
func (r *Registers) SetTR(v Word)   { r.TR = v & WORD_MASK }
func (r *Registers) SetAR(v Word)   { r.AR = v & ADDR_MASK }
func (r *Registers) SetPC(v Word)   { r.PC = v & ADDR_MASK }
func (r *Registers) SetOUTR(v Word) { r.OUTR = v & BYTE_MASK }
func (r *Registers) SetINPR(v Word) { r.INPR = v & BYTE_MASK }
func (r *Registers) SetSC(v Word)   { r.SC = v & SC_MASK }

// IncPC advances the program counter, wrapping at the 12-bit boundary.
func (r *Registers) IncPC() {
	r.SetPC(r.PC + 1)
}

// IncSC advances the sequence counter to the next timing state.
func (r *Registers) IncSC() {
	r.SetSC(r.SC + 1)
}

var registerNames = []string{"AC", "DR", "IR", "TR", "AR", "PC", "OUTR", "INPR", "SC"}
var flagNames = []string{"E", "S", "IEN", "R", "FGI", "FGO", "I"}

func (r *Registers) registerOf(name string) (val *Word, ok bool) {
	ok = true
	switch name {
	case "AC":
		val = &r.AC
	case "DR":
		val = &r.DR
	case "IR":
		val = &r.IR
	case "TR":
		val = &r.TR
	case "AR":
		val = &r.AR
	case "PC":
		val = &r.PC
	case "OUTR":
		val = &r.OUTR
	case "INPR":
		val = &r.INPR
	case "SC":
		val = &r.SC
	default:
		ok = false
	}
	return
}

func (r *Registers) flagOf(name string) (val *Bit, ok bool) {
	ok = true
	switch name {
	case "E":
		val = &r.E
	case "S":
		val = &r.S
	case "IEN":
		val = &r.IEN
	case "R":
		val = &r.R
	case "FGI":
		val = &r.FGI
	case "FGO":
		val = &r.FGO
	case "I":
		val = &r.I
	default:
		ok = false
	}
	return
}

// Get returns the named register or flag as a Word. Names are the
// architectural ones (AC, DR, IR, TR, AR, PC, OUTR, INPR, SC, E, S, IEN,
// R, FGI, FGO, I), case-insensitive.
func (r *Registers) Get(name string) (value Word, err error) {
	upper := strings.ToUpper(name)

	reg, ok := r.registerOf(upper)
	if ok {
		value = *reg
		return
	}

	flag, ok := r.flagOf(upper)
	if ok {
		value = flag.Word()
		return
	}

	err = ErrRegisterUnknown(name)
	return
}

// All iterates over every register and flag in architectural order.
func (r *Registers) All() iter.Seq2[string, Word] {
	regs := func(yield func(string, Word) bool) {
		for _, name := range registerNames {
			reg, _ := r.registerOf(name)
			if !yield(name, *reg) {
				return
			}
		}
	}
	flags := func(yield func(string, Word) bool) {
		for _, name := range flagNames {
			flag, _ := r.flagOf(name)
			if !yield(name, flag.Word()) {
				return
			}
		}
	}

	return internal.IterSeq2Concat(regs, flags)
}

// String returns the current register file state, one entry per line.
func (r *Registers) String() (text string) {
	for name, value := range r.All() {
		switch name {
		case "AR", "PC":
			text += fmt.Sprintf("% 5s: 0x%03X\n", name, value)
		case "OUTR", "INPR":
			text += fmt.Sprintf("% 5s: 0x%02X\n", name, value)
		case "SC", "E", "S", "IEN", "R", "FGI", "FGO", "I":
			text += fmt.Sprintf("% 5s: %d\n", name, value)
		default:
			text += fmt.Sprintf("% 5s: 0x%04X\n", name, value)
		}
	}

	return
}
