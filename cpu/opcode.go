package cpu

import (
	"fmt"
	"math/bits"
)

// Kind is the instruction class selected by IR bits 15-12.
type Kind int

//go:generate go tool stringer -linecomment -type=Kind
const (
	KIND_MEMORY   = Kind(0) // memory-reference
	KIND_REGISTER = Kind(1) // register-reference
	KIND_IO       = Kind(2) // input-output
)

// Op is a memory-reference operation, IR bits 14-12.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_AND = Op(0) // AND
	OP_ADD = Op(1) // ADD
	OP_LDA = Op(2) // LDA
	OP_STA = Op(3) // STA
	OP_BUN = Op(4) // BUN
	OP_BSA = Op(5) // BSA
	OP_ISZ = Op(6) // ISZ
)

// OP_NONMEM is the opcode 111 escape to the register-reference and I/O classes.
const OP_NONMEM = Op(7)

// RegOp is a register-reference one-hot selector, IR bits 11-0.
type RegOp Word

//go:generate go tool stringer -linecomment -type=RegOp
const (
	REG_CLA = RegOp(0x800) // CLA
	REG_CLE = RegOp(0x400) // CLE
	REG_CMA = RegOp(0x200) // CMA
	REG_CME = RegOp(0x100) // CME
	REG_CIR = RegOp(0x080) // CIR
	REG_CIL = RegOp(0x040) // CIL
	REG_INC = RegOp(0x020) // INC
	REG_SPA = RegOp(0x010) // SPA
	REG_SNA = RegOp(0x008) // SNA
	REG_SZA = RegOp(0x004) // SZA
	REG_SZE = RegOp(0x002) // SZE
	REG_HLT = RegOp(0x001) // HLT
)

// IoOp is an I/O one-hot selector, IR bits 11-6.
type IoOp Word

//go:generate go tool stringer -linecomment -type=IoOp
const (
	IO_INP = IoOp(0x800) // INP
	IO_OUT = IoOp(0x400) // OUT
	IO_SKI = IoOp(0x200) // SKI
	IO_SKO = IoOp(0x100) // SKO
	IO_ION = IoOp(0x080) // ION
	IO_IOF = IoOp(0x040) // IOF
)

// Inst is a decoded instruction word: a closed variant over the three
// instruction classes. Exactly the fields for the decoded Kind are
// meaningful.
type Inst struct {
	Word Word // The raw instruction word.
	Kind Kind

	Op       Op   // KIND_MEMORY: operation.
	Indirect bool // KIND_MEMORY: one level of indirection through memory.
	Addr     Word // KIND_MEMORY: operand address.

	Reg RegOp // KIND_REGISTER: one-hot selector.
	Io  IoOp  // KIND_IO: one-hot selector.
}

// Decode decodes a raw instruction word. The 3-bit opcode field fully
// covers the memory-reference class; for the register-reference and I/O
// classes the 12-bit selector must have exactly one valid bit set or
// ErrDecode is returned.
func Decode(word Word) (inst Inst, err error) {
	inst.Word = word

	indirect := (word & SIGN_BIT) != 0
	opcode := Op((word >> 12) & 0x7)
	operand := word & ADDR_MASK

	if opcode != OP_NONMEM {
		inst.Kind = KIND_MEMORY
		inst.Op = opcode
		inst.Indirect = indirect
		inst.Addr = operand
		return
	}

	if bits.OnesCount16(uint16(operand)) != 1 {
		err = ErrDecode(word)
		return
	}

	if indirect {
		inst.Kind = KIND_IO
		inst.Io = IoOp(operand)
		if inst.Io < IO_IOF {
			// Bits 5-0 select nothing in the I/O class.
			err = ErrDecode(word)
		}
	} else {
		inst.Kind = KIND_REGISTER
		inst.Reg = RegOp(operand)
	}

	return
}

// MakeMemory builds a memory-reference instruction word.
func MakeMemory(op Op, addr Word, indirect bool) (word Word) {
	word = (Word(op) << 12) | (addr & ADDR_MASK)
	if indirect {
		word |= SIGN_BIT
	}
	return
}

// MakeRegister builds a register-reference instruction word.
func MakeRegister(op RegOp) Word {
	return (Word(OP_NONMEM) << 12) | Word(op)
}

// MakeIo builds an I/O instruction word.
func MakeIo(op IoOp) Word {
	return SIGN_BIT | (Word(OP_NONMEM) << 12) | Word(op)
}

// String returns the assembly language representation of the instruction.
func (inst Inst) String() (out string) {
	switch inst.Kind {
	case KIND_MEMORY:
		out = fmt.Sprintf("%v %03X", inst.Op, inst.Addr)
		if inst.Indirect {
			out += " I"
		}
	case KIND_REGISTER:
		out = inst.Reg.String()
	case KIND_IO:
		out = inst.Io.String()
	}

	return
}
