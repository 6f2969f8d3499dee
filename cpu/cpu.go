package cpu

import (
	"fmt"
	"log"
	"slices"
)

// Cpu is the control unit: a synchronous state machine over the register
// file and memory bank. The sequence counter names the current timing
// state; StepCycle advances exactly one timing state through the
// fetch/decode/execute tables, or through the interrupt cycle when the R
// flag is set. A Cpu exclusively owns its Registers and Memory; observers
// read, never write.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Reg Registers // The architectural register file.
	Mem Memory    // The 4096-word memory bank.

	listener Listener
	inst     Inst     // Decoded at T2, valid through the execute states.
	changed  []string // Registers mutated in the current timing state.
}

// NewCpu creates a control unit with empty memory and power-on registers.
func NewCpu() (c *Cpu) {
	c = &Cpu{}
	c.Reg.Reset(0)

	return
}

// Attach subscribes a listener to cycle, instruction, and memory events.
func (c *Cpu) Attach(l Listener) {
	c.listener = l
	c.Mem.Listener = l
}

// Reset returns every register and flag to its power-on state, with PC
// loaded from the image origin. Memory is untouched; a loader populates
// it separately.
func (c *Cpu) Reset(origin Word) {
	if c.Verbose {
		log.Printf("cpu: reset, PC=0x%03X", origin&ADDR_MASK)
	}

	c.Reg.Reset(origin)
	c.inst = Inst{}
}

// Halted returns true once HLT has executed (S = 0).
func (c *Cpu) Halted() bool {
	return c.Reg.S == 0
}

// AtBoundary returns true between instructions: SC at 0 with no interrupt
// cycle pending.
func (c *Cpu) AtBoundary() bool {
	return c.Reg.SC == 0 && c.Reg.R == 0
}

// Inst returns the instruction in hand, decoded at the most recent T2.
func (c *Cpu) Inst() Inst {
	return c.inst
}

func (c *Cpu) touch(names ...string) {
	for _, name := range names {
		if !slices.Contains(c.changed, name) {
			c.changed = append(c.changed, name)
		}
	}
}

func (c *Cpu) setAC(v Word)   { c.Reg.SetAC(v); c.touch("AC") }
func (c *Cpu) setDR(v Word)   { c.Reg.SetDR(v); c.touch("DR") }
func (c *Cpu) setIR(v Word)   { c.Reg.SetIR(v); c.touch("IR") }
func (c *Cpu) setTR(v Word)   { c.Reg.SetTR(v); c.touch("TR") }
func (c *Cpu) setAR(v Word)   { c.Reg.SetAR(v); c.touch("AR") }
func (c *Cpu) setPC(v Word)   { c.Reg.SetPC(v); c.touch("PC") }
func (c *Cpu) setOUTR(v Word) { c.Reg.SetOUTR(v); c.touch("OUTR") }

func (c *Cpu) incPC() { c.Reg.IncPC(); c.touch("PC") }
func (c *Cpu) incSC() { c.Reg.IncSC(); c.touch("SC") }

func (c *Cpu) write(addr Word, value Word) (err error) {
	err = c.Mem.Write(addr, value)
	if err == nil {
		c.touch(fmt.Sprintf("M[%03X]", addr))
	}

	return
}

// StepCycle advances the machine exactly one timing state. It returns a
// register-transfer description of the micro-operation performed and the
// names of the registers it changed. A halted machine (S = 0) does not
// advance. Decode and memory errors halt the machine and surface to the
// caller; masking them would desynchronize the simulated program.
func (c *Cpu) StepCycle() (micro string, changed []string, err error) {
	if c.Halted() {
		micro = "machine halted"
		return
	}

	c.changed = nil

	defer func() {
		if err != nil {
			c.Reg.S.Clear()
			c.touch("S")
		}
		changed = c.changed
	}()

	if c.Reg.R != 0 {
		micro, err = c.interruptState()
	} else {
		micro, err = c.instructionState()
	}
	if err != nil {
		return
	}

	if c.Verbose {
		log.Printf("cpu: %v", micro)
	}

	if c.listener != nil {
		c.listener.CycleDone()
	}

	return
}

// instructionState performs one timing state of the fetch/decode/execute
// sequence. T0-T2 are common to every instruction; T3 and beyond come
// from the per-class micro-operation tables.
func (c *Cpu) instructionState() (micro string, err error) {
	switch c.Reg.SC {
	case 0:
		c.setAR(c.Reg.PC)
		c.incSC()
		micro = "T0: AR <- PC"

	case 1:
		var word Word
		word, err = c.Mem.Read(c.Reg.AR)
		if err != nil {
			return
		}
		c.setIR(word)
		c.incPC()
		c.incSC()
		micro = "T1: IR <- M[AR], PC <- PC + 1"

	case 2:
		c.inst, err = Decode(c.Reg.IR)
		if err != nil {
			return
		}
		c.setAR(c.Reg.IR & ADDR_MASK)
		if (c.Reg.IR & SIGN_BIT) != 0 {
			c.Reg.I.Set()
		} else {
			c.Reg.I.Clear()
		}
		c.touch("I")
		c.incSC()
		micro = "T2: AR <- IR(0-11), I <- IR(15)"

	default:
		switch c.inst.Kind {
		case KIND_MEMORY:
			micro, err = c.executeMemory()
		case KIND_REGISTER:
			micro = c.executeRegister()
		case KIND_IO:
			micro = c.executeIo()
		}
	}

	return
}

// executeMemory performs one execute state of a memory-reference
// instruction. An indirect instruction spends T3 resolving the effective
// address, shifting the execute states by one.
func (c *Cpu) executeMemory() (micro string, err error) {
	t := c.Reg.SC
	disp := t // the timing state named in the micro-operation text
	rt := func(rtl string) string {
		return fmt.Sprintf("T%d: %v", disp, rtl)
	}

	if c.inst.Indirect {
		if t == 3 {
			var word Word
			word, err = c.Mem.Read(c.Reg.AR)
			if err != nil {
				return
			}
			c.setAR(word)
			c.incSC()
			micro = "T3: AR <- M[AR] (indirect)"
			return
		}
		t-- // line the execute states up with the direct case
	}

	switch c.inst.Op {
	case OP_AND:
		switch t {
		case 3:
			err = c.fetchOperand()
			micro = rt("DR <- M[AR]")
		case 4:
			c.setAC(c.Reg.AC & c.Reg.DR)
			c.finishInstruction()
			micro = rt("AC <- AC & DR")
		}

	case OP_ADD:
		switch t {
		case 3:
			err = c.fetchOperand()
			micro = rt("DR <- M[AR]")
		case 4:
			sum := uint32(c.Reg.AC) + uint32(c.Reg.DR)
			c.setAC(Word(sum))
			if sum > WORD_MASK {
				c.Reg.E.Set()
			} else {
				c.Reg.E.Clear()
			}
			c.touch("E")
			c.finishInstruction()
			micro = rt("AC <- AC + DR, E <- carry")
		}

	case OP_LDA:
		switch t {
		case 3:
			err = c.fetchOperand()
			micro = rt("DR <- M[AR]")
		case 4:
			c.setAC(c.Reg.DR)
			c.finishInstruction()
			micro = rt("AC <- DR")
		}

	case OP_STA:
		err = c.write(c.Reg.AR, c.Reg.AC)
		if err != nil {
			return
		}
		c.finishInstruction()
		micro = rt("M[AR] <- AC")

	case OP_BUN:
		c.setPC(c.Reg.AR)
		c.finishInstruction()
		micro = rt("PC <- AR")

	case OP_BSA:
		err = c.write(c.Reg.AR, c.Reg.PC)
		if err != nil {
			return
		}
		c.setPC(c.Reg.AR + 1)
		c.finishInstruction()
		micro = rt("M[AR] <- PC, PC <- AR + 1")

	case OP_ISZ:
		switch t {
		case 3:
			err = c.fetchOperand()
			micro = rt("DR <- M[AR]")
		case 4:
			c.setDR(c.Reg.DR + 1)
			c.incSC()
			micro = rt("DR <- DR + 1")
		case 5:
			err = c.write(c.Reg.AR, c.Reg.DR)
			if err != nil {
				return
			}
			micro = rt("M[AR] <- DR")
			if c.Reg.DR == 0 {
				c.incPC()
				micro += "; DR = 0, PC <- PC + 1"
			}
			c.finishInstruction()
		}
	}

	return
}

// fetchOperand is the shared DR <- M[AR] execute state.
func (c *Cpu) fetchOperand() (err error) {
	word, err := c.Mem.Read(c.Reg.AR)
	if err != nil {
		return
	}
	c.setDR(word)
	c.incSC()

	return
}

// executeRegister performs the single T3 state of a register-reference
// instruction. Decode guarantees the selector is one-hot.
func (c *Cpu) executeRegister() (micro string) {
	switch c.inst.Reg {
	case REG_CLA:
		c.setAC(0)
	case REG_CLE:
		c.Reg.E.Clear()
		c.touch("E")
	case REG_CMA:
		c.setAC(^c.Reg.AC)
	case REG_CME:
		c.Reg.E.Complement()
		c.touch("E")
	case REG_CIR:
		// Circular right shift of the 17-bit E:AC pair.
		combined := (uint32(c.Reg.E) << 16) | uint32(c.Reg.AC)
		combined = ((combined >> 1) | (combined << 16)) & 0x1ffff
		c.setAC(Word(combined))
		c.setE(combined >> 16)
	case REG_CIL:
		// Circular left shift of the 17-bit E:AC pair.
		combined := (uint32(c.Reg.E) << 16) | uint32(c.Reg.AC)
		combined = ((combined << 1) | (combined >> 16)) & 0x1ffff
		c.setAC(Word(combined))
		c.setE(combined >> 16)
	case REG_INC:
		c.setAC(c.Reg.AC + 1)
	case REG_SPA:
		if (c.Reg.AC & SIGN_BIT) == 0 {
			c.incPC()
		}
	case REG_SNA:
		if (c.Reg.AC & SIGN_BIT) != 0 {
			c.incPC()
		}
	case REG_SZA:
		if c.Reg.AC == 0 {
			c.incPC()
		}
	case REG_SZE:
		if c.Reg.E == 0 {
			c.incPC()
		}
	case REG_HLT:
		c.Reg.S.Clear()
		c.touch("S")
	}

	micro = fmt.Sprintf("T3: %v", c.inst.Reg)
	c.finishInstruction()

	return
}

func (c *Cpu) setE(bit uint32) {
	if bit != 0 {
		c.Reg.E.Set()
	} else {
		c.Reg.E.Clear()
	}
	c.touch("E")
}

// executeIo performs the single T3 state of an I/O instruction. INPR and
// OUTR are plain memory-mapped registers; the consumer manipulates them
// and the FGI/FGO ready flags directly.
func (c *Cpu) executeIo() (micro string) {
	switch c.inst.Io {
	case IO_INP:
		c.setAC((c.Reg.AC &^ BYTE_MASK) | c.Reg.INPR)
		c.Reg.FGI.Clear()
		c.touch("FGI")
	case IO_OUT:
		c.setOUTR(c.Reg.AC & BYTE_MASK)
		c.Reg.FGO.Clear()
		c.touch("FGO")
	case IO_SKI:
		if c.Reg.FGI != 0 {
			c.incPC()
		}
	case IO_SKO:
		if c.Reg.FGO != 0 {
			c.incPC()
		}
	case IO_ION:
		c.Reg.IEN.Set()
		c.touch("IEN")
	case IO_IOF:
		c.Reg.IEN.Clear()
		c.touch("IEN")
	}

	micro = fmt.Sprintf("T3: %v", c.inst.Io)
	c.finishInstruction()

	return
}

// finishInstruction resets the sequence counter at the instruction
// boundary and latches the R flag when an enabled interrupt is pending.
// An instruction already mid-execution is never preempted.
func (c *Cpu) finishInstruction() {
	c.Reg.SetSC(0)
	c.touch("SC")

	if c.listener != nil {
		c.listener.InstructionDone()
	}

	if c.Reg.S != 0 && c.Reg.IEN != 0 && (c.Reg.FGI != 0 || c.Reg.FGO != 0) && c.Reg.R == 0 {
		c.Reg.R.Set()
		c.touch("R")
	}
}

// interruptState performs one timing state of the interrupt cycle, which
// preempts the next fetch: the return address is saved at address 0 and
// execution vectors to address 1 with interrupts disabled.
func (c *Cpu) interruptState() (micro string, err error) {
	switch c.Reg.SC {
	case 0:
		c.setAR(0)
		c.setTR(c.Reg.PC)
		c.incSC()
		micro = "RT0: AR <- 0, TR <- PC"

	case 1:
		err = c.write(c.Reg.AR, c.Reg.TR)
		if err != nil {
			return
		}
		c.setPC(0)
		c.incSC()
		micro = "RT1: M[AR] <- TR, PC <- 0"

	case 2:
		c.incPC()
		c.Reg.IEN.Clear()
		c.Reg.R.Clear()
		c.Reg.SetSC(0)
		c.touch("IEN", "R", "SC")
		micro = "RT2: PC <- PC + 1, IEN <- 0, R <- 0, SC <- 0"
	}

	return
}
