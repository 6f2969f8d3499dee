// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator is the stepping façade over the Basic Computer control
// unit. It exposes cycle-granularity and instruction-granularity stepping
// plus run-to-halt, image loading, and the read-only state queries the
// CLI and GUI collaborators consume.
package emulator

import (
	"io"
	"iter"

	"github.com/ezrec/manobc/cpu"
)

// Emulator state: control unit plus its profiler subscription.
type Emulator struct {
	Verbose  bool // If set, enables verbose logging.
	*cpu.Cpu      // The control unit.

	Profiler *cpu.Profiler // Passive event counters.
}

// NewEmulator creates an emulator with empty memory, power-on registers,
// and an attached profiler.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:      cpu.NewCpu(),
		Profiler: &cpu.Profiler{},
	}

	emu.Cpu.Attach(emu.Profiler)

	return
}

// Reset returns the machine to its power-on state with PC at origin and
// clears the profiler. Memory is untouched.
func (emu *Emulator) Reset(origin cpu.Word) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset(origin)
	emu.Profiler.Reset()
}

// Load populates the memory bank from program and data cells, each at its
// own address, and resets registers, flags, and profiler with PC at
// origin.
func (emu *Emulator) Load(program, data []cpu.Cell, origin cpu.Word) (err error) {
	emu.Cpu.Mem.Reset()

	for _, cell := range program {
		err = emu.Cpu.Mem.Poke(cell.Addr, cell.Word)
		if err != nil {
			return
		}
	}
	for _, cell := range data {
		err = emu.Cpu.Mem.Poke(cell.Addr, cell.Word)
		if err != nil {
			return
		}
	}

	emu.Reset(origin)

	return
}

// LoadWords loads consecutive words starting at origin.
func (emu *Emulator) LoadWords(words []cpu.Word, origin cpu.Word) (err error) {
	cells := make([]cpu.Cell, len(words))
	for n, word := range words {
		cells[n] = cpu.Cell{Addr: origin + cpu.Word(n), Word: word}
	}

	return emu.Load(cells, nil, origin)
}

// LoadProgram loads assembler output.
func (emu *Emulator) LoadProgram(prog *cpu.Program) (err error) {
	return emu.Load(prog.Code, prog.Data, prog.Origin)
}

// LoadImage loads the two parallel machine-image files produced by the
// assembler. data may be nil when the program has no data segment. PC is
// set to the lowest program address.
func (emu *Emulator) LoadImage(program, data io.Reader) (err error) {
	cells, err := ReadImage(program)
	if err != nil {
		return
	}
	if len(cells) == 0 {
		return ErrImageEmpty
	}

	var dataCells []cpu.Cell
	if data != nil {
		dataCells, err = ReadImage(data)
		if err != nil {
			return
		}
	}

	origin := cells[0].Addr
	for _, cell := range cells {
		origin = min(origin, cell.Addr)
	}

	return emu.Load(cells, dataCells, origin)
}

// StepCycle advances the machine exactly one timing state.
func (emu *Emulator) StepCycle() (micro string, changed []string, err error) {
	emu.Cpu.Verbose = emu.Verbose

	return emu.Cpu.StepCycle()
}

// StepInstruction advances timing states until the sequence counter
// returns to 0 at an instruction boundary, folding in any interrupt-cycle
// states. done reports a halted machine.
func (emu *Emulator) StepInstruction() (done bool, err error) {
	emu.Cpu.Verbose = emu.Verbose

	if emu.Cpu.Halted() {
		done = true
		return
	}

	for {
		_, _, err = emu.Cpu.StepCycle()
		if err != nil {
			return
		}
		if emu.Cpu.Halted() {
			done = true
			return
		}
		if emu.Cpu.AtBoundary() {
			return
		}
	}
}

// Run repeats StepInstruction until HLT executes or limit instructions
// have completed; limit <= 0 is unbounded. Returns the number of
// instructions executed.
func (emu *Emulator) Run(limit int) (count int, err error) {
	for !emu.Cpu.Halted() && (limit <= 0 || count < limit) {
		_, err = emu.StepInstruction()
		if err != nil {
			return
		}
		count++
	}

	return
}

// ReadRegister returns the named register or flag.
func (emu *Emulator) ReadRegister(name string) (value cpu.Word, err error) {
	return emu.Cpu.Reg.Get(name)
}

// Registers iterates over every architectural register and flag.
func (emu *Emulator) Registers() iter.Seq2[string, cpu.Word] {
	return emu.Cpu.Reg.All()
}

// ReadMemory returns count consecutive words starting at addr. The read
// is an observer query and is never profiled.
func (emu *Emulator) ReadMemory(addr cpu.Word, count int) (values []cpu.Word, err error) {
	return emu.Cpu.Mem.Slice(addr, count)
}

// Snapshot returns the current profiler counters.
func (emu *Emulator) Snapshot() cpu.Snapshot {
	return emu.Profiler.Snapshot()
}
