// Package cpu implements the instruction-cycle engine and assembler for
// Mano's Basic Computer.
//
// The machine is a 16-bit word, 4096-word architecture with a single
// accumulator (AC), an extended carry bit (E), and a sequence counter (SC)
// that names the current timing state T0..T15 inside an instruction.
// StepCycle advances the control unit exactly one timing state through the
// fetch/decode/execute/interrupt micro-operation tables.
//
// The assembler provides the standard Mano assembly language (ORG/END,
// HEX/DEC, labels, trailing I for indirection), extended with equates and
// compile-time expression evaluation.
package cpu
