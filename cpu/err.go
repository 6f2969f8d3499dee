package cpu

import (
	"errors"

	"github.com/ezrec/manobc/translate"
)

var f = translate.From

var (
	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrOriginSyntax    = errors.New(f("ORG syntax"))
	ErrOperandMissing  = errors.New(f("operand missing"))
	ErrOperandExtra    = errors.New(f("excessive operands"))
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
)

// ErrAddress indicates a memory access beyond the 4096-word address space.
type ErrAddress Word

func (ea ErrAddress) Error() string {
	return f("address 0x%04x out of range", Word(ea))
}

func (ea ErrAddress) Is(err error) (ok bool) {
	_, ok = err.(ErrAddress)
	return
}

// ErrDecode indicates a register-reference or I/O instruction whose
// one-hot selector has zero or multiple bits set. A corrupted image is
// the only way to produce one; it is treated as an illegal-instruction
// trap and halts the machine.
type ErrDecode Word

func (ed ErrDecode) Error() string {
	return f("cannot decode 0x%04x: selector is not one-hot", Word(ed))
}

func (ed ErrDecode) Is(err error) (ok bool) {
	_, ok = err.(ErrDecode)
	return
}

// ErrRegisterUnknown indicates an observer requested a register or flag
// name outside the architectural set.
type ErrRegisterUnknown string

func (er ErrRegisterUnknown) Error() string {
	return f("register %v unknown", string(er))
}

func (er ErrRegisterUnknown) Is(err error) (ok bool) {
	_, ok = err.(ErrRegisterUnknown)
	return
}

// ErrSyntax locates an assembler error in its source listing.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrLabelMissing indicates an operand referencing an undefined label.
type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

// ErrParseNumber indicates an operand that is neither a label nor a number.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

// ErrParseExpression indicates a $( ... ) expression that failed to evaluate.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
