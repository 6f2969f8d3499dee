package emulator

import (
	"errors"

	"github.com/ezrec/manobc/translate"
)

var f = translate.From

var (
	// Image errors
	ErrImageEmpty  = errors.New(f("image empty"))
	ErrImageSyntax = errors.New(f("image syntax"))
)

// ErrImage locates a malformed line in a machine image file.
type ErrImage struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrImage) Error() string {
	return f("image line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrImage) Unwrap() error {
	return err.Err
}
