package cpu

import (
	"fmt"

	"github.com/pkg/errors"
)

// Known error conditions.
var (
	ErrRomTooLarge      = errors.New("rom too large")
	ErrStackOverflow    = errors.New("stack overflow")
	ErrStackUnderflow   = errors.New("stack underflow")
	ErrMemoryOutOfRange = errors.New("memory address out of range")
)

// Error defines a runtime error.
// It unwraps to one of the known error conditions.
type Error struct {
	Instruction
	Err error
}

// NewError creates a new, formatted error for the given instruction.
func NewError(instr *Instruction, err error, f string, argv ...interface{}) *Error {
	return &Error{
		Instruction: *instr,
		Err:         errors.Wrapf(err, f, argv...),
	}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%04x: %v", e.Address, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
