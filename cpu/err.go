package cpu

import (
	"errors"

	"github.com/ezrec/vcpu/translate"
)

var f = translate.From

var (
	// Cpu errors
	ErrStackEmpty = errors.New(f("stack empty"))
	ErrStackFull  = errors.New(f("stack full"))
	ErrPcRange    = errors.New(f("pc out of range"))
	ErrLoadRange  = errors.New(f("load out of range"))
)

// ErrOpcode is returned for an instruction word with no handler.
type ErrOpcode Code

func (eo ErrOpcode) Error() string {
	return f("bad opcode 0x%04x", uint16(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrFetch is returned when an instruction word lies outside of memory.
type ErrFetch struct {
	Pc uint16
}

func (err ErrFetch) Error() string {
	return f("fetch at 0x%04x: %v", err.Pc, ErrPcRange)
}

func (err ErrFetch) Unwrap() error {
	return ErrPcRange
}

// ErrExecute indicates the instruction that caused an execution error.
type ErrExecute struct {
	Pc   uint16 // Address of the failing instruction.
	Code Code   // Failing instruction word.
	Err  error
}

func (err ErrExecute) Error() string {
	return f("0x%03x: %v: %v", err.Pc, err.Code.String(), err.Err)
}

func (err ErrExecute) Unwrap() error {
	return err.Err
}
