package cpu

import (
	"fmt"
)

// CodeOp is the decoded operation of an instruction word.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp
const (
	OP_UNKNOWN = CodeOp(0) // .word
	OP_HALT    = CodeOp(1) // halt
	OP_RETURN  = CodeOp(2) // ret
	OP_CALL    = CodeOp(3) // call
	OP_ADD     = CodeOp(4) // add
)

// Opcode classes, selected by the top nibble of the instruction word.
const (
	CLASS_SYS   = 0x0 // System: halt, ret.
	CLASS_CALL  = 0x2 // Call subroutine.
	CLASS_ARITH = 0x8 // Register to register arithmetic.
)

// Arithmetic sub-operations, selected by the low nibble.
const (
	ARITH_ADD = 0x4 // Add with carry out to the flags register.
)

// Code is a single 16-bit instruction word.
type Code uint16

// Instruction is a decoded instruction word.
type Instruction struct {
	Op      CodeOp // Decoded operation.
	X       int    // First register operand.
	Y       int    // Second register operand.
	Address uint16 // Control transfer target.
	Code    Code   // Original instruction word.
}

// MakeCodeHalt creates an end-of-program instruction.
func MakeCodeHalt() Code {
	return Code(0x0000)
}

// MakeCodeReturn creates a return-from-subroutine instruction.
func MakeCodeReturn() Code {
	return Code(0x00ee)
}

// MakeCodeCall creates a call-subroutine instruction.
func MakeCodeCall(address uint16) Code {
	return Code((CLASS_CALL << 12) | (address & ADDRESS_MASK))
}

// MakeCodeAdd creates an add instruction, rX = rX + rY.
func MakeCodeAdd(x, y int) Code {
	return Code((CLASS_ARITH << 12) | ((x & 0xf) << 8) | ((y & 0xf) << 4) | ARITH_ADD)
}

// C returns the class nibble, bits 15-12.
func (code Code) C() int {
	return int((code >> 12) & 0xf)
}

// X returns the first register nibble, bits 11-8.
func (code Code) X() int {
	return int((code >> 8) & 0xf)
}

// Y returns the second register nibble, bits 7-4.
func (code Code) Y() int {
	return int((code >> 4) & 0xf)
}

// D returns the sub-operation nibble, bits 3-0.
func (code Code) D() int {
	return int(code & 0xf)
}

// Nnn returns the 12-bit address, bits 11-0.
func (code Code) Nnn() uint16 {
	return uint16(code) & ADDRESS_MASK
}

// Decode the instruction word into its operation and operands.
// Matches are tested in a fixed order; the first match wins.
func (code Code) Decode() (inst Instruction) {
	inst = Instruction{Op: OP_UNKNOWN, Code: code}

	c, x, y, d := code.C(), code.X(), code.Y(), code.D()

	switch {
	case c == CLASS_SYS && x == 0 && y == 0 && d == 0:
		inst.Op = OP_HALT
	case c == CLASS_SYS && x == 0 && y == 0xe && d == 0xe:
		inst.Op = OP_RETURN
	case c == CLASS_CALL:
		inst.Op = OP_CALL
		inst.Address = code.Nnn()
	case c == CLASS_ARITH && d == ARITH_ADD:
		inst.Op = OP_ADD
		inst.X = x
		inst.Y = y
	}

	return
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	inst := code.Decode()

	switch inst.Op {
	case OP_HALT, OP_RETURN:
		out = inst.Op.String()
	case OP_CALL:
		out = fmt.Sprintf("%v 0x%03x", inst.Op, inst.Address)
	case OP_ADD:
		out = fmt.Sprintf("%v r%d r%d", inst.Op, inst.X, inst.Y)
	default:
		out = fmt.Sprintf("%v 0x%04x", inst.Op, uint16(code))
	}

	return
}
