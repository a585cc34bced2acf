package cpu

import (
	"fmt"
	"strings"
)

const (
	REGISTER_COUNT = 16 // Number of general-purpose registers.
	REG_FLAGS      = 15 // Register receiving the arithmetic carry flag.
)

// Cpu is the simulation context for the virtual CPU.
//
// A loader may write Memory, Register and Pc directly before calling Run.
type Cpu struct {
	Register [REGISTER_COUNT]uint8 // Register bank.
	Memory   [MEMORY_SIZE]byte     // Main memory.
	Pc       uint16                // Address of the next instruction word.
	Stack    Stack                 // Return address stack.

	Ticks int // Executed instruction counter.
}

// NewCpu creates a new CPU with all state zeroed.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Reset the CPU state.
// - Clears the registers, memory and stack.
// - Sets the program counter to zero.
// - Zeros statistics counters.
func (cpu *Cpu) Reset() {
	clear(cpu.Register[:])
	clear(cpu.Memory[:])
	cpu.Stack.Reset()
	cpu.Pc = 0
	cpu.Ticks = 0
}

// Load copies data into memory at addr.
func (cpu *Cpu) Load(addr uint16, data []byte) (err error) {
	if int(addr)+len(data) > len(cpu.Memory) {
		err = ErrLoadRange
		return
	}

	copy(cpu.Memory[addr:], data)

	return
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "% 5s: %03X\n", "pc", cpu.Pc)
	fmt.Fprintf(&sb, "% 5s: %d\n", "sp", cpu.Stack.Sp)
	for n, val := range cpu.Register {
		fmt.Fprintf(&sb, "% 5s: %02X\n", fmt.Sprintf("r%d", n), val)
	}

	strval := "---"
	val, ok := cpu.Stack.Peek()
	if ok {
		strval = fmt.Sprintf("%03X", val)
	}
	fmt.Fprintf(&sb, "% 5s: %v\n", "stack", strval)

	text = sb.String()
	return
}

// Fetch reads the instruction word at the program counter.
func (cpu *Cpu) Fetch() (code Code, err error) {
	pc := int(cpu.Pc)
	if pc+1 >= len(cpu.Memory) {
		err = ErrFetch{Pc: cpu.Pc}
		return
	}

	code = (Code(cpu.Memory[pc]) << 8) | Code(cpu.Memory[pc+1])
	return
}

// Tick executes a single CPU instruction cycle.
//
// The program counter is advanced past the fetched word before the
// instruction executes, so a call saves the address of the following word.
func (cpu *Cpu) Tick() (halted bool, err error) {
	code, err := cpu.Fetch()
	if err != nil {
		return
	}

	pc := cpu.Pc
	cpu.Pc += CODE_SIZE

	halted, err = cpu.Execute(code.Decode())
	if err != nil {
		err = ErrExecute{Pc: pc, Code: code, Err: err}
		return
	}

	cpu.Ticks += 1

	return
}

// Run executes instructions until a halt instruction, or an error.
func (cpu *Cpu) Run() (err error) {
	for {
		var halted bool
		halted, err = cpu.Tick()
		if err != nil || halted {
			return
		}
	}
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(inst Instruction) (halted bool, err error) {
	switch inst.Op {
	case OP_HALT:
		halted = true
	case OP_RETURN:
		err = cpu.doReturn()
	case OP_CALL:
		err = cpu.doCall(inst.Address)
	case OP_ADD:
		cpu.doAdd(inst.X, inst.Y)
	default:
		err = ErrOpcode(inst.Code)
	}

	return
}

// doCall saves the program counter and jumps to address.
func (cpu *Cpu) doCall(address uint16) (err error) {
	if int(address) >= len(cpu.Memory) {
		err = ErrFetch{Pc: address}
		return
	}

	if !cpu.Stack.Push(cpu.Pc) {
		err = ErrStackFull
		return
	}

	cpu.Pc = address
	return
}

// doReturn restores the program counter from the stack.
func (cpu *Cpu) doReturn() (err error) {
	address, ok := cpu.Stack.Peek()
	if !ok {
		err = ErrStackEmpty
		return
	}

	if int(address) >= len(cpu.Memory) {
		err = ErrFetch{Pc: address}
		return
	}

	cpu.Stack.Pop()
	cpu.Pc = address
	return
}

// doAdd performs rX = rX + rY, setting the flags register on carry out.
func (cpu *Cpu) doAdd(x, y int) {
	sum := uint(cpu.Register[x]) + uint(cpu.Register[y])

	cpu.Register[x] = uint8(sum)

	// Flag is written last, and wins when x is the flags register.
	if sum > 0xff {
		cpu.Register[REG_FLAGS] = 1
	} else {
		cpu.Register[REG_FLAGS] = 0
	}
}
