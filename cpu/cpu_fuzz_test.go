package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func FuzzCpu(f *testing.F) {
	for _, opcode := range []uint16{0x0000, 0x00ee, 0x2100, 0x2fff, 0x8014, 0x8f04, 0x1234, 0xffff} {
		f.Add(opcode, uint8(0), uint8(0), uint16(0x100), false)
		f.Add(opcode, uint8(0xff), uint8(0x01), uint16(0xffe), true)
	}

	f.Fuzz(func(t *testing.T, opcode uint16, rx uint8, ry uint8, pc uint16, stacked bool) {
		assert := assert.New(t)

		cpu := NewCpu()
		pc %= MEMORY_SIZE
		cpu.Pc = pc
		if int(pc)+1 < MEMORY_SIZE {
			cpu.Memory[pc] = uint8(opcode >> 8)
			cpu.Memory[pc+1] = uint8(opcode)
		}

		code := Code(opcode)
		cpu.Register[code.X()] = rx
		cpu.Register[code.Y()] = ry
		if stacked {
			for !cpu.Stack.Full() {
				cpu.Stack.Push(0x0a0)
			}
		}

		before := *cpu

		halted, err := cpu.Tick()

		if int(pc)+1 >= MEMORY_SIZE {
			assert.ErrorIs(err, ErrPcRange)
			assert.Equal(before, *cpu)
			return
		}

		if err != nil {
			assert.False(halted)
			assert.Equal(before.Register, cpu.Register)
			var ee ErrExecute
			assert.True(errors.As(err, &ee))
			assert.Equal(pc, ee.Pc)
			assert.Equal(code, ee.Code)
			return
		}

		assert.True(cpu.Stack.Sp >= 0 && cpu.Stack.Sp <= STACK_LIMIT)

		inst := code.Decode()
		switch inst.Op {
		case OP_HALT:
			assert.True(halted)
			assert.Equal(before.Register, cpu.Register)
			assert.Equal(pc+2, cpu.Pc)
		case OP_RETURN:
			assert.Equal(uint16(0x0a0), cpu.Pc)
			assert.Equal(before.Stack.Sp-1, cpu.Stack.Sp)
			assert.Equal(before.Register, cpu.Register)
		case OP_CALL:
			assert.Equal(inst.Address, cpu.Pc)
			assert.Equal(before.Stack.Sp+1, cpu.Stack.Sp)
			assert.Equal(pc+2, cpu.Stack.Data[before.Stack.Sp])
			assert.Equal(before.Register, cpu.Register)
		case OP_ADD:
			a, b := uint(before.Register[inst.X]), uint(before.Register[inst.Y])
			flag := uint8(0)
			if a+b > 0xff {
				flag = 1
			}
			if inst.X != REG_FLAGS {
				assert.Equal(uint8(a+b), cpu.Register[inst.X])
			}
			assert.Equal(flag, cpu.Register[REG_FLAGS])
			assert.Equal(pc+2, cpu.Pc)
		default:
			t.Fatalf("unexpected success for %v", code)
		}
	})
}
