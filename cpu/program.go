package cpu

import (
	"encoding/binary"
	"iter"

	"github.com/ezrec/vcpu/internal"
)

// Segment is a run of instruction words placed at a fixed address.
type Segment struct {
	Address uint16
	Codes   []Code
}

// Program is a memory image built from segments.
type Program struct {
	Segments []Segment
}

type Debug struct {
	*Segment
	Index int
}

// Debug locates the segment and code index holding the word at pc.
func (prog *Program) Debug(pc uint16) (dbg Debug) {
	for n, seg := range prog.Segments {
		if pc >= seg.Address && int(pc) < int(seg.Address)+len(seg.Codes)*CODE_SIZE {
			offset := int(pc - seg.Address)
			if offset%CODE_SIZE != 0 {
				continue
			}
			dbg = Debug{
				Segment: &prog.Segments[n],
				Index:   offset / CODE_SIZE,
			}
			break
		}
	}

	return
}

// Binary renders a segment as big-endian instruction words.
func (seg *Segment) Binary() (bin []byte) {
	for _, code := range seg.Codes {
		bin = binary.BigEndian.AppendUint16(bin, uint16(code))
	}

	return
}

// Load writes all segments into the CPU memory.
func (prog *Program) Load(cpu *Cpu) (err error) {
	for _, seg := range prog.Segments {
		err = cpu.Load(seg.Address, seg.Binary())
		if err != nil {
			return
		}
	}

	return
}

func (seg *Segment) codes() iter.Seq2[uint16, Code] {
	return func(yield func(pc uint16, code Code) bool) {
		for n, code := range seg.Codes {
			if !yield(seg.Address+uint16(n*CODE_SIZE), code) {
				return
			}
		}
	}
}

// Codes iterates over the address and word of every instruction.
func (prog *Program) Codes() iter.Seq2[uint16, Code] {
	seqs := make([]iter.Seq2[uint16, Code], 0, len(prog.Segments))
	for n := range prog.Segments {
		seqs = append(seqs, prog.Segments[n].codes())
	}

	return internal.IterSeq2Concat(seqs...)
}
