// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator drives a cpu.Cpu with a loaded program, adding
// tracing, tick limits and cancellation around the core interpreter.
package emulator

import (
	"context"

	"go.uber.org/zap"

	"github.com/ezrec/vcpu/cpu"
)

// Emulator state. CPU + program image.
type Emulator struct {
	Verbose  bool         // If set, traces every executed instruction.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently loaded program.
	Limit    int          // Maximum ticks per Run, or 0 for no limit.

	logger *zap.Logger
}

// Option configures an emulator.
type Option func(*Emulator)

// WithLogger sets the logger used for instruction traces.
func WithLogger(logger *zap.Logger) Option {
	return func(emu *Emulator) {
		emu.logger = logger
	}
}

// WithLimit sets the maximum number of ticks a Run may take.
func WithLimit(limit int) Option {
	return func(emu *Emulator) {
		emu.Limit = limit
	}
}

// NewEmulator creates a new emulator.
func NewEmulator(opts ...Option) (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
		logger:  zap.L(),
	}

	for _, opt := range opts {
		opt(emu)
	}

	emu.logger = emu.logger.Named("emulator")

	return
}

// Reset the CPU, load the program, and set the entry point.
func (emu *Emulator) Reset(entry uint16) (err error) {
	emu.Cpu.Reset()

	err = emu.Program.Load(emu.Cpu)
	if err != nil {
		return
	}

	emu.Cpu.Pc = entry

	if emu.Verbose {
		emu.logger.Debug("reset",
			zap.Int("segments", len(emu.Program.Segments)),
			zap.Uint16("entry", entry),
		)
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Ticks
}

// Code returns the program's instruction at the program counter.
func (emu *Emulator) Code() (code cpu.Code, ok bool) {
	dbg := emu.Program.Debug(emu.Cpu.Pc)
	if dbg.Segment == nil {
		return
	}

	return dbg.Codes[dbg.Index], true
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	pc := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, Err: err}
		}
	}()

	if emu.Verbose {
		code, ferr := emu.Cpu.Fetch()
		if ferr == nil {
			emu.logger.Debug("tick",
				zap.Uint16("pc", pc),
				zap.Stringer("code", code),
				zap.Int("sp", emu.Cpu.Stack.Sp),
			)
		}
	}

	done, err = emu.Cpu.Tick()
	if err != nil {
		return
	}

	if done && emu.Verbose {
		emu.logger.Debug("halt",
			zap.Uint16("pc", pc),
			zap.Int("ticks", emu.Cpu.Ticks),
		)
	}

	return
}

// Run ticks the emulator until halted, cancelled, or the tick limit.
func (emu *Emulator) Run(ctx context.Context) (err error) {
	start := emu.Cpu.Ticks

	for {
		err = ctx.Err()
		if err != nil {
			return
		}

		if emu.Limit > 0 && emu.Cpu.Ticks-start >= emu.Limit {
			err = &ErrRuntime{Pc: emu.Cpu.Pc, Err: ErrTickLimit}
			return
		}

		var done bool
		done, err = emu.Tick()
		if err != nil || done {
			return
		}
	}
}
