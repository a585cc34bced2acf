// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ezrec/vcpu/cpu"
	"github.com/ezrec/vcpu/emulator"
)

// demoProgram calls a subroutine adding r1 to r0 twice, two times over.
var demoProgram = cpu.Program{
	Segments: []cpu.Segment{
		{Address: 0x000, Codes: []cpu.Code{
			cpu.MakeCodeCall(0x100),
			cpu.MakeCodeCall(0x100),
			cpu.MakeCodeHalt(),
		}},
		{Address: 0x100, Codes: []cpu.Code{
			cpu.MakeCodeAdd(0, 1),
			cpu.MakeCodeAdd(0, 1),
			cpu.MakeCodeReturn(),
		}},
	},
}

// parseRegisters parses a list of "index=value" register presets.
func parseRegisters(text string) (regs map[int]uint8, err error) {
	regs = map[int]uint8{}

	if len(text) == 0 {
		return
	}

	for _, item := range strings.Split(text, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(item), "=")
		if !ok {
			err = fmt.Errorf("register preset %q: missing '='", item)
			return
		}

		var index uint64
		index, err = strconv.ParseUint(strings.TrimPrefix(key, "r"), 0, 8)
		if err != nil || index >= cpu.REGISTER_COUNT {
			err = fmt.Errorf("register preset %q: bad register", item)
			return
		}

		var val uint64
		val, err = strconv.ParseUint(value, 0, 8)
		if err != nil {
			err = fmt.Errorf("register preset %q: %w", item, err)
			return
		}

		regs[int(index)] = uint8(val)
	}

	return
}

// flush syncs buffered log output ahead of a fatal exit, which skips defers.
func flush(logger *zap.Logger, err error) error {
	if err != nil {
		_ = logger.Sync()
	}

	return err
}

func main() {
	var image string
	var address uint
	var entry uint
	var registers string
	var limit int
	var verbose bool

	flag.StringVar(&image, "i", "", "Raw big-endian memory image to load")
	flag.UintVar(&address, "a", 0, "Address to load the image at")
	flag.UintVar(&entry, "pc", 0, "Initial program counter")
	flag.StringVar(&registers, "r", "", "Register presets, ie '0=5,1=10'")
	flag.IntVar(&limit, "n", 0, "Maximum ticks to run (0 is unlimited)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if address >= cpu.MEMORY_SIZE || entry >= cpu.MEMORY_SIZE {
		log.Fatalf("%v: address out of range", os.Args[0])
	}

	logger := zap.NewNop()
	if verbose {
		var err error
		logger, err = zap.NewDevelopment()
		if err != nil {
			log.Fatalf("%v: %v", os.Args[0], err)
		}
		defer logger.Sync()
	}

	regs, err := parseRegisters(registers)
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	emu := emulator.NewEmulator(emulator.WithLogger(logger), emulator.WithLimit(limit))
	emu.Verbose = verbose

	if len(image) == 0 {
		emu.Program = &demoProgram
		if len(registers) == 0 {
			regs = map[int]uint8{0: 5, 1: 10}
		}
	}

	err = emu.Reset(uint16(entry))
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if len(image) != 0 {
		data, err := os.ReadFile(image)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		err = emu.Cpu.Load(uint16(address), data)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
	}

	for reg, val := range regs {
		emu.Cpu.Register[reg] = val
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = emu.Run(ctx)
	fmt.Print(emu.Cpu.String())
	err = flush(logger, err)
	if err != nil {
		log.Fatal(err)
	}
}
