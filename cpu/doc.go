// Package cpu implements the virtual CPU core.
//
// The CPU consists of a 16-bit program counter (PC), sixteen 8-bit
// general-purpose registers (r0-r15, with r15 doubling as the flags register),
// 4KiB of byte-addressable memory, and a sixteen entry call stack.
//
// Instructions are 16-bit words stored big-endian in memory. Each word is
// split into four nibbles (c, x, y, d), with the low 12 bits (nnn) used as an
// address by the control-transfer instructions.
package cpu
