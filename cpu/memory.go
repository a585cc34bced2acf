package cpu

const (
	MEMORY_SIZE  = 4096   // Size of main memory, in bytes.
	ADDRESS_MASK = 0x0fff // Mask of a 12-bit instruction address.
	CODE_SIZE    = 2      // Size of an instruction word, in bytes.
)
