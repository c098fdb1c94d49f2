package cpu

import (
	"errors"
	"fmt"
)

// ErrROMTooLarge is returned by LoadROM/LoadROMOffset when the supplied ROM
// does not fit in the 256-byte address space at the requested offset,
// instead of silently truncating or no-opping.
var ErrROMTooLarge = errors.New("vole/cpu: rom does not fit in memory at the requested offset")

// InvalidOpcodeError is returned by Cycle when the fetched instruction's
// high nibble does not name a defined opcode. Running is set to false
// before the error is returned.
type InvalidOpcodeError struct {
	Opcode uint16
}

func (e *InvalidOpcodeError) Error() string {
	return fmt.Sprintf("vole/cpu: invalid opcode: %s", e.Hex())
}

// Hex renders the offending instruction as "0xNNNN".
func (e *InvalidOpcodeError) Hex() string {
	return fmt.Sprintf("0x%04X", e.Opcode)
}
