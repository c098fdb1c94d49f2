// Package cpu implements Vole, a pedagogical 8-bit machine: 16 one-byte
// registers, 256 bytes of memory, and 16-bit instructions.
package cpu

import (
	"vole/mask"
	"vole/mem"
)

// StartMode selects whether Start resets machine state before running.
type StartMode int

const (
	// Reset zeroes PC, IR, and all registers before running. Memory is
	// left untouched.
	Reset StartMode = iota
	// KeepState runs without touching existing register/PC/IR state.
	KeepState
)

// CPU is not safe for concurrent use; callers own exclusive access to a
// given instance.
type CPU struct {
	Bus *mem.Bus

	registers [16]byte
	pc        byte
	ir        uint16
	running   bool
}

// New returns a fresh machine with all state zeroed and Running false.
func New() *CPU {
	return &CPU{Bus: &mem.Bus{}}
}

// LoadROM copies rom into memory starting at offset 0.
func (c *CPU) LoadROM(rom []byte) error {
	return c.LoadROMOffset(rom, 0)
}

// LoadROMOffset copies rom into memory starting at offset. It returns
// ErrROMTooLarge rather than truncating or silently doing nothing when rom
// does not fit.
func (c *CPU) LoadROMOffset(rom []byte, offset int) error {
	if offset < 0 || offset+len(rom) > len(c.Bus.RAM) {
		return ErrROMTooLarge
	}
	for i, b := range rom {
		c.Bus.Write(byte(offset+i), b)
	}
	return nil
}

// SetMemory writes v to addr.
func (c *CPU) SetMemory(addr, v byte) { c.Bus.Write(addr, v) }

// MemoryAt returns the byte stored at addr.
func (c *CPU) MemoryAt(addr byte) byte { return c.Bus.Read(addr) }

// Memory returns a copy of the full 256-byte address space.
func (c *CPU) Memory() [256]byte { return c.Bus.RAM }

// Registers returns a copy of all 16 registers.
func (c *CPU) Registers() [16]byte { return c.registers }

// SetRegister sets register i to v. i must be in 0..=15.
func (c *CPU) SetRegister(i int, v byte) { c.registers[i] = v }

// RegisterAt returns the value of register i.
func (c *CPU) RegisterAt(i int) byte { return c.registers[i] }

// ProgramCounter returns the current PC.
func (c *CPU) ProgramCounter() byte { return c.pc }

// SetProgramCounter sets the PC directly, bypassing Cycle's advance/jump
// logic. Used by drivers to seed a start address.
func (c *CPU) SetProgramCounter(v byte) { c.pc = v }

// InstructionRegister returns the most recently fetched 16-bit instruction.
func (c *CPU) InstructionRegister() uint16 { return c.ir }

// Running reports whether the machine is between Start and the first
// halt/invalid opcode.
func (c *CPU) Running() bool { return c.running }

// Reset zeroes PC, IR, and all 16 registers. Memory is preserved.
func (c *CPU) Reset() {
	c.pc = 0
	c.ir = 0
	c.registers = [16]byte{}
}

// Start transitions the machine to Running. If mode is Reset, Reset is
// invoked first. pc is the starting program counter; omitting it starts at
// 0.
func (c *CPU) Start(mode StartMode, pc ...byte) {
	if mode == Reset {
		c.Reset()
	}
	var start byte
	if len(pc) > 0 {
		start = pc[0]
	}
	c.pc = start
	c.running = true
}

// Cycle executes exactly one fetch/decode/execute step.
//
// A cycle either fully commits its mutation or returns InvalidOpcodeError
// having changed only IR (set to the fetched word) and Running (cleared) —
// no opcode arm partially applies and then fails.
func (c *CPU) Cycle() error {
	high := c.Bus.Read(c.pc)
	low := c.Bus.Read(c.pc + 1)
	c.ir = mask.Word(high, low)

	op := mask.HighNibble(high)
	inst, ok := opcodes[op]
	if !ok {
		c.running = false
		return &InvalidOpcodeError{Opcode: c.ir}
	}

	r := mask.LowNibble(high)
	s := mask.HighNibble(low)
	t := mask.LowNibble(low)
	xy := low

	// PC advances before execute so that JP can overwrite it, and does
	// not advance at all for HALT. Byte arithmetic wraps pc+2 mod 256.
	if op != opHalt {
		c.pc += 2
	}

	inst.Exec(c, r, s, t, xy)
	return nil
}
