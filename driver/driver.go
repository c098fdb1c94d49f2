// Package driver wires a Vole CPU to an assembler and provides the three
// scheduling disciplines a host (CLI, debugger, or timed loop) can drive a
// running machine with.
package driver

import (
	"time"

	"vole/asm"
	"vole/cpu"
)

// Driver owns exactly one CPU and one Assembler. No CPU or assembler logic
// depends on which scheduling discipline the caller chooses.
type Driver struct {
	CPU       *cpu.CPU
	Assembler *asm.Assembler
	ROM       []byte
	StartPC   byte

	accumulated time.Duration
}

// New returns a Driver over a fresh CPU and assembler.
func New() *Driver {
	return &Driver{CPU: cpu.New(), Assembler: asm.New()}
}

// Compile assembles source and stores the resulting ROM and start pc,
// ready for Run.
func (d *Driver) Compile(source string) error {
	rom, startPC, err := d.Assembler.Assemble(source)
	if err != nil {
		return err
	}
	d.ROM = rom
	d.StartPC = startPC
	return nil
}

// Run loads the most recently compiled ROM and starts the CPU from a clean
// state at StartPC.
func (d *Driver) Run() error {
	if err := d.CPU.LoadROM(d.ROM); err != nil {
		return err
	}
	d.CPU.Start(cpu.Reset, d.StartPC)
	d.accumulated = 0
	return nil
}

// StepFullSpeed runs cycles until the machine stops. Intended to be called
// once per external tick while the caller wants the program to run to
// completion as fast as possible.
func (d *Driver) StepFullSpeed() error {
	for d.CPU.Running() {
		if err := d.CPU.Cycle(); err != nil {
			return err
		}
	}
	return nil
}

// StepTimed accumulates elapsed wall-clock time and runs exactly one cycle
// each time the accumulation reaches period, reporting whether a cycle
// fired. It is a no-op once stopped.
func (d *Driver) StepTimed(elapsed, period time.Duration) (ticked bool, err error) {
	if !d.CPU.Running() {
		return false, nil
	}
	d.accumulated += elapsed
	if d.accumulated < period {
		return false, nil
	}
	d.accumulated -= period
	return true, d.CPU.Cycle()
}

// StepManual runs exactly one cycle, for a driver fielding a single
// external step command. It is a no-op once stopped.
func (d *Driver) StepManual() error {
	if !d.CPU.Running() {
		return nil
	}
	return d.CPU.Cycle()
}
