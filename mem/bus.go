// Package mem provides the memory bus a Vole CPU reads and writes through.
package mem

// A Bus is the machine's entire address space. Vole has a single 256-byte
// space, unlike a multi-component machine with separate CPU/PPU/cartridge
// buses; the indirection is kept anyway so the CPU never touches the byte
// array directly, only ever through Read/Write.
type Bus struct {
	RAM [256]byte // zeroed on init
}

// Write stores data at addr.
func (b *Bus) Write(addr byte, data byte) {
	b.RAM[addr] = data
}

// Read returns the byte stored at addr.
func (b *Bus) Read(addr byte) byte { return b.RAM[addr] }

// Reset zeroes every byte of RAM.
func (b *Bus) Reset() {
	b.RAM = [256]byte{}
}
