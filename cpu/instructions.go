package cpu

// loadFromMemory implements LD reg<-mem: registers[r] = memory[xy].
func loadFromMemory(c *CPU, r, _, _, xy byte) {
	c.registers[r] = c.Bus.Read(xy)
}

// loadImmediate implements LD reg<-imm: registers[r] = xy.
func loadImmediate(c *CPU, r, _, _, xy byte) {
	c.registers[r] = xy
}

// store implements ST mem<-reg: memory[xy] = registers[r].
func store(c *CPU, r, _, _, xy byte) {
	c.Bus.Write(xy, c.registers[r])
}

// move implements MV reg<-reg. The assembler emits the source register in
// the low nibble of the low byte — the t field, not s — so decoding follows
// the wire encoding: registers[r] = registers[t].
func move(c *CPU, r, _, t, _ byte) {
	c.registers[r] = c.registers[t]
}

// addSigned implements ADDS: two's-complement addition of registers[s] and
// registers[t], wrapping mod 256. Go's byte arithmetic already wraps, so the
// result is identical whether computed as byte or int8.
func addSigned(c *CPU, r, s, t, _ byte) {
	c.registers[r] = c.registers[s] + c.registers[t]
}

// addFloat implements ADDF: operands cast to float32, summed, truncated
// back to a byte. Deliberately not IEEE-754 faithful, pedagogical only. The
// sum is reduced mod 256 before the conversion since casting an
// out-of-byte-range float to byte is undefined in Go.
func addFloat(c *CPU, r, s, t, _ byte) {
	sum := float32(c.registers[s]) + float32(c.registers[t])
	c.registers[r] = byte(uint32(sum) % 256)
}

// bitwiseOr implements OR: registers[r] = registers[s] | registers[t].
func bitwiseOr(c *CPU, r, s, t, _ byte) {
	c.registers[r] = c.registers[s] | c.registers[t]
}

// bitwiseAnd implements AND: registers[r] = registers[s] & registers[t].
func bitwiseAnd(c *CPU, r, s, t, _ byte) {
	c.registers[r] = c.registers[s] & c.registers[t]
}

// bitwiseXor implements XOR: registers[r] = registers[s] ^ registers[t].
func bitwiseXor(c *CPU, r, s, t, _ byte) {
	c.registers[r] = c.registers[s] ^ c.registers[t]
}

// rotate implements ROT: registers[r] rotated right by t bits, mod 8. n==0
// leaves the register unchanged, as does n==8 before the mod reduces it to
// 0 — both are required to be no-ops.
func rotate(c *CPU, r, _, t, _ byte) {
	n := t % 8
	v := c.registers[r]
	c.registers[r] = v>>n | v<<(8-n)
}

// jumpIfEqual implements JP: if registers[r] == registers[0], pc = xy.
// Cycle has already advanced pc by 2 before calling Exec; this overwrites
// that advance when the condition holds.
func jumpIfEqual(c *CPU, r, _, _, xy byte) {
	if c.registers[r] == c.registers[0] {
		c.pc = xy
	}
}

// halt stops the machine. Cycle does not advance pc for this opcode, so pc
// is left pointing at the halt instruction itself.
func halt(c *CPU, _, _, _, _ byte) {
	c.running = false
}
