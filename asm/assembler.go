// Package asm translates Vole mnemonic source into a ROM image: a single
// pass over the source lines, lexing each into a mnemonic and operands,
// emitting two bytes per instruction, and back-patching forward label
// references once their defining line is reached.
package asm

import (
	"fmt"
	"strings"
)

// Assembler holds the transient state of one assembly pass. A value is
// reusable across calls to Assemble; each call resets its state. An
// Assembler is not safe for concurrent use.
type Assembler struct {
	rom            []byte
	programCounter byte
	pendingLabels  map[string]int
	diagnostics    []string
}

// New returns a ready-to-use Assembler.
func New() *Assembler {
	return &Assembler{pendingLabels: map[string]int{}}
}

// Assemble translates source into a ROM image and the start program
// counter set by .org (0 if absent). It stops at the first error.
func (a *Assembler) Assemble(source string) ([]byte, byte, error) {
	a.rom = nil
	a.programCounter = 0
	a.pendingLabels = map[string]int{}
	a.diagnostics = a.diagnostics[:0]

	for lineNum, raw := range strings.Split(source, "\n") {
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" || strings.HasPrefix(trimmed, ";") {
			continue
		}
		if idx := strings.IndexByte(trimmed, ';'); idx >= 0 {
			trimmed = strings.TrimRight(trimmed[:idx], " \t")
		}

		mnemonic, rest, _ := strings.Cut(trimmed, " ")
		rest = strings.TrimSpace(rest)

		if err := a.emitLine(lineNum, mnemonic, rest); err != nil {
			return nil, 0, err
		}
	}

	if len(a.rom)%2 != 0 {
		a.rom = append(a.rom, 0x00)
	}

	for label := range a.pendingLabels {
		return nil, 0, &AssemblerError{Kind: LabelResolution, Line: -1, Token: label}
	}

	return a.rom, a.programCounter, nil
}

func (a *Assembler) emitLine(line int, mnemonic, rest string) error {
	switch strings.ToLower(mnemonic) {
	case "ld":
		return a.emitLD(line, rest)
	case "adds":
		return a.emitRST(line, 0x5, rest)
	case "addf":
		return a.emitRST(line, 0x6, rest)
	case "or":
		return a.emitRST(line, 0x7, rest)
	case "and":
		return a.emitRST(line, 0x8, rest)
	case "xor":
		return a.emitRST(line, 0x9, rest)
	case "rot":
		return a.emitROT(line, rest)
	case "jp":
		return a.emitJP(line, rest)
	case "halt":
		a.log(line, "halt")
		a.rom = append(a.rom, 0xC0, 0x00)
		return nil
	}

	if mnemonic == ".org" {
		return a.emitOrg(line, rest)
	}

	if strings.HasSuffix(mnemonic, ":") {
		return a.resolveLabel(mnemonic[:len(mnemonic)-1])
	}

	return &AssemblerError{Kind: UnknownArgument, Line: line, Token: mnemonic}
}

// emitLD handles all four ld operand shapes: reg<-mem, reg<-imm, mem<-reg,
// reg<-reg.
func (a *Assembler) emitLD(line int, rest string) error {
	parts, ok := splitArgs(rest, 2)
	if !ok {
		return &AssemblerError{Kind: UnknownArgument, Line: line, Token: rest}
	}
	lhs, err := resolveArgument(line, parts[0])
	if err != nil {
		return err
	}
	rhs, err := resolveArgument(line, parts[1])
	if err != nil {
		return err
	}

	switch lhs.kind {
	case kindRegister:
		switch rhs.kind {
		case kindRegister:
			a.push(line, "ld", 0x40|lhs.byte, rhs.byte)
		case kindAddress:
			a.push(line, "ld", 0x10|lhs.byte, rhs.byte)
		case kindLiteral:
			a.push(line, "ld", 0x20|lhs.byte, rhs.byte)
		default:
			return &AssemblerError{Kind: TypeMismatch, Line: line, Token: parts[1]}
		}
	case kindAddress:
		if rhs.kind != kindRegister {
			return &AssemblerError{Kind: TypeMismatch, Line: line, Token: parts[1]}
		}
		a.push(line, "ld", 0x30|rhs.byte, lhs.byte)
	default:
		return &AssemblerError{Kind: LoadOpFail, Line: line, Token: parts[0]}
	}
	return nil
}

// emitRST handles the r, s, t register-triple mnemonics: adds, addf, or,
// and, xor.
func (a *Assembler) emitRST(line int, op byte, rest string) error {
	parts, ok := splitArgs(rest, 3)
	if !ok {
		return &AssemblerError{Kind: UnknownArgument, Line: line, Token: rest}
	}
	var regs [3]byte
	for i, p := range parts {
		v, err := resolveArgument(line, p)
		if err != nil {
			return err
		}
		if v.kind != kindRegister {
			return &AssemblerError{Kind: TypeMismatch, Line: line, Token: p}
		}
		regs[i] = v.byte
	}
	a.push(line, "rst", op<<4|regs[0], regs[1]<<4|regs[2])
	return nil
}

// emitROT handles rot reg, literal.
func (a *Assembler) emitROT(line int, rest string) error {
	parts, ok := splitArgs(rest, 2)
	if !ok {
		return &AssemblerError{Kind: UnknownArgument, Line: line, Token: rest}
	}
	reg, err := resolveArgument(line, parts[0])
	if err != nil {
		return err
	}
	if reg.kind != kindRegister {
		return &AssemblerError{Kind: TypeMismatch, Line: line, Token: parts[0]}
	}
	lit, err := resolveArgument(line, parts[1])
	if err != nil {
		return err
	}
	if lit.kind != kindLiteral {
		return &AssemblerError{Kind: TypeMismatch, Line: line, Token: parts[1]}
	}
	a.push(line, "rot", 0xA0|reg.byte, lit.byte)
	return nil
}

// emitJP handles jp reg, label. The target byte is a 0xFF sentinel until
// the label's definition line back-patches it.
func (a *Assembler) emitJP(line int, rest string) error {
	parts, ok := splitArgs(rest, 2)
	if !ok {
		return &AssemblerError{Kind: UnknownArgument, Line: line, Token: rest}
	}
	reg, err := resolveArgument(line, parts[0])
	if err != nil {
		return err
	}
	if reg.kind != kindRegister {
		return &AssemblerError{Kind: TypeMismatch, Line: line, Token: parts[0]}
	}
	label := strings.ToLower(strings.TrimSuffix(parts[1], ":"))
	a.push(line, "jp", 0xB0|reg.byte, 0xFF)
	// Only the most recent pending reference to a given label is tracked;
	// an earlier jp to the same unresolved label is silently superseded.
	a.pendingLabels[label] = len(a.rom) - 1
	return nil
}

// emitOrg handles .org literal: sets the start pc and zero-pads rom up to
// that length.
func (a *Assembler) emitOrg(line int, rest string) error {
	lit, err := resolveArgument(line, rest)
	if err != nil {
		return err
	}
	if lit.kind != kindLiteral {
		return &AssemblerError{Kind: TypeMismatch, Line: line, Token: rest}
	}
	a.programCounter = lit.byte
	for len(a.rom) < int(lit.byte) {
		a.rom = append(a.rom, 0x00)
	}
	return nil
}

// resolveLabel back-patches every pending reference recorded under name
// with the current rom length, the address the next instruction will land
// at. A label with no pending reference is a legal no-op.
func (a *Assembler) resolveLabel(name string) error {
	key := strings.ToLower(name)
	idx, ok := a.pendingLabels[key]
	if !ok {
		return nil
	}
	a.rom[idx] = byte(len(a.rom))
	delete(a.pendingLabels, key)
	return nil
}

func (a *Assembler) push(line int, name string, high, low byte) {
	a.log(line, name)
	a.rom = append(a.rom, high, low)
}

func (a *Assembler) log(line int, name string) {
	a.diagnostics = append(a.diagnostics, fmt.Sprintf("line %d: emit %s", line, name))
}

// Diagnostics returns the per-line event log recorded during the most
// recent Assemble call. It carries no semantic meaning of its own.
func (a *Assembler) Diagnostics() []string {
	return a.diagnostics
}
