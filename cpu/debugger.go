package cpu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
)

// model is the bubbletea model backing the manual single-step debugger.
type model struct {
	cpu    *CPU
	prevPC byte
	err    error
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m model) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case " ", "j":
			if !m.cpu.Running() {
				return m, nil
			}
			m.prevPC = m.cpu.ProgramCounter()
			if err := m.cpu.Cycle(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

// renderPage renders 16 consecutive memory bytes as a line, highlighting
// the current PC.
func (m model) renderPage(start byte) string {
	mem := m.cpu.Memory()
	s := fmt.Sprintf("%02x | ", start)
	for i := 0; i < 16; i++ {
		addr := start + byte(i)
		b := mem[addr]
		if addr == m.cpu.ProgramCounter() {
			s += fmt.Sprintf("[%02x] ", b)
		} else {
			s += fmt.Sprintf(" %02x  ", b)
		}
	}
	return s
}

func (m model) status() string {
	regs := m.cpu.Registers()
	var reg strings.Builder
	for i, v := range regs {
		fmt.Fprintf(&reg, "r%X=%02x ", i, v)
		if i%4 == 3 {
			reg.WriteByte('\n')
		}
	}
	return fmt.Sprintf(`
PC: %02x (was %02x)
IR: %04x
Running: %t

%s`,
		m.cpu.ProgramCounter(),
		m.prevPC,
		m.cpu.InstructionRegister(),
		m.cpu.Running(),
		reg.String(),
	)
}

func (m model) pageTable() string {
	header := "off  | "
	for b := 0; b < 16; b++ {
		header += fmt.Sprintf("  %01x  ", b)
	}
	lines := []string{header}
	for start := 0; start < 256; start += 16 {
		lines = append(lines, m.renderPage(byte(start)))
	}
	return strings.Join(lines, "\n")
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m model) View() string {
	op := mask16(m.cpu.InstructionRegister())
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.pageTable(),
			m.status(),
		),
		"",
		spew.Sdump(opcodes[op]),
	)
}

// mask16 extracts the high nibble of a 16-bit instruction word, the opcode
// field, for display in the debugger's instruction dump.
func mask16(ir uint16) byte {
	return byte(ir >> 12 & 0xF)
}

// Debug starts an interactive, single-step TUI over an already loaded CPU.
// Each space/j keypress advances exactly one cycle; q quits.
func (c *CPU) Debug() error {
	m, err := tea.NewProgram(model{cpu: c}).Run()
	if err != nil {
		return err
	}
	x := m.(model)
	return x.err
}
