package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/evmasm/disasm"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	addrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	opStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type viewerState int

const (
	stateBrowse viewerState = iota
	stateGoto
)

type viewerModel struct {
	err      error
	listing  *disasm.Listing
	filename string
	// history holds the cursor positions to return to after following a
	// jump.
	history []int
	input   textinput.Model
	cursor  int
	top     int
	height  int
	state   viewerState
}

func newViewerModel(filename string, l *disasm.Listing) *viewerModel {
	ti := textinput.New()
	ti.Prompt = "go to bit address: "
	ti.Placeholder = "130 or L130"
	ti.Width = 20
	return &viewerModel{
		listing:  l,
		filename: filename,
		input:    ti,
		height:   20,
	}
}

func (m *viewerModel) Init() tea.Cmd {
	return nil
}

func (m *viewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// title, blank, status, help
		m.height = max(msg.Height-4, 1)
		m.scroll()

	case tea.KeyMsg:
		if m.state == stateGoto {
			return m.updateGoto(msg)
		}
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k":
			m.move(-1)
		case "down", "j":
			m.move(1)
		case "pgup":
			m.move(-m.height)
		case "pgdown", " ":
			m.move(m.height)
		case "home":
			m.move(-len(m.listing.Instructions))
		case "end":
			m.move(len(m.listing.Instructions))
		case "enter":
			m.follow()
		case "backspace", "b":
			if n := len(m.history); n > 0 {
				m.cursor = m.history[n-1]
				m.history = m.history[:n-1]
				m.scroll()
			}
		case "g", ":":
			m.state = stateGoto
			m.err = nil
			m.input.SetValue("")
			return m, m.input.Focus()
		}
	}
	return m, nil
}

func (m *viewerModel) updateGoto(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.state = stateBrowse
		m.input.Blur()
		return m, nil
	case "enter":
		m.state = stateBrowse
		m.input.Blur()
		addr, err := parseAddress(m.input.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		m.jumpTo(addr)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func parseAddress(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "L")
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("bad address %q", s)
	}
	return uint32(v), nil
}

func (m *viewerModel) move(delta int) {
	n := len(m.listing.Instructions)
	if n == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
	m.scroll()
}

func (m *viewerModel) scroll() {
	if m.cursor < m.top {
		m.top = m.cursor
	}
	if m.cursor >= m.top+m.height {
		m.top = m.cursor - m.height + 1
	}
}

// follow moves to the target of the selected instruction, if it has one.
func (m *viewerModel) follow() {
	if len(m.listing.Instructions) == 0 {
		return
	}
	if t, ok := m.listing.Instructions[m.cursor].Target(); ok {
		m.jumpTo(t)
	}
}

func (m *viewerModel) jumpTo(addr uint32) {
	i, ok := m.listing.Find(addr)
	if !ok {
		m.err = fmt.Errorf("no instruction at bit %d", addr)
		return
	}
	m.err = nil
	m.history = append(m.history, m.cursor)
	m.cursor = i
	m.scroll()
}

func (m *viewerModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("ESET-VM2"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	fmt.Fprintf(&b, "  %d instructions, %d code bits, data %d/%d bytes\n\n",
		len(m.listing.Instructions), m.listing.End, len(m.listing.Data), m.listing.DataSize)

	ins := m.listing.Instructions
	end := min(m.top+m.height, len(ins))
	for i := m.top; i < end; i++ {
		b.WriteString(m.formatRow(i))
		b.WriteString("\n")
	}
	if len(ins) == 0 {
		b.WriteString(addrStyle.Render("(no code)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.state == stateGoto:
		b.WriteString(m.input.View())
	case m.err != nil:
		b.WriteString(errorStyle.Render(m.err.Error()))
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move • enter follow jump • b back • g go to • q quit"))
	return b.String()
}

func (m *viewerModel) formatRow(i int) string {
	in := m.listing.Instructions[i]
	label := ""
	if m.listing.IsTarget(in.Addr) {
		label = disasm.LabelName(in.Addr) + ":"
	}
	addr := fmt.Sprintf("%8d %5d.%d", in.Addr, in.Addr/8, in.Addr%8)
	if i == m.cursor {
		return selectedStyle.Render(fmt.Sprintf("> %s %-8s %s", addr, label, in))
	}
	return "  " + addrStyle.Render(addr) + " " + labelStyle.Render(fmt.Sprintf("%-8s", label)) + " " + opStyle.Render(in.String())
}

func runViewer(filename string, l *disasm.Listing) error {
	p := tea.NewProgram(newViewerModel(filename, l), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
