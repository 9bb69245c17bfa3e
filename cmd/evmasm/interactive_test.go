package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wippyai/evmasm/asm"
	"github.com/wippyai/evmasm/disasm"
)

func newTestViewer(t *testing.T) *viewerModel {
	t.Helper()
	res, err := asm.Assemble(source)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	l, err := disasm.Disassemble(res.Image())
	if err != nil {
		t.Fatalf("Disassemble failed: %v", err)
	}
	return newViewerModel("prog.bin", l)
}

func press(m *viewerModel, keys ...string) {
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m.Update(msg)
	}
}

func TestViewerNavigation(t *testing.T) {
	m := newTestViewer(t)

	press(m, "up")
	if m.cursor != 0 {
		t.Errorf("cursor moved above first row: %d", m.cursor)
	}
	press(m, "down", "down", "down", "down", "down", "down")
	if m.cursor != len(m.listing.Instructions)-1 {
		t.Errorf("cursor = %d, want last row", m.cursor)
	}
	press(m, "k")
	if m.cursor != len(m.listing.Instructions)-2 {
		t.Errorf("cursor = %d after k", m.cursor)
	}
}

func TestViewerFollowJump(t *testing.T) {
	m := newTestViewer(t)

	// jumpEqual done, r0, r1
	press(m, "down", "enter")
	if got := m.listing.Instructions[m.cursor].Op.Name(); got != "hlt" {
		t.Errorf("followed to %s, want hlt", got)
	}
	press(m, "b")
	if m.cursor != 1 {
		t.Errorf("cursor = %d after back, want 1", m.cursor)
	}
}

func TestViewerGoto(t *testing.T) {
	m := newTestViewer(t)
	target := m.listing.Instructions[2].Addr

	press(m, "g")
	if m.state != stateGoto {
		t.Fatal("goto prompt not opened")
	}
	press(m, disasm.LabelName(target), "enter")
	if m.state != stateBrowse || m.cursor != 2 {
		t.Errorf("state %d cursor %d, want browse at 2", m.state, m.cursor)
	}

	press(m, "g", "zz", "enter")
	if m.err == nil {
		t.Error("expected error for bad address")
	}
	if !strings.Contains(m.View(), "bad address") {
		t.Error("error not shown")
	}

	press(m, "g", "esc")
	if m.state != stateBrowse {
		t.Error("esc did not close the prompt")
	}
}

func TestViewerView(t *testing.T) {
	m := newTestViewer(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 6})
	if m.height != 2 {
		t.Errorf("height = %d, want 2", m.height)
	}

	view := m.View()
	for _, want := range []string{"prog.bin", "L0:", "consoleRead r0"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "hlt") {
		t.Error("rows past the window height rendered")
	}
}
