package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/evmasm/errors"
)

// printer writes diagnostics. Styles come from a renderer bound to the
// output, so nothing is coloured when it is not a terminal.
type printer struct {
	w      io.Writer
	header lipgloss.Style
	source lipgloss.Style
	cause  lipgloss.Style
}

func newPrinter(w io.Writer) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:      w,
		header: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF6B6B")),
		source: r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		cause:  r.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

func (p *printer) report(err error) {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		fmt.Fprintln(p.w, p.header.Render("Error:"), err)
		return
	}

	switch e.Phase {
	case errors.PhaseParse:
		fmt.Fprintln(p.w, p.header.Render(fmt.Sprintf("Parser error on line %d:", e.Line)), e.Detail)
	case errors.PhaseEncode:
		fmt.Fprintln(p.w, p.header.Render("Assembler error:"), describe(e))
	default:
		fmt.Fprintln(p.w, p.header.Render(fmt.Sprintf("%s error:", e.Phase)), describe(e))
	}
	if src := strings.TrimSpace(e.Source); src != "" {
		fmt.Fprintln(p.w, "    "+p.source.Render(src))
	}
	if e.Cause != nil {
		fmt.Fprintln(p.w, "    "+p.cause.Render(e.Cause.Error()))
	}
}

func describe(e *errors.Error) string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Detail)
	}
	return e.Detail
}
