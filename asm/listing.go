package asm

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// WriteListing writes one row per instruction: its bit address, byte and bit
// within the packed code, source line, and the normalised instruction.
// Labels are written on their own rows ahead of the instruction they mark.
func (res *Result) WriteListing(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ADDR\tBYTE.BIT\tLINE\tINSTRUCTION")

	prog := res.Program
	for i, in := range prog.Code {
		addr := res.Offsets[i]
		for _, name := range prog.CodeLabels.At(uint32(i)) {
			fmt.Fprintf(tw, "\t\t\t%s:\n", name)
		}
		fmt.Fprintf(tw, "%d\t%d.%d\t%d\t    %s\n", addr, addr/8, addr%8, in.Line, in)
	}
	for _, name := range prog.CodeLabels.At(uint32(len(prog.Code))) {
		fmt.Fprintf(tw, "%d\t\t\t%s:\n", res.CodeBits, name)
	}

	fmt.Fprintf(tw, "\ncode\t%d bits, %d bytes\n", res.CodeBits, len(res.Code))
	fmt.Fprintf(tw, "data\t%d of %d bytes\n", len(res.Data), res.DataSize)
	if names := prog.DataLabels.Names(); len(names) > 0 {
		parts := make([]string, len(names))
		for i, name := range names {
			pos, _ := prog.DataLabels.Lookup(name)
			parts[i] = fmt.Sprintf("%s=%d", name, pos)
		}
		fmt.Fprintf(tw, "data labels\t%s\n", strings.Join(parts, " "))
	}
	return tw.Flush()
}
