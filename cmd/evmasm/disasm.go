package main

import (
	stderrors "errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/wippyai/evmasm/disasm"
	"github.com/wippyai/evmasm/image"
)

var errNotTerminal = stderrors.New("interactive mode needs a terminal")

func newDisasmCmd(stdout io.Writer) *cobra.Command {
	var interactive bool
	cmd := &cobra.Command{
		Use:   "disasm <image>",
		Short: "Decode a program image back into assembler source",
		Long: `disasm decodes the code section of an image and prints source that
evmasm assembles back into the same image. Jump, call and thread targets
get L<addr> labels, where addr is the target's bit address.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			img, err := image.ReadFile(args[0])
			if err != nil {
				return err
			}
			l, err := disasm.Disassemble(img)
			if err != nil {
				return err
			}
			if interactive {
				if !isTerminal(stdout) {
					return errNotTerminal
				}
				return runViewer(args[0], l)
			}
			return l.Format(stdout)
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse the listing in a terminal viewer")
	return cmd
}
