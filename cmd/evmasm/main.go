package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/evmasm/asm"
	"github.com/wippyai/evmasm/disasm"
	"github.com/wippyai/evmasm/errors"
)

// Process exit codes.
const (
	exitOK     = 0
	exitUsage  = 1
	exitParse  = 2
	exitEncode = 3
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	verbose bool
	listing bool
	dump    bool
}

func execute(args []string, stdout, stderr io.Writer) int {
	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return exitOK
	}
	newPrinter(stderr).report(err)
	return exitCode(err)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "evmasm <input> <output>",
		Short: "Assemble ESET-VM2 source into a program image",
		Long: `evmasm translates ESET-VM2 assembly source into the binary program image
loaded by the VM.

Exit status is 0 on success, 2 for a parse error, 3 for an assembly error
and 1 for usage or file errors.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			l := newLogger(stderr, opts.verbose)
			asm.SetLogger(l)
			disasm.SetLogger(l)
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return assemble(stdout, opts, args[0], args[1])
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log pipeline stages")
	addAssembleFlags(cmd.Flags(), &opts)

	cmd.AddCommand(newDisasmCmd(stdout))
	return cmd
}

func addAssembleFlags(fs *pflag.FlagSet, opts *options) {
	fs.BoolVarP(&opts.listing, "listing", "l", false, "print the instruction address listing")
	fs.BoolVar(&opts.dump, "dump", false, "dump the parsed program")
	fs.SortFlags = false
}

func assemble(stdout io.Writer, opts options, in, out string) error {
	if opts.dump {
		src, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("read source: %w", err)
		}
		prog, err := asm.Parse(string(src))
		if err != nil {
			return err
		}
		cfg := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		cfg.Fdump(stdout, prog)
	}

	res, err := asm.AssembleFile(in, out)
	if err != nil {
		return err
	}
	if opts.listing {
		if err := res.WriteListing(stdout); err != nil {
			return err
		}
	}
	fmt.Fprintln(stdout, "All ok")
	return nil
}

func exitCode(err error) int {
	var e *errors.Error
	if !stderrors.As(err, &e) {
		return exitUsage
	}
	switch e.Phase {
	case errors.PhaseParse:
		return exitParse
	case errors.PhaseEncode, errors.PhaseLoad, errors.PhaseDecode:
		return exitEncode
	}
	return exitUsage
}

func newLogger(w io.Writer, verbose bool) *zap.Logger {
	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	if isTerminal(w) {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
