package asm

import (
	"os"

	"go.uber.org/zap"

	"github.com/wippyai/evmasm/asm/internal/ast"
	"github.com/wippyai/evmasm/asm/internal/encoder"
	"github.com/wippyai/evmasm/asm/internal/parser"
	"github.com/wippyai/evmasm/asm/internal/token"
	"github.com/wippyai/evmasm/errors"
	"github.com/wippyai/evmasm/image"
)

type (
	Program     = ast.Program
	Instruction = ast.Instruction
	Arg         = ast.Arg
	Register    = ast.Register
	SymbolTable = ast.SymbolTable
)

// Result is an assembled program.
type Result struct {
	Program *Program
	Code    []byte
	// Offsets holds the bit address of each instruction in source order.
	Offsets  []uint32
	Data     []byte
	Warnings []string
	// CodeBits is the stream length before byte padding.
	CodeBits uint32
	DataSize uint32
}

// Image returns the program image for res.
func (res *Result) Image() *image.Image {
	return &image.Image{
		Code:     res.Code,
		Data:     res.Data,
		DataSize: res.DataSize,
	}
}

// Parse builds the program tables from source without encoding it.
func Parse(source string) (*Program, error) {
	prog, err := parser.New(token.Scan(source)).Parse()
	if err != nil {
		return nil, err
	}
	Logger().Debug("parsed program",
		zap.Int("instructions", len(prog.Code)),
		zap.Int("code_labels", prog.CodeLabels.Len()),
		zap.Int("data_bytes", len(prog.Data)),
		zap.Int("data_labels", prog.DataLabels.Len()))
	return prog, nil
}

// Encode assembles an already parsed program.
func Encode(prog *Program) (*Result, error) {
	enc, err := encoder.Encode(prog)
	if err != nil {
		return nil, err
	}
	for _, w := range enc.Warnings {
		Logger().Warn(w,
			zap.Uint32("declared", prog.DataSize),
			zap.Int("used", len(prog.Data)))
	}
	Logger().Debug("encoded program",
		zap.Uint32("code_bits", enc.CodeBits),
		zap.Int("code_bytes", len(enc.Code)),
		zap.Int("patches", len(enc.Patches)))

	return &Result{
		Program:  prog,
		Code:     enc.Code,
		Offsets:  enc.Offsets,
		Data:     enc.Data,
		Warnings: enc.Warnings,
		CodeBits: enc.CodeBits,
		DataSize: enc.DataSize,
	}, nil
}

// Assemble parses and encodes source.
func Assemble(source string) (*Result, error) {
	prog, err := Parse(source)
	if err != nil {
		return nil, err
	}
	return Encode(prog)
}

// AssembleFile assembles the source file at in and writes the image to out.
// Nothing is written when assembly fails.
func AssembleFile(in, out string) (*Result, error) {
	src, err := os.ReadFile(in)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseIO, errors.KindInvalidData, err, "read source")
	}
	res, err := Assemble(string(src))
	if err != nil {
		return nil, err
	}
	if err := image.WriteFile(out, res.Image()); err != nil {
		return nil, err
	}
	Logger().Info("wrote image",
		zap.String("input", in),
		zap.String("output", out),
		zap.Int("code_bytes", len(res.Code)),
		zap.Int("data_bytes", len(res.Data)))
	return res, nil
}
