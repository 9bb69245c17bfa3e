package encoder

import (
	stderrors "errors"
	"fmt"
	"math/big"

	"github.com/wippyai/evmasm/asm/internal/ast"
	"github.com/wippyai/evmasm/errors"
	"github.com/wippyai/evmasm/isa"
)

// Patch is a deferred address field: Pos is the bit position of the field,
// Target the index of the instruction whose address belongs there.
type Patch struct {
	Pos    uint32
	Target uint32
}

type Result struct {
	Code []byte
	// Offsets holds the bit address of every instruction, in source order.
	Offsets  []uint32
	Patches  []Patch
	Data     []byte
	Warnings []string
	CodeBits uint32
	DataSize uint32
}

type encoder struct {
	prog    *ast.Program
	stream  *Stream
	offsets []uint32
	patches []Patch
}

// Encode assembles prog into its code bit stream in one forward pass, then
// fills in every forward label reference.
func Encode(prog *ast.Program) (*Result, error) {
	e := &encoder{
		prog:    prog,
		stream:  NewStream(),
		offsets: make([]uint32, 0, len(prog.Code)),
	}

	for i := range prog.Code {
		if err := e.encodeInstruction(&prog.Code[i]); err != nil {
			return nil, err
		}
	}

	end, err := e.address(e.stream.Len())
	if err != nil {
		return nil, err
	}
	for _, p := range e.patches {
		e.stream.PutUint(uint(p.Pos), uint64(e.resolve(p.Target, end)), isa.AddressBits)
	}

	res := &Result{
		Code:     e.stream.Bytes(),
		CodeBits: end,
		Offsets:  e.offsets,
		Patches:  e.patches,
		Data:     prog.Data,
	}
	if err := e.sizeData(res); err != nil {
		return nil, err
	}
	return res, nil
}

func (e *encoder) address(n uint) (uint32, error) {
	if n > isa.MaxAddress {
		return 0, errors.Overflow(errors.PhaseEncode, n, "32-bit code address")
	}
	return uint32(n), nil
}

// resolve maps an instruction index to its bit address. The index one past
// the last instruction is the end of the stream.
func (e *encoder) resolve(target, end uint32) uint32 {
	if int(target) < len(e.offsets) {
		return e.offsets[target]
	}
	return end
}

func (e *encoder) sizeData(res *Result) error {
	n := len(e.prog.Data)
	if uint64(n) > isa.MaxAddress {
		return errors.Overflow(errors.PhaseEncode, n, "32-bit data length")
	}
	res.DataSize = e.prog.DataSize
	if !e.prog.DataSizeSet {
		res.DataSize = uint32(n)
		return nil
	}
	if uint32(n) > res.DataSize {
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("bad .dataSize, was %d but used %d, expanding", res.DataSize, n))
		res.DataSize = uint32(n)
	}
	return nil
}

func (e *encoder) encodeInstruction(in *ast.Instruction) error {
	addr, err := e.address(e.stream.Len())
	if err != nil {
		return err
	}
	e.offsets = append(e.offsets, addr)
	e.stream.WritePattern(in.Op.Pattern())

	for _, arg := range in.Args {
		switch arg.Kind {
		case isa.Register:
			e.encodeRegister(arg.Register)
		case isa.Constant:
			if err := e.encodeConstant(in, arg.Text); err != nil {
				return err
			}
		case isa.Label:
			if err := e.encodeLabel(in, arg.Text); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *encoder) encodeRegister(r ast.Register) {
	e.stream.WriteBit(r.Indirect)
	if r.Indirect {
		e.stream.WriteUint(uint64(r.Width), isa.WidthBits)
	}
	e.stream.WriteUint(uint64(r.Index), isa.RegisterBits)
}

var (
	minConstant = new(big.Int).Lsh(big.NewInt(-1), isa.ConstantBits-1)
	maxConstant = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), isa.ConstantBits), big.NewInt(1))

	errConstantSyntax = stderrors.New("invalid integer literal")
	errConstantRange  = stderrors.New("constant does not fit in 64 bits")
)

// ParseConstant reads an integer literal with its base taken from the
// prefix (0x, 0o, 0b, leading 0 for octal, otherwise decimal). Values from
// -2^63 to 2^64-1 are accepted; negative values are returned in two's
// complement.
func ParseConstant(text string) (uint64, error) {
	v, ok := new(big.Int).SetString(text, 0)
	if !ok {
		return 0, errConstantSyntax
	}
	if v.Cmp(minConstant) < 0 || v.Cmp(maxConstant) > 0 {
		return 0, errConstantRange
	}
	if v.Sign() < 0 {
		return uint64(v.Int64()), nil
	}
	return v.Uint64(), nil
}

func (e *encoder) encodeConstant(in *ast.Instruction, text string) error {
	v, err := ParseConstant(text)
	if err != nil {
		kind := errors.KindInvalidData
		if stderrors.Is(err, errConstantRange) {
			kind = errors.KindOverflow
		}
		return errors.New(errors.PhaseEncode, kind).
			At(in.Line, in.Source).
			Value(text).
			Detail("%s: %s", err, text).
			Build()
	}
	e.stream.WriteUint(v, isa.ConstantBits)
	return nil
}

func (e *encoder) encodeLabel(in *ast.Instruction, name string) error {
	target, ok := e.prog.CodeLabels.Lookup(name)
	if !ok {
		return errors.UndefinedLabel(in.Line, in.Source, name)
	}

	if int(target) < len(e.offsets) {
		e.stream.WriteUint(uint64(e.offsets[target]), isa.AddressBits)
		return nil
	}

	pos, err := e.address(e.stream.Len())
	if err != nil {
		return err
	}
	e.patches = append(e.patches, Patch{Pos: pos, Target: target})
	e.stream.WriteUint(0, isa.AddressBits)
	return nil
}
