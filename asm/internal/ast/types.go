package ast

import (
	"strconv"
	"strings"

	"github.com/wippyai/evmasm/isa"
)

type Program struct {
	CodeLabels  *SymbolTable
	DataLabels  *SymbolTable
	Code        []Instruction
	Data        []byte
	DataSize    uint32
	DataSizeSet bool
}

func NewProgram() *Program {
	return &Program{
		CodeLabels: NewSymbolTable(),
		DataLabels: NewSymbolTable(),
	}
}

type Instruction struct {
	Source string
	Args   []Arg
	Line   int
	Op     isa.Op
}

func (in Instruction) String() string {
	if len(in.Args) == 0 {
		return in.Op.Name()
	}
	parts := make([]string, len(in.Args))
	for i, a := range in.Args {
		parts[i] = a.String()
	}
	return in.Op.Name() + " " + strings.Join(parts, ", ")
}

// Register is a register operand. Memory-referenced operands use the
// register value as a byte offset into data memory.
type Register struct {
	Index    uint8
	Width    isa.Width
	Indirect bool
}

func (r Register) String() string {
	name := "r" + strconv.Itoa(int(r.Index))
	if r.Indirect {
		return r.Width.String() + "[" + name + "]"
	}
	return name
}

// Arg is one instruction argument. Text holds the literal of a constant or
// the name of a label.
type Arg struct {
	Text     string
	Register Register
	Kind     isa.ArgKind
}

func (a Arg) String() string {
	if a.Kind == isa.Register {
		return a.Register.String()
	}
	return a.Text
}

func RegisterArg(r Register) Arg {
	return Arg{Kind: isa.Register, Register: r}
}

func ConstantArg(text string) Arg {
	return Arg{Kind: isa.Constant, Text: text}
}

func LabelArg(name string) Arg {
	return Arg{Kind: isa.Label, Text: name}
}
