package disasm

import (
	"strconv"
	"strings"

	"github.com/wippyai/evmasm/isa"
)

// Operand is one decoded argument. Which fields are meaningful depends on
// Kind.
type Operand struct {
	Constant uint64
	Address  uint32
	Index    uint8
	Width    isa.Width
	Indirect bool
	Kind     isa.ArgKind
}

func (o Operand) String() string {
	switch o.Kind {
	case isa.Register:
		name := "r" + strconv.Itoa(int(o.Index))
		if o.Indirect {
			return o.Width.String() + "[" + name + "]"
		}
		return name
	case isa.Constant:
		return strconv.FormatInt(int64(o.Constant), 10)
	default:
		return LabelName(o.Address)
	}
}

// LabelName is the synthesized label for a code bit address.
func LabelName(addr uint32) string {
	return "L" + strconv.FormatUint(uint64(addr), 10)
}

// Instruction is one decoded instruction. Addr is its bit address and Size
// its length in bits.
type Instruction struct {
	Args []Operand
	Addr uint32
	Size uint32
	Op   isa.Op
}

// Target returns the address operand of jump, call and thread instructions.
func (in Instruction) Target() (uint32, bool) {
	for _, a := range in.Args {
		if a.Kind == isa.Label {
			return a.Address, true
		}
	}
	return 0, false
}

func (in Instruction) String() string {
	if len(in.Args) == 0 {
		return in.Op.Name()
	}
	var sb strings.Builder
	sb.WriteString(in.Op.Name())
	for i, a := range in.Args {
		if i == 0 {
			sb.WriteByte(' ')
		} else {
			sb.WriteString(", ")
		}
		sb.WriteString(a.String())
	}
	return sb.String()
}
