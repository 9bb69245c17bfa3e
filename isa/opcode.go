package isa

import (
	"fmt"
	"slices"
	"strings"
)

// ArgKind is the kind of a declared instruction argument.
type ArgKind uint8

const (
	Register ArgKind = iota // register, direct or memory-referenced
	Constant                // 64-bit integer literal
	Label                   // code label resolved to a 32-bit address
)

func (k ArgKind) String() string {
	switch k {
	case Register:
		return "register"
	case Constant:
		return "constant"
	case Label:
		return "label"
	}
	return "unknown"
}

// Op is an ESET-VM2 opcode.
type Op uint8

const (
	OpMov Op = iota
	OpLoadConst
	OpAdd
	OpSub
	OpDiv
	OpMod
	OpMul
	OpCompare
	OpJump
	OpJumpEqual
	OpRead
	OpWrite
	OpConsoleRead
	OpConsoleWrite
	OpCreateThread
	OpJoinThread
	OpHlt
	OpSleep
	OpCall
	OpRet
	OpLock
	OpUnlock

	opCount
)

// Descriptor is the immutable definition of one opcode.
type Descriptor struct {
	Name    string
	Pattern string
	args    []ArgKind
}

const (
	r = Register
	c = Constant
	l = Label
)

var descriptors = [opCount]Descriptor{
	OpMov:       {"mov", "000", []ArgKind{r, r}},
	OpLoadConst: {"loadConst", "001", []ArgKind{c, r}},

	OpAdd: {"add", "010001", []ArgKind{r, r, r}},
	OpSub: {"sub", "010010", []ArgKind{r, r, r}},
	OpDiv: {"div", "010011", []ArgKind{r, r, r}},
	OpMod: {"mod", "010100", []ArgKind{r, r, r}},
	OpMul: {"mul", "010101", []ArgKind{r, r, r}},

	OpCompare:   {"compare", "01100", []ArgKind{r, r, r}},
	OpJump:      {"jump", "01101", []ArgKind{l}},
	OpJumpEqual: {"jumpEqual", "01110", []ArgKind{l, r, r}},

	OpRead:         {"read", "10000", []ArgKind{r, r, r, r}},
	OpWrite:        {"write", "10001", []ArgKind{r, r, r}},
	OpConsoleRead:  {"consoleRead", "10010", []ArgKind{r}},
	OpConsoleWrite: {"consoleWrite", "10011", []ArgKind{r}},

	OpCreateThread: {"createThread", "10100", []ArgKind{l, r}},
	OpJoinThread:   {"joinThread", "10101", []ArgKind{r}},
	OpHlt:          {"hlt", "10110", nil},
	OpSleep:        {"sleep", "10111", []ArgKind{r}},

	OpCall: {"call", "1100", []ArgKind{l}},
	OpRet:  {"ret", "1101", nil},

	OpLock:   {"lock", "1110", []ArgKind{r}},
	OpUnlock: {"unlock", "1111", []ArgKind{r}},
}

var byName = func() map[string]Op {
	m := make(map[string]Op, opCount)
	for op := range opCount {
		m[descriptors[op].Name] = op
	}
	return m
}()

// Lookup resolves a mnemonic. Mnemonics are case-sensitive.
func Lookup(name string) (Op, bool) {
	op, ok := byName[name]
	return op, ok
}

// Ops returns every opcode in table order.
func Ops() []Op {
	ops := make([]Op, 0, opCount)
	for op := range opCount {
		ops = append(ops, op)
	}
	return ops
}

// Valid reports whether o is a defined opcode.
func (o Op) Valid() bool {
	return o < opCount
}

func (o Op) Name() string {
	if !o.Valid() {
		return fmt.Sprintf("op(%d)", uint8(o))
	}
	return descriptors[o].Name
}

func (o Op) String() string {
	return o.Name()
}

// Pattern returns the opcode bit pattern as a string of '0' and '1', in
// stream order.
func (o Op) Pattern() string {
	return descriptors[o].Pattern
}

// Arity returns the number of declared arguments.
func (o Op) Arity() int {
	return len(descriptors[o].args)
}

// Arg returns the kind of the i-th argument.
func (o Op) Arg(i int) ArgKind {
	return descriptors[o].args[i]
}

// Args returns a copy of the declared argument kinds.
func (o Op) Args() []ArgKind {
	return slices.Clone(descriptors[o].args)
}

// HasLabel reports whether the opcode takes a code address argument.
func (o Op) HasLabel() bool {
	return slices.Contains(descriptors[o].args, Label)
}

// Descriptor returns the opcode's definition.
func (o Op) Descriptor() Descriptor {
	d := descriptors[o]
	d.args = slices.Clone(d.args)
	return d
}

// Args returns the declared argument kinds of the descriptor.
func (d Descriptor) Args() []ArgKind {
	return d.args
}

// CheckPrefixFree verifies that no opcode pattern is a prefix of another.
func CheckPrefixFree() error {
	for a := range opCount {
		for b := range opCount {
			if a == b {
				continue
			}
			pa, pb := descriptors[a].Pattern, descriptors[b].Pattern
			if strings.HasPrefix(pb, pa) {
				return fmt.Errorf("opcode %s pattern %s is a prefix of %s pattern %s",
					descriptors[a].Name, pa, descriptors[b].Name, pb)
			}
		}
	}
	return nil
}
