package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wippyai/evmasm/asm/internal/ast"
	"github.com/wippyai/evmasm/errors"
	"github.com/wippyai/evmasm/isa"
)

var (
	directRegister = regexp.MustCompile(`^r([0-9]+)$`)
	memoryRegister = regexp.MustCompile(`^(` + widthAlternatives() + `)\s*\[\s*r([0-9]+)\s*\]$`)
)

func widthAlternatives() string {
	names := make([]string, 0, 4)
	for _, w := range isa.Widths() {
		names = append(names, regexp.QuoteMeta(w.String()))
	}
	return strings.Join(names, "|")
}

func (p *Parser) parseCode(tokens []string) error {
	op, ok := isa.Lookup(tokens[0])
	if !ok {
		return errors.UnknownOpcode(p.line.No, p.line.Text, tokens[0])
	}

	raw := splitArgs(tokens[1:])
	if len(raw) != op.Arity() {
		return errors.Arity(p.line.No, p.line.Text, op.Name(), op.Arity(), len(raw))
	}

	in := ast.Instruction{
		Op:     op,
		Line:   p.line.No,
		Source: p.line.Text,
		Args:   make([]ast.Arg, 0, len(raw)),
	}

	for i, text := range raw {
		switch kind := op.Arg(i); kind {
		case isa.Register:
			reg, err := p.parseRegister(text)
			if err != nil {
				return err
			}
			in.Args = append(in.Args, ast.RegisterArg(reg))

		case isa.Constant, isa.Label:
			if text == "" {
				return p.fail(errors.KindSyntax, "argument %d of %s: empty %s", i+1, op.Name(), kind)
			}
			if kind == isa.Constant {
				in.Args = append(in.Args, ast.ConstantArg(text))
			} else {
				in.Args = append(in.Args, ast.LabelArg(text))
			}
		}
	}

	p.prog.Code = append(p.prog.Code, in)
	return nil
}

func (p *Parser) parseRegister(text string) (ast.Register, error) {
	var reg ast.Register
	var digits string

	if m := directRegister.FindStringSubmatch(text); m != nil {
		digits = m[1]
	} else if m := memoryRegister.FindStringSubmatch(text); m != nil {
		w, _ := isa.LookupWidth(m[1])
		reg.Width = w
		reg.Indirect = true
		digits = m[2]
	} else {
		return reg, p.fail(errors.KindSyntax, "bad register argument %q", text)
	}

	idx, err := strconv.ParseUint(digits, 10, 8)
	if err != nil || idx > isa.MaxRegister {
		return reg, errors.New(errors.PhaseParse, errors.KindOutOfRange).
			At(p.line.No, p.line.Text).
			Value(digits).
			Detail("register r%s out of range (r0-r%d)", digits, isa.MaxRegister).
			Build()
	}
	reg.Index = uint8(idx)
	return reg, nil
}
