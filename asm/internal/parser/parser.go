package parser

import (
	"iter"
	"strconv"
	"strings"

	"github.com/wippyai/evmasm/asm/internal/ast"
	"github.com/wippyai/evmasm/asm/internal/token"
	"github.com/wippyai/evmasm/errors"
)

// Directive names.
const (
	DirectiveDataSize = ".dataSize"
	DirectiveCode     = ".code"
	DirectiveData     = ".data"
)

type mode int

const (
	modeNone mode = iota
	modeData
	modeCode
)

func (m mode) String() string {
	switch m {
	case modeData:
		return "data"
	case modeCode:
		return "code"
	}
	return "none"
}

type Parser struct {
	lines iter.Seq[token.Line]
	prog  *ast.Program
	line  token.Line
	mode  mode
}

func New(lines iter.Seq[token.Line]) *Parser {
	return &Parser{lines: lines}
}

// Parse consumes every line and returns the program, stopping at the first
// error.
func (p *Parser) Parse() (*ast.Program, error) {
	p.prog = ast.NewProgram()
	p.mode = modeNone

	for line := range p.lines {
		p.line = line
		if err := p.parseLine(line.Tokens); err != nil {
			return nil, err
		}
	}
	return p.prog, nil
}

func (p *Parser) parseLine(tokens []string) error {
	switch {
	case strings.HasPrefix(tokens[0], "."):
		return p.parseDirective(tokens)
	case len(tokens) == 1 && strings.HasSuffix(tokens[0], ":"):
		return p.parseLabel(tokens[0])
	case p.mode == modeCode:
		return p.parseCode(tokens)
	case p.mode == modeData:
		return p.parseData(tokens)
	}
	return p.fail(errors.KindSyntax, "unexpected %q before a .code or .data directive", tokens[0])
}

func (p *Parser) parseDirective(tokens []string) error {
	switch tokens[0] {
	case DirectiveDataSize:
		if p.prog.DataSizeSet {
			return p.fail(errors.KindDirective, "duplicate %s directive", DirectiveDataSize)
		}
		if len(tokens) != 2 {
			return p.fail(errors.KindDirective, "%s expects exactly one value", DirectiveDataSize)
		}
		size, err := strconv.ParseUint(tokens[1], 10, 32)
		if err != nil {
			return p.fail(errors.KindDirective, "invalid %s value %q", DirectiveDataSize, tokens[1])
		}
		p.prog.DataSize = uint32(size)
		p.prog.DataSizeSet = true

	case DirectiveCode, DirectiveData:
		if len(tokens) != 1 {
			return p.fail(errors.KindDirective, "%s takes no operands", tokens[0])
		}
		if tokens[0] == DirectiveCode {
			p.mode = modeCode
		} else {
			p.mode = modeData
		}

	default:
		return p.fail(errors.KindDirective, "unknown directive %q", tokens[0])
	}
	return nil
}

func (p *Parser) parseLabel(tok string) error {
	name := strings.TrimSuffix(tok, ":")
	if name == "" {
		return p.fail(errors.KindSyntax, "empty label name")
	}

	var table *ast.SymbolTable
	var pos uint32
	switch p.mode {
	case modeCode:
		table, pos = p.prog.CodeLabels, uint32(len(p.prog.Code))
	case modeData:
		table, pos = p.prog.DataLabels, uint32(len(p.prog.Data))
	default:
		return p.fail(errors.KindSyntax, "label %q declared outside .code and .data", name)
	}

	if !table.Define(name, pos) {
		return errors.DuplicateLabel(p.line.No, p.line.Text, p.mode.String(), name)
	}
	return nil
}

// splitArgs re-joins the operand tokens and splits them on commas.
func splitArgs(tokens []string) []string {
	if len(tokens) == 0 {
		return nil
	}
	parts := strings.Split(strings.Join(tokens, " "), ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func (p *Parser) fail(kind errors.Kind, msg string, args ...any) error {
	return errors.New(errors.PhaseParse, kind).
		At(p.line.No, p.line.Text).
		Detail(msg, args...).
		Build()
}
