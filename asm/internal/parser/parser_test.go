package parser

import (
	stderrors "errors"
	"slices"
	"strings"
	"testing"

	"github.com/wippyai/evmasm/asm/internal/ast"
	"github.com/wippyai/evmasm/asm/internal/token"
	"github.com/wippyai/evmasm/errors"
	"github.com/wippyai/evmasm/isa"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := New(token.Scan(src)).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return prog
}

func parseErr(t *testing.T, src string) *errors.Error {
	t.Helper()
	_, err := New(token.Scan(src)).Parse()
	if err == nil {
		t.Fatal("expected error")
	}
	var e *errors.Error
	if !stderrors.As(err, &e) {
		t.Fatalf("error %T is not *errors.Error", err)
	}
	if e.Phase != errors.PhaseParse {
		t.Errorf("phase = %s, want parse", e.Phase)
	}
	return e
}

func TestParseEmpty(t *testing.T) {
	prog := parse(t, "# nothing here\n")
	if len(prog.Code) != 0 || len(prog.Data) != 0 {
		t.Errorf("expected empty program, got %d instructions, %d bytes", len(prog.Code), len(prog.Data))
	}
	if prog.DataSizeSet {
		t.Error("DataSizeSet should be false")
	}
}

func TestParseExampleProgram(t *testing.T) {
	prog := parse(t, `.dataSize 1
.code
start:
loadConst 0x5, r0
jump end
add r0, r0, r0
end:
hlt
.data
0xFF
`)

	if !prog.DataSizeSet || prog.DataSize != 1 {
		t.Errorf("DataSize = %d (set %v), want 1", prog.DataSize, prog.DataSizeSet)
	}
	ops := make([]isa.Op, len(prog.Code))
	for i, in := range prog.Code {
		ops[i] = in.Op
	}
	want := []isa.Op{isa.OpLoadConst, isa.OpJump, isa.OpAdd, isa.OpHlt}
	if !slices.Equal(ops, want) {
		t.Errorf("ops = %v, want %v", ops, want)
	}
	if pos, ok := prog.CodeLabels.Lookup("start"); !ok || pos != 0 {
		t.Errorf("start = %d, %v", pos, ok)
	}
	if pos, ok := prog.CodeLabels.Lookup("end"); !ok || pos != 3 {
		t.Errorf("end = %d, %v; want 3", pos, ok)
	}
	if !slices.Equal(prog.Data, []byte{0xFF}) {
		t.Errorf("data = %x", prog.Data)
	}
	if prog.Code[1].Line != 5 || prog.Code[1].Source != "jump end" {
		t.Errorf("jump position = %d %q", prog.Code[1].Line, prog.Code[1].Source)
	}
}

func TestParseArguments(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []ast.Arg
	}{
		{
			"direct_registers",
			"mov r0, r15",
			[]ast.Arg{
				ast.RegisterArg(ast.Register{Index: 0}),
				ast.RegisterArg(ast.Register{Index: 15}),
			},
		},
		{
			"memory_registers",
			"mov byte[r1], qword[r2]",
			[]ast.Arg{
				ast.RegisterArg(ast.Register{Index: 1, Width: isa.Byte, Indirect: true}),
				ast.RegisterArg(ast.Register{Index: 2, Width: isa.QWord, Indirect: true}),
			},
		},
		{
			"spaced_memory_register",
			"consoleWrite dword [ r3 ]",
			[]ast.Arg{ast.RegisterArg(ast.Register{Index: 3, Width: isa.DWord, Indirect: true})},
		},
		{
			"no_space_after_comma",
			"add r1,r2,word[r3]",
			[]ast.Arg{
				ast.RegisterArg(ast.Register{Index: 1}),
				ast.RegisterArg(ast.Register{Index: 2}),
				ast.RegisterArg(ast.Register{Index: 3, Width: isa.Word, Indirect: true}),
			},
		},
		{
			"constant_verbatim",
			"loadConst -0x10, r4",
			[]ast.Arg{ast.ConstantArg("-0x10"), ast.RegisterArg(ast.Register{Index: 4})},
		},
		{
			"label_forward",
			"jumpEqual later, r0, r1",
			[]ast.Arg{
				ast.LabelArg("later"),
				ast.RegisterArg(ast.Register{Index: 0}),
				ast.RegisterArg(ast.Register{Index: 1}),
			},
		},
		{
			"no_arguments",
			"ret",
			[]ast.Arg{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parse(t, ".code\n"+tt.line+"\n")
			if len(prog.Code) != 1 {
				t.Fatalf("expected 1 instruction, got %d", len(prog.Code))
			}
			if !slices.Equal(prog.Code[0].Args, tt.want) {
				t.Errorf("args = %+v, want %+v", prog.Code[0].Args, tt.want)
			}
		})
	}
}

func TestParseData(t *testing.T) {
	prog := parse(t, ".data\n0x00 0x7f FF\nbuf:\n0X0a a\n")
	if !slices.Equal(prog.Data, []byte{0x00, 0x7F, 0xFF, 0x0A, 0x0A}) {
		t.Errorf("data = %x", prog.Data)
	}
	if pos, ok := prog.DataLabels.Lookup("buf"); !ok || pos != 3 {
		t.Errorf("buf = %d, %v; want 3", pos, ok)
	}
	if prog.CodeLabels.Len() != 0 {
		t.Error("data label leaked into code table")
	}
}

func TestParseLabelsPerSection(t *testing.T) {
	prog := parse(t, ".code\nx:\nhlt\n.data\nx:\n0x01\n")
	if pos, _ := prog.CodeLabels.Lookup("x"); pos != 0 {
		t.Errorf("code x = %d", pos)
	}
	if pos, _ := prog.DataLabels.Lookup("x"); pos != 0 {
		t.Errorf("data x = %d", pos)
	}
}

func TestParseSectionsInterleave(t *testing.T) {
	prog := parse(t, ".code\nhlt\n.data\n0x01\n.code\nsecond:\nret\n")
	if len(prog.Code) != 2 {
		t.Fatalf("code = %d instructions", len(prog.Code))
	}
	if pos, _ := prog.CodeLabels.Lookup("second"); pos != 1 {
		t.Errorf("second = %d, want 1", pos)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		kind    errors.Kind
		line    int
		wantErr string
	}{
		{"unknown_opcode", ".code\nfoo r0, r1\n", errors.KindUnknownOpcode, 2, `"foo"`},
		{"opcode_case", ".code\nHLT\n", errors.KindUnknownOpcode, 2, "HLT"},
		{"too_few_args", ".code\nadd r0, r1\n", errors.KindArity, 2, "expects 3"},
		{"too_many_args", ".code\n\nhlt r0\n", errors.KindArity, 3, "got 1"},
		{"missing_args", ".code\njump\n", errors.KindArity, 2, "got 0"},
		{"bad_register", ".code\nconsoleWrite x1\n", errors.KindSyntax, 2, "bad register"},
		{"register_suffix", ".code\nconsoleWrite r1x\n", errors.KindSyntax, 2, "bad register"},
		{"register_no_comma", ".code\nmov r1 r2\n", errors.KindArity, 2, "got 1"},
		{"bad_width", ".code\nconsoleWrite oword[r1]\n", errors.KindSyntax, 2, "bad register"},
		{"register_16", ".code\nconsoleWrite r16\n", errors.KindOutOfRange, 2, "r16"},
		{"register_17", ".code\nconsoleWrite r17\n", errors.KindOutOfRange, 2, "r17"},
		{"memory_register_17", ".code\nconsoleWrite byte[r17]\n", errors.KindOutOfRange, 2, "r17"},
		{"huge_register", ".code\nconsoleWrite r99999999999\n", errors.KindOutOfRange, 2, "out of range"},
		{"empty_constant", ".code\nloadConst , r1\n", errors.KindSyntax, 2, "empty constant"},
		{"empty_label", ".code\njumpEqual , r1, r2\n", errors.KindSyntax, 2, "empty label"},
		{"duplicate_code_label", ".code\na:\nhlt\na:\n", errors.KindDuplicateLabel, 4, "code section"},
		{"duplicate_data_label", ".data\nb:\n0x01\nb:\n", errors.KindDuplicateLabel, 4, "data section"},
		{"label_without_mode", "start:\n", errors.KindSyntax, 1, "outside"},
		{"empty_label_name", ".code\n:\n", errors.KindSyntax, 2, "empty label"},
		{"code_without_mode", "hlt\n", errors.KindSyntax, 1, "before a .code"},
		{"double_data_size", ".dataSize 1\n.dataSize 2\n", errors.KindDirective, 2, "duplicate"},
		{"data_size_missing", ".dataSize\n", errors.KindDirective, 1, "exactly one"},
		{"data_size_not_number", ".dataSize many\n", errors.KindDirective, 1, "invalid"},
		{"data_size_negative", ".dataSize -1\n", errors.KindDirective, 1, "invalid"},
		{"unknown_directive", ".text\n", errors.KindDirective, 1, "unknown directive"},
		{"directive_operands", ".code now\n", errors.KindDirective, 1, "no operands"},
		{"data_not_hex", ".data\n0x01 zz\n", errors.KindInvalidData, 2, `"zz"`},
		{"data_too_large", ".data\n0x100\n", errors.KindInvalidData, 2, "0x100"},
		{"data_negative", ".data\n-1\n", errors.KindInvalidData, 2, "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := parseErr(t, tt.src)
			if e.Kind != tt.kind {
				t.Errorf("kind = %s, want %s (%v)", e.Kind, tt.kind, e)
			}
			if e.Line != tt.line {
				t.Errorf("line = %d, want %d", e.Line, tt.line)
			}
			if !strings.Contains(e.Error(), tt.wantErr) {
				t.Errorf("error %q missing %q", e, tt.wantErr)
			}
			lines := strings.Split(tt.src, "\n")
			if e.Source != lines[tt.line-1] {
				t.Errorf("source = %q, want %q", e.Source, lines[tt.line-1])
			}
		})
	}
}

func TestParseStopsAtFirstError(t *testing.T) {
	e := parseErr(t, ".code\nfoo\nbar\n")
	if e.Line != 2 {
		t.Errorf("line = %d, want 2", e.Line)
	}
}

func TestParserReusable(t *testing.T) {
	p := New(token.Scan(".code\nl:\nhlt\n"))
	for range 2 {
		prog, err := p.Parse()
		if err != nil {
			t.Fatal(err)
		}
		if len(prog.Code) != 1 || prog.CodeLabels.Len() != 1 {
			t.Errorf("reparse produced %d instructions, %d labels", len(prog.Code), prog.CodeLabels.Len())
		}
	}
}
