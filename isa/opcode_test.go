package isa

import (
	"slices"
	"strings"
	"testing"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name    string
		op      Op
		pattern string
		args    []ArgKind
	}{
		{"mov", OpMov, "000", []ArgKind{Register, Register}},
		{"loadConst", OpLoadConst, "001", []ArgKind{Constant, Register}},
		{"add", OpAdd, "010001", []ArgKind{Register, Register, Register}},
		{"sub", OpSub, "010010", []ArgKind{Register, Register, Register}},
		{"div", OpDiv, "010011", []ArgKind{Register, Register, Register}},
		{"mod", OpMod, "010100", []ArgKind{Register, Register, Register}},
		{"mul", OpMul, "010101", []ArgKind{Register, Register, Register}},
		{"compare", OpCompare, "01100", []ArgKind{Register, Register, Register}},
		{"jump", OpJump, "01101", []ArgKind{Label}},
		{"jumpEqual", OpJumpEqual, "01110", []ArgKind{Label, Register, Register}},
		{"read", OpRead, "10000", []ArgKind{Register, Register, Register, Register}},
		{"write", OpWrite, "10001", []ArgKind{Register, Register, Register}},
		{"consoleRead", OpConsoleRead, "10010", []ArgKind{Register}},
		{"consoleWrite", OpConsoleWrite, "10011", []ArgKind{Register}},
		{"createThread", OpCreateThread, "10100", []ArgKind{Label, Register}},
		{"joinThread", OpJoinThread, "10101", []ArgKind{Register}},
		{"hlt", OpHlt, "10110", nil},
		{"sleep", OpSleep, "10111", []ArgKind{Register}},
		{"call", OpCall, "1100", []ArgKind{Label}},
		{"ret", OpRet, "1101", nil},
		{"lock", OpLock, "1110", []ArgKind{Register}},
		{"unlock", OpUnlock, "1111", []ArgKind{Register}},
	}

	if len(tests) != len(Ops()) {
		t.Fatalf("table has %d opcodes, test covers %d", len(Ops()), len(tests))
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, ok := Lookup(tt.name)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.name)
			}
			if op != tt.op {
				t.Errorf("op = %d, want %d", op, tt.op)
			}
			if op.Pattern() != tt.pattern {
				t.Errorf("pattern = %s, want %s", op.Pattern(), tt.pattern)
			}
			if !slices.Equal(op.Args(), tt.args) {
				t.Errorf("args = %v, want %v", op.Args(), tt.args)
			}
			if op.Arity() != len(tt.args) {
				t.Errorf("arity = %d, want %d", op.Arity(), len(tt.args))
			}
			if op.String() != tt.name {
				t.Errorf("String() = %q", op.String())
			}
		})
	}
}

func TestLookupNotFound(t *testing.T) {
	for _, name := range []string{"foo", "MOV", "loadconst", ""} {
		if _, ok := Lookup(name); ok {
			t.Errorf("Lookup(%q) should fail", name)
		}
	}
}

func TestArgsIsCopy(t *testing.T) {
	args := OpJumpEqual.Args()
	args[0] = Constant
	if OpJumpEqual.Arg(0) != Label {
		t.Error("mutating Args() changed the opcode table")
	}
	d := OpJumpEqual.Descriptor()
	d.Args()[1] = Label
	if OpJumpEqual.Arg(1) != Register {
		t.Error("mutating Descriptor().Args() changed the opcode table")
	}
}

func TestHasLabel(t *testing.T) {
	want := map[Op]bool{OpJump: true, OpJumpEqual: true, OpCreateThread: true, OpCall: true}
	for _, op := range Ops() {
		if op.HasLabel() != want[op] {
			t.Errorf("%s.HasLabel() = %v", op, op.HasLabel())
		}
	}
}

func TestPatternsPrefixFree(t *testing.T) {
	if err := CheckPrefixFree(); err != nil {
		t.Fatal(err)
	}

	// Independent pairwise check over the public accessors.
	ops := Ops()
	for _, a := range ops {
		for _, b := range ops {
			if a != b && strings.HasPrefix(b.Pattern(), a.Pattern()) {
				t.Errorf("%s (%s) is a prefix of %s (%s)", a, a.Pattern(), b, b.Pattern())
			}
		}
	}
}

func TestPatternsUnique(t *testing.T) {
	seen := make(map[string]Op)
	for _, op := range Ops() {
		if prev, ok := seen[op.Pattern()]; ok {
			t.Errorf("%s and %s share pattern %s", prev, op, op.Pattern())
		}
		seen[op.Pattern()] = op
	}
}

func TestInvalidOp(t *testing.T) {
	op := Op(200)
	if op.Valid() {
		t.Error("Op(200) should be invalid")
	}
	if op.String() != "op(200)" {
		t.Errorf("String() = %q", op.String())
	}
}

func TestWidths(t *testing.T) {
	tests := []struct {
		name  string
		width Width
		bytes int
	}{
		{"byte", Byte, 1},
		{"word", Word, 2},
		{"dword", DWord, 4},
		{"qword", QWord, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, ok := LookupWidth(tt.name)
			if !ok || w != tt.width {
				t.Fatalf("LookupWidth(%q) = %v, %v", tt.name, w, ok)
			}
			if w.Bytes() != tt.bytes {
				t.Errorf("Bytes() = %d, want %d", w.Bytes(), tt.bytes)
			}
			if w.String() != tt.name {
				t.Errorf("String() = %q", w.String())
			}
		})
	}
	if _, ok := LookupWidth("oword"); ok {
		t.Error("LookupWidth(oword) should fail")
	}
	if len(Widths()) != 4 {
		t.Errorf("Widths() = %v", Widths())
	}
}
