package errors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseParse  Phase = "parse"  // source text to program
	PhaseEncode Phase = "encode" // program to bit stream
	PhaseLoad   Phase = "load"   // image container validation
	PhaseDecode Phase = "decode" // bit stream to instructions
	PhaseIO     Phase = "io"     // file access
)

// Kind categorizes the error
type Kind string

const (
	KindSyntax         Kind = "syntax"
	KindDirective      Kind = "directive"
	KindUnknownOpcode  Kind = "unknown_opcode"
	KindArity          Kind = "arity"
	KindDuplicateLabel Kind = "duplicate_label"
	KindUndefinedLabel Kind = "undefined_label"
	KindOutOfRange     Kind = "out_of_range"
	KindInvalidData    Kind = "invalid_data"
	KindOverflow       Kind = "overflow"
	KindTruncated      Kind = "truncated"
	KindUnknownPattern Kind = "unknown_pattern"
)

// Error is the structured error type used throughout the assembler
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	// Source is the raw text of the offending line, when known.
	Source string
	// Line is 1-based; zero means no source position.
	Line int
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Line > 0 {
		b.WriteString(" at line ")
		b.WriteString(strconv.Itoa(e.Line))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if src := strings.TrimSpace(e.Source); src != "" {
		b.WriteString(" in ")
		b.WriteString(strconv.Quote(src))
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Kind == "" {
			return e.Phase == t.Phase
		}
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// At sets the source position
func (b *Builder) At(line int, source string) *Builder {
	b.err.Line = line
	b.err.Source = source
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Syntax creates a parse error for a line that matches no accepted shape
func Syntax(line int, source, detail string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindSyntax,
		Line:   line,
		Source: source,
		Detail: detail,
	}
}

// UnknownOpcode creates an unknown opcode parse error
func UnknownOpcode(line int, source, name string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindUnknownOpcode,
		Line:   line,
		Source: source,
		Detail: fmt.Sprintf("unknown opcode %q", name),
		Value:  name,
	}
}

// Arity creates an argument count parse error
func Arity(line int, source, opcode string, want, got int) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindArity,
		Line:   line,
		Source: source,
		Detail: fmt.Sprintf("%s expects %d argument(s), got %d", opcode, want, got),
		Value:  got,
	}
}

// DuplicateLabel creates a duplicate label parse error
func DuplicateLabel(line int, source, section, label string) *Error {
	return &Error{
		Phase:  PhaseParse,
		Kind:   KindDuplicateLabel,
		Line:   line,
		Source: source,
		Detail: fmt.Sprintf("label %q already declared in %s section", label, section),
		Value:  label,
	}
}

// UndefinedLabel creates an encode error for a missing jump/call target
func UndefinedLabel(line int, source, label string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindUndefinedLabel,
		Line:   line,
		Source: source,
		Detail: fmt.Sprintf("undefined code label %q", label),
		Value:  label,
	}
}

// OutOfRange creates an error for a value outside its permitted bounds
func OutOfRange(phase Phase, value any, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfRange,
		Detail: detail,
		Value:  value,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Detail: fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:  value,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Detail: detail,
	}
}

// Truncated creates an error for input that ends inside a field
func Truncated(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTruncated,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Load creates an image loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}

// IsParse reports whether err was raised while parsing source text.
func IsParse(err error) bool {
	return errors.Is(err, &Error{Phase: PhaseParse})
}

// IsEncode reports whether err was raised while encoding the program.
func IsEncode(err error) bool {
	return errors.Is(err, &Error{Phase: PhaseEncode})
}

// LineOf returns the 1-based source line carried by err, or 0.
func LineOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Line
	}
	return 0
}
