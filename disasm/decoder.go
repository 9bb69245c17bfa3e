package disasm

import (
	"fmt"
	"io"

	"github.com/bits-and-blooms/bitset"

	"github.com/wippyai/evmasm/errors"
	"github.com/wippyai/evmasm/isa"
)

// Decoder reads instructions from packed code. Bit i of the code is bit
// 7-i%8 of byte i/8.
type Decoder struct {
	bits *bitset.BitSet
	tree *isa.DecodeTree
	size uint
	// padding is the position of the last set bit. Decoding stops once the
	// cursor is at or past it and less than a byte remains.
	padding uint
	pos     uint
}

func NewDecoder(code []byte) *Decoder {
	d := &Decoder{
		bits: bitset.New(uint(len(code)) * 8),
		tree: isa.Tree(),
		size: uint(len(code)) * 8,
	}
	for i, b := range code {
		for j := range 8 {
			if b&(0x80>>j) != 0 {
				d.bits.Set(uint(i*8 + j))
			}
		}
	}
	for i, ok := d.bits.NextSet(0); ok; i, ok = d.bits.NextSet(i + 1) {
		d.padding = i
	}
	return d
}

// Pos returns the bit address of the next instruction.
func (d *Decoder) Pos() uint32 {
	return uint32(d.pos)
}

// Size returns the code length in bits.
func (d *Decoder) Size() uint32 {
	return uint32(d.size)
}

// Seek moves the decoder to a bit address inside the code.
func (d *Decoder) Seek(addr uint32) error {
	if uint(addr) >= d.size {
		return errors.OutOfRange(errors.PhaseDecode, addr, "address past the end of code")
	}
	d.pos = uint(addr)
	return nil
}

// AtEnd reports whether only padding remains.
func (d *Decoder) AtEnd() bool {
	if d.pos >= d.size {
		return true
	}
	return d.pos >= d.padding && d.size-d.pos < 8
}

// Next decodes the instruction at the current position. It returns io.EOF
// once only padding remains. On error the position is left unchanged.
func (d *Decoder) Next() (Instruction, error) {
	if d.AtEnd() {
		return Instruction{}, io.EOF
	}
	start := d.pos

	op, err := d.opcode()
	if err != nil {
		d.pos = start
		return Instruction{}, err
	}

	in := Instruction{Op: op, Addr: uint32(start)}
	if n := op.Arity(); n > 0 {
		in.Args = make([]Operand, n)
	}
	for i, kind := range op.Args() {
		a, err := d.operand(kind)
		if err != nil {
			d.pos = start
			return Instruction{}, errors.New(errors.PhaseDecode, errors.KindTruncated).
				Value(start).
				Cause(err).
				Detail("%s at %d: argument %d", op, start, i+1).
				Build()
		}
		in.Args[i] = a
	}
	in.Size = uint32(d.pos - start)
	return in, nil
}

func (d *Decoder) opcode() (isa.Op, error) {
	start := d.pos
	cur := d.tree.Start()
	for {
		if d.pos >= d.size {
			return 0, errors.Truncated(errors.PhaseDecode, fmt.Sprintf("opcode at %d", start))
		}
		bit := d.bits.Test(d.pos)
		d.pos++
		op, done, ok := cur.Step(bit)
		if !ok {
			return 0, errors.New(errors.PhaseDecode, errors.KindUnknownPattern).
				Value(start).
				Detail("unknown instruction %s at %d", d.pattern(start, d.pos), start).
				Build()
		}
		if done {
			return op, nil
		}
	}
}

func (d *Decoder) operand(kind isa.ArgKind) (Operand, error) {
	o := Operand{Kind: kind}
	switch kind {
	case isa.Register:
		ind, err := d.uint(1)
		if err != nil {
			return o, err
		}
		if ind == 1 {
			o.Indirect = true
			w, err := d.uint(isa.WidthBits)
			if err != nil {
				return o, err
			}
			o.Width = isa.Width(w)
		}
		idx, err := d.uint(isa.RegisterBits)
		if err != nil {
			return o, err
		}
		o.Index = uint8(idx)
	case isa.Constant:
		v, err := d.uint(isa.ConstantBits)
		if err != nil {
			return o, err
		}
		o.Constant = v
	case isa.Label:
		v, err := d.uint(isa.AddressBits)
		if err != nil {
			return o, err
		}
		o.Address = uint32(v)
	}
	return o, nil
}

// uint reads an LSB-first field.
func (d *Decoder) uint(width int) (uint64, error) {
	if d.size-d.pos < uint(width) {
		return 0, errors.Truncated(errors.PhaseDecode, fmt.Sprintf("%d-bit field at %d", width, d.pos))
	}
	var v uint64
	for i := range width {
		if d.bits.Test(d.pos + uint(i)) {
			v |= 1 << i
		}
	}
	d.pos += uint(width)
	return v, nil
}

func (d *Decoder) pattern(from, to uint) string {
	b := make([]byte, 0, to-from)
	for i := from; i < to; i++ {
		if d.bits.Test(i) {
			b = append(b, '1')
		} else {
			b = append(b, '0')
		}
	}
	return string(b)
}
