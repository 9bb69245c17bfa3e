package disasm

import (
	"bufio"
	"fmt"
	"io"
	"slices"

	"go.uber.org/zap"

	"github.com/wippyai/evmasm/image"
)

// BytesPerDataLine is the number of data bytes Format writes per line.
const BytesPerDataLine = 16

// Listing is a fully decoded image.
type Listing struct {
	Instructions []Instruction
	// Targets holds every jump, call and thread target, ascending.
	Targets []uint32
	// Stray holds the targets that fall inside an instruction or past the
	// end of code. Format cannot label them.
	Stray    []uint32
	Data     []byte
	DataSize uint32
	// End is the bit address just past the last instruction.
	End uint32
}

// Disassemble decodes the whole code section of img.
func Disassemble(img *image.Image) (*Listing, error) {
	l := &Listing{
		Data:     img.Data,
		DataSize: img.DataSize,
	}
	d := NewDecoder(img.Code)
	for {
		in, err := d.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		l.Instructions = append(l.Instructions, in)
	}
	l.End = d.Pos()

	starts := make(map[uint32]bool, len(l.Instructions)+1)
	for _, in := range l.Instructions {
		starts[in.Addr] = true
	}
	starts[l.End] = true

	for _, in := range l.Instructions {
		if t, ok := in.Target(); ok {
			l.Targets = append(l.Targets, t)
		}
	}
	slices.Sort(l.Targets)
	l.Targets = slices.Compact(l.Targets)
	for _, t := range l.Targets {
		if !starts[t] {
			l.Stray = append(l.Stray, t)
		}
	}

	Logger().Debug("disassembled image",
		zap.Int("instructions", len(l.Instructions)),
		zap.Int("targets", len(l.Targets)),
		zap.Uint32("end", l.End))
	for _, t := range l.Stray {
		Logger().Warn("jump target is not an instruction boundary", zap.Uint32("target", t))
	}
	return l, nil
}

// IsTarget reports whether addr is referenced by a jump, call or thread
// instruction.
func (l *Listing) IsTarget(addr uint32) bool {
	_, found := slices.BinarySearch(l.Targets, addr)
	return found
}

// Find returns the index of the instruction covering the bit address addr.
func (l *Listing) Find(addr uint32) (int, bool) {
	i, found := slices.BinarySearchFunc(l.Instructions, addr, func(in Instruction, a uint32) int {
		switch {
		case in.Addr+in.Size <= a:
			return -1
		case in.Addr > a:
			return 1
		}
		return 0
	})
	return i, found
}

// Format writes l as assembler source. Assembling the output reproduces
// the code and data sections of the decoded image.
func (l *Listing) Format(w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, ".dataSize %d\n", l.DataSize)
	fmt.Fprintln(bw, ".code")
	for _, t := range l.Stray {
		fmt.Fprintf(bw, "# %s does not start an instruction\n", LabelName(t))
	}
	for _, in := range l.Instructions {
		if l.IsTarget(in.Addr) {
			fmt.Fprintf(bw, "%s:\n", LabelName(in.Addr))
		}
		fmt.Fprintf(bw, "\t%s\n", in)
	}
	if l.IsTarget(l.End) {
		fmt.Fprintf(bw, "%s:\n", LabelName(l.End))
	}

	if len(l.Data) > 0 {
		fmt.Fprintln(bw, ".data")
		for chunk := range slices.Chunk(l.Data, BytesPerDataLine) {
			bw.WriteByte('\t')
			for i, b := range chunk {
				if i > 0 {
					bw.WriteByte(' ')
				}
				fmt.Fprintf(bw, "0x%02x", b)
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}
