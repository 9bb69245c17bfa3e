package isa

// Width is the memory access size of a memory-referenced register operand.
// The value is its 2-bit wire encoding.
type Width uint8

const (
	Byte  Width = 0b00
	Word  Width = 0b01
	DWord Width = 0b10
	QWord Width = 0b11
)

var widthNames = [...]string{
	Byte:  "byte",
	Word:  "word",
	DWord: "dword",
	QWord: "qword",
}

// Widths lists every access width in encoding order.
func Widths() []Width {
	return []Width{Byte, Word, DWord, QWord}
}

// LookupWidth resolves an access width by its source keyword.
func LookupWidth(name string) (Width, bool) {
	for w, n := range widthNames {
		if n == name {
			return Width(w), true
		}
	}
	return 0, false
}

// Bytes returns the number of bytes accessed: 1, 2, 4 or 8.
func (w Width) Bytes() int {
	return 1 << (w & 0b11)
}

func (w Width) String() string {
	if int(w) < len(widthNames) {
		return widthNames[w]
	}
	return "width?"
}
