package isa

// Image container constants.
const (
	// Magic identifies the image format and version.
	Magic = "ESET-VM2"

	// HeaderSize is the magic plus three little-endian uint32 fields:
	// code length, data capacity and initial data length.
	HeaderSize = len(Magic) + 3*4
)

// Field widths in bits.
const (
	RegisterBits = 4
	WidthBits    = 2
	ConstantBits = 64
	AddressBits  = 32
)

// Register file bounds.
const (
	RegisterCount = 1 << RegisterBits
	MaxRegister   = RegisterCount - 1
)

// MaxAddress is the largest bit address a label field can hold.
const MaxAddress = 1<<AddressBits - 1
