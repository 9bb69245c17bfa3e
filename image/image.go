package image

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	evmerrors "github.com/wippyai/evmasm/errors"
	"github.com/wippyai/evmasm/isa"
)

// Validation errors returned by Parse, wrapped in a load error.
var (
	ErrTooShort        = errors.New("image shorter than header")
	ErrInvalidMagic    = errors.New("invalid image magic")
	ErrDataCapacity    = errors.New("data capacity smaller than initial data")
	ErrSizeMismatch    = errors.New("image size does not match header")
	ErrSectionTooLarge = errors.New("section exceeds 32-bit length")
)

type Header struct {
	Magic      [8]byte
	CodeSize   uint32
	DataSize   uint32
	InitialSize uint32
}

// Image is an assembled program.
type Image struct {
	Code []byte
	Data []byte
	// DataSize is the data memory capacity, at least len(Data).
	DataSize uint32
}

// Header returns the header describing img.
func (img *Image) Header() Header {
	var h Header
	copy(h.Magic[:], isa.Magic)
	h.CodeSize = uint32(len(img.Code))
	h.DataSize = img.DataSize
	h.InitialSize = uint32(len(img.Data))
	return h
}

// Validate checks that img can be represented in the container.
func (img *Image) Validate() error {
	if uint64(len(img.Code)) > isa.MaxAddress || uint64(len(img.Data)) > isa.MaxAddress {
		return evmerrors.Load("validate image", ErrSectionTooLarge)
	}
	if uint64(img.DataSize) < uint64(len(img.Data)) {
		return evmerrors.Load(fmt.Sprintf("capacity %d, data %d", img.DataSize, len(img.Data)), ErrDataCapacity)
	}
	return nil
}

// Size returns the encoded length in bytes.
func (img *Image) Size() int {
	return isa.HeaderSize + len(img.Code) + len(img.Data)
}

// Encode returns the binary image.
func (img *Image) Encode() ([]byte, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	h := img.Header()
	out := make([]byte, 0, img.Size())
	out = append(out, h.Magic[:]...)
	out = binary.LittleEndian.AppendUint32(out, h.CodeSize)
	out = binary.LittleEndian.AppendUint32(out, h.DataSize)
	out = binary.LittleEndian.AppendUint32(out, h.InitialSize)
	out = append(out, img.Code...)
	out = append(out, img.Data...)
	return out, nil
}

// WriteTo writes the binary image to w.
func (img *Image) WriteTo(w io.Writer) (int64, error) {
	b, err := img.Encode()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

// WriteFile writes img to path, replacing any existing file.
func WriteFile(path string, img *Image) error {
	b, err := img.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return evmerrors.Wrap(evmerrors.PhaseIO, evmerrors.KindInvalidData, err, "write image")
	}
	return nil
}

// ParseHeader decodes the fixed header at the start of data.
func ParseHeader(data []byte) (Header, error) {
	var h Header
	if len(data) < isa.HeaderSize {
		return h, evmerrors.Load(fmt.Sprintf("%d bytes", len(data)), ErrTooShort)
	}
	copy(h.Magic[:], data)
	if string(h.Magic[:]) != isa.Magic {
		return h, evmerrors.Load(fmt.Sprintf("magic %q", h.Magic[:]), ErrInvalidMagic)
	}
	h.CodeSize = binary.LittleEndian.Uint32(data[8:])
	h.DataSize = binary.LittleEndian.Uint32(data[12:])
	h.InitialSize = binary.LittleEndian.Uint32(data[16:])
	return h, nil
}

// Parse decodes and validates a binary image. The code and data slices
// alias data.
func Parse(data []byte) (*Image, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, err
	}
	if h.DataSize < h.InitialSize {
		return nil, evmerrors.Load(fmt.Sprintf("capacity %d, data %d", h.DataSize, h.InitialSize), ErrDataCapacity)
	}
	want := uint64(isa.HeaderSize) + uint64(h.CodeSize) + uint64(h.InitialSize)
	if uint64(len(data)) != want {
		return nil, evmerrors.Load(fmt.Sprintf("size %d, header expects %d", len(data), want), ErrSizeMismatch)
	}

	codeEnd := isa.HeaderSize + int(h.CodeSize)
	return &Image{
		Code:     data[isa.HeaderSize:codeEnd:codeEnd],
		Data:     data[codeEnd:],
		DataSize: h.DataSize,
	}, nil
}

// Read reads and parses a whole image from r.
func Read(r io.Reader) (*Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, evmerrors.Wrap(evmerrors.PhaseIO, evmerrors.KindInvalidData, err, "read image")
	}
	return Parse(data)
}

// ReadFile reads and parses the image at path.
func ReadFile(path string) (*Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, evmerrors.Wrap(evmerrors.PhaseIO, evmerrors.KindInvalidData, err, "read image")
	}
	return Parse(data)
}
