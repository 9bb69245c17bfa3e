// Package evmasm is an assembler for the ESET-VM2 virtual machine.
//
// It turns line-oriented assembly source into the binary program image the
// VM loads, and decodes images back into source.
//
// # Architecture Overview
//
//	evmasm/
//	├── asm/             Parse, Assemble and AssembleFile; address listings
//	│   └── internal/
//	│       ├── token/   line scanner and comment stripping
//	│       ├── ast/     program model and per-section symbol tables
//	│       ├── parser/  directives, labels, instructions, data bytes
//	│       └── encoder/ bit stream, opcode and operand encoding, label patches
//	├── isa/             opcode table, operand widths, decode trie
//	├── image/           image header, writer, reader and validation
//	├── disasm/          instruction decoder and re-assemblable listings
//	├── errors/          structured errors with phase and kind
//	└── cmd/evmasm/      command line tool and interactive listing viewer
//
// # Quick Start
//
//	res, err := asm.Assemble(src)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := image.WriteFile("prog.evm2", res.Image()); err != nil {
//	    log.Fatal(err)
//	}
//
// # Code Encoding
//
// Instructions are a prefix-free opcode pattern followed by their
// operands. Operand fields are written least significant bit first:
//
//	register   0 iiii                 direct register ri
//	           1 ww iiii              width[ri], w = byte 00 word 01 dword 10 qword 11
//	constant   64 bits                two's complement
//	label      32 bits                bit address of the target instruction
//
// The stream is zero padded to a whole byte and packed with the first bit
// of each byte in its most significant position.
//
// # Image Layout
//
//	offset 0   "ESET-VM2"
//	offset 8   code length in bytes     u32 little endian
//	offset 12  data capacity in bytes   u32 little endian
//	offset 16  initial data length      u32 little endian
//	offset 20  code, then initial data
package evmasm
