// Package isa describes the ESET-VM2 instruction set.
//
// Every opcode is a closed enumeration value carrying an immutable
// descriptor: its mnemonic, its bit pattern and the ordered kinds of its
// arguments. The set of bit patterns is prefix-free, so a decoder reading the
// code stream one bit at a time always knows when an opcode is complete.
//
// # Encoding
//
// Instructions are variable-width bit sequences. After the opcode pattern,
// each argument is written in declaration order:
//
//	Register   0 iiii        direct register, 4-bit index
//	           1 ww iiii     memory at register value, 2-bit width, 4-bit index
//	Constant   64 bits
//	Label      32-bit bit address of the target instruction
//
// All numeric fields are written least-significant bit first. The finished
// stream is zero padded to a byte boundary and packed with the first bit of
// each group as the most significant bit of the byte.
//
// # Lookup
//
//	op, ok := isa.Lookup("jumpEqual")
//	op.Pattern() // "01110"
//	op.Args()    // [Label Register Register]
package isa
