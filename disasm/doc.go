// Package disasm decodes ESET-VM2 code back into instructions.
//
// A Decoder walks the packed code bit by bit through the opcode trie in
// package isa, the same way the VM fetches instructions:
//
//	d := disasm.NewDecoder(img.Code)
//	for {
//		in, err := d.Next()
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		fmt.Println(in.Addr, in)
//	}
//
// Disassemble decodes a whole image and produces a Listing whose Format
// output is source the assembler accepts, with synthesized L<addr> labels
// for every jump, call and thread target.
package disasm
