// Package asm assembles ESET-VM2 source text into program images.
//
// Basic usage:
//
//	res, err := asm.Assemble(`
//	.dataSize 16
//	.code
//	loop:
//		consoleRead r0
//		jumpEqual done, r0, r1
//		consoleWrite r0
//		jump loop
//	done:
//		hlt
//	`)
//	img := res.Image()
//
// # Source format
//
// Source is line oriented; '#' starts a comment that runs to the end of the
// line.
//
//	.dataSize N         data capacity in bytes (at most once)
//	.code / .data       switch section
//	name:               label at the current instruction or data byte
//	op a, b, ...        instruction (code section)
//	0x00 0x1f ...       hexadecimal data bytes (data section)
//
// Register operands are rN (N from 0 to 15) or width[rN] with width one of
// byte, word, dword, qword. Constants are integer literals whose base comes
// from their prefix. Label operands may refer to labels declared later.
//
// # Errors
//
// Parse errors report the 1-based line and its text and are detected with
// errors.IsParse. Undefined labels and malformed constants are reported after
// parsing, as encode errors. A data section larger than its declared
// capacity is not an error: the capacity is widened and a warning is logged
// and returned in Result.Warnings.
package asm
