// Package image reads and writes ESET-VM2 program images.
//
// An image is a fixed 20-byte header followed by the packed code bits and
// the initial data bytes:
//
//	offset 0   8 bytes   magic "ESET-VM2"
//	offset 8   uint32    code length in bytes
//	offset 12  uint32    data capacity
//	offset 16  uint32    initial data length
//	offset 20            code bytes, then initial data bytes
//
// All integers are little-endian. The virtual machine allocates the full
// data capacity and copies the initial data to its start, so a valid image
// never declares a capacity smaller than its data.
package image
