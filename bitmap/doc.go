// The bitmap subpackage defines the packed [Bitmap] format produced by
// the dotmatrix engine and the binary [Canvas] used to compose it.
//
// A bitmap of size N has ceil(N/8) bytes per row and N rows. Within
// each byte, bit 7 is the leftmost pixel. For N = 16 that means 2 bytes
// per row and 32 bytes in total; for N = 24, 3 and 72; for N = 32, 4
// and 128. Sizes that are not multiples of 8 pad each row with zero bits
// on the right, so the stride is always fixed for a given size.
package bitmap
