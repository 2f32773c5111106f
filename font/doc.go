// The font subpackage contains helper functions to parse fonts and
// obtain information from them (name, family, missing glyphs).
//
// A dotmatrix service works with a single font. When no font file is
// configured, [ParseDefault] provides Go Regular so the service can
// still start and be tested without any external asset.
package font
