// internal/snapshot/default.go
package snapshot

import "github.com/tamzrod/ascaso-link/internal/codec"

// defaultResponse is a response captured from a Baby T Plus 230V,
// kept as the fallback when neither a port nor a cache is available.
const defaultResponse = "r000500D7FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFF010102020" +
	"0010100011E1E1E1E002600282D000000A2031E000F0028000A00E30450000F006400050" +
	"078000002D101000102F2032D00010101000068006A008E00680170176E00DC0096002C0" +
	"170176E00DC0096002C017017080C1001010164646464000600010000000000000000000" +
	"000000000000200000000000000000000000000000000000000000000000000000000000" +
	"000000000000000000000000000000000000000000000000000030000009E1E00009E1E0" +
	"0000000E7"

// Default returns the captured fallback image.
func Default() (codec.Image, error) {
	return Parse([]byte(defaultResponse))
}
