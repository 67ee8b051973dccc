// internal/codec/value.go
package codec

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tamzrod/ascaso-link/internal/memmap"
)

// Kind discriminates the value union.
type Kind int

const (
	// KindInt is an integer value, possibly scaled (stored = logical * scale).
	KindInt Kind = iota
	// KindBool is a 0/1 flag.
	KindBool
	// KindEnum is a symbolic label over a raw integer.
	KindEnum
	// KindBytes is an uninterpreted byte string (custom access).
	KindBytes
)

// Value is one decoded setting or counter. Values are produced fresh on
// every decode and never mutated in place; re-decode to refresh.
type Value struct {
	Kind Kind

	// Raw is the storage integer (KindInt, KindBool, KindEnum).
	Raw uint32

	// Scale is the storage multiplier carried over from the field
	// (KindInt). The logical value is Raw/Scale, held exactly: division
	// happens only when formatting.
	Scale int

	// Bool is the decoded flag (KindBool).
	Bool bool

	// Label is the symbolic name (KindEnum). Empty when the raw value is
	// not in the field's map; Unknown is then set so the state stays
	// observable instead of being hidden.
	Label   string
	Unknown bool

	// Bytes is the uninterpreted payload (KindBytes).
	Bytes []byte
}

// Int builds a scaled integer value from a raw storage integer.
func Int(raw uint32, scale int) Value {
	if scale <= 0 {
		scale = 1
	}
	return Value{Kind: KindInt, Raw: raw, Scale: scale}
}

// Bool builds a flag value.
func Bool(b bool) Value {
	v := Value{Kind: KindBool, Bool: b}
	if b {
		v.Raw = 1
	}
	return v
}

// EnumLabel builds an enum value from a symbolic label.
func EnumLabel(label string) Value {
	return Value{Kind: KindEnum, Label: label}
}

// String renders the value for humans. Scaled integers format to exact
// decimal here, at the boundary, and nowhere earlier.
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return formatScaled(v.Raw, v.Scale)
	case KindBool:
		if v.Bool {
			return "on"
		}
		return "off"
	case KindEnum:
		if v.Unknown {
			return fmt.Sprintf("unknown(%d)", v.Raw)
		}
		return v.Label
	case KindBytes:
		return fmt.Sprintf("% X", v.Bytes)
	default:
		return fmt.Sprintf("invalid(kind=%d)", int(v.Kind))
	}
}

// formatScaled renders raw/scale as an exact decimal string. The
// registry guarantees scale divides a power of ten.
func formatScaled(raw uint32, scale int) string {
	if scale <= 1 {
		return strconv.FormatUint(uint64(raw), 10)
	}
	p10, digits := 1, 0
	for p10%scale != 0 {
		p10 *= 10
		digits++
	}
	n := uint64(raw) * uint64(p10/scale)
	whole := n / uint64(p10)
	frac := n % uint64(p10)
	return fmt.Sprintf("%d.%0*d", whole, digits, frac)
}

// parseScaled converts a decimal string into a raw storage integer,
// rounding half away from zero. No floats: the input is carried as
// integer digits over a power of ten.
func parseScaled(f memmap.Field, s string) (uint32, error) {
	scale := f.EffectiveScale()

	neg := false
	body := s
	if len(body) > 0 && (body[0] == '+' || body[0] == '-') {
		neg = body[0] == '-'
		body = body[1:]
	}

	intPart := body
	fracPart := ""
	for i := 0; i < len(body); i++ {
		if body[i] == '.' {
			intPart = body[:i]
			fracPart = body[i+1:]
			break
		}
	}
	if intPart == "" && fracPart == "" {
		return 0, &ParseError{Field: f.Name, Input: s}
	}
	if intPart == "" {
		intPart = "0"
	}

	digits := intPart + fracPart
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, &ParseError{Field: f.Name, Input: s}
	}

	den := uint64(1)
	for range fracPart {
		if den > math.MaxUint64/10 {
			return 0, &ParseError{Field: f.Name, Input: s}
		}
		den *= 10
	}

	// raw = round(n * scale / den), half away from zero. The digit
	// count alone can overflow 64 bits once scaled; anything that large
	// is out of range for every field width.
	if n > math.MaxUint64/uint64(scale) {
		return 0, &RangeError{Field: f.Name, Value: s, Min: 0, Max: maxForLength(f.Length)}
	}
	num := n * uint64(scale)
	raw := num / den
	if 2*(num%den) >= den {
		raw++
	}

	if neg && raw != 0 {
		return 0, &RangeError{Field: f.Name, Value: s, Min: 0, Max: maxForLength(f.Length)}
	}
	if !fitsLength(raw, f.Length) {
		return 0, &RangeError{Field: f.Name, Value: s, Min: 0, Max: maxForLength(f.Length)}
	}
	return uint32(raw), nil
}

func fitsLength(v uint64, length int) bool {
	return v <= maxForLength(length)
}

func maxForLength(length int) uint64 {
	switch length {
	case 1:
		return 0xFF
	case 2:
		return 0xFFFF
	case 4:
		return 0xFFFFFFFF
	default:
		return 0
	}
}
