// internal/memmap/field.go
package memmap

// Encoding is the wire representation of a field's raw integer.
// Multi-byte values are little-endian inside the memory image.
type Encoding string

const (
	U8    Encoding = "u8"
	U16LE Encoding = "u16le"
	U32LE Encoding = "u32le"
)

// Width returns the byte length implied by the encoding, or 0 if unknown.
func (e Encoding) Width() int {
	switch e {
	case U8:
		return 1
	case U16LE:
		return 2
	case U32LE:
		return 4
	default:
		return 0
	}
}

// Access declares whether a field may be written to the machine.
type Access int

const (
	ReadWrite Access = iota
	ReadOnly
)

// Scope declares which machine models carry a field.
type Scope int

const (
	// ScopeAll: present on every model.
	ScopeAll Scope = iota
	// ScopeBaseline: Baby T models 1-4 only.
	ScopeBaseline
	// ScopeModel5Plus: Barista/Big Dream models 5-8 only.
	ScopeModel5Plus
)

// Limit bounds writable raw values, in storage units (after scale).
// Limits are write policy, not protocol: the board does not enforce them.
type Limit struct {
	Min uint32
	Max uint32
}

// Field describes one named value inside the memory image.
// Offsets are absolute board addresses, NOT positions inside a response
// payload; the image base accounts for the difference.
type Field struct {
	Name     string
	Offset   int
	Length   int
	Encoding Encoding

	// Scale is the integer storage multiplier: stored = logical * Scale.
	// 0 means 1. Must divide a power of ten so every decoded value has
	// an exact decimal rendering.
	Scale int

	// Enum maps raw values to symbolic labels. Mutually exclusive with Bool.
	Enum map[uint32]string

	// Bool marks 0/1 flag fields (non-zero decodes as true).
	Bool bool

	Access Access
	Scope  Scope

	// Group is 0 for group-1/common fields, 2 or 3 for fields that exist
	// only on machines reporting that many groups.
	Group int

	// AltOffset is the explicit model-5+ address override. 0 means the
	// baseline offset applies everywhere. There is deliberately no
	// computed shift: one entry per relocated field.
	AltOffset int

	// Limit is the default write bound, nil when the vendor documents none.
	Limit *Limit
}

// scale returns the effective storage multiplier.
func (f Field) scale() int {
	if f.Scale <= 0 {
		return 1
	}
	return f.Scale
}

// EffectiveScale is the storage multiplier with the zero-value default applied.
func (f Field) EffectiveScale() int { return f.scale() }

// End returns the first byte past the field's range at its current offset.
func (f Field) End() int { return f.Offset + f.Length }

// LabelFor returns the symbolic label for a raw value, if one is mapped.
func (f Field) LabelFor(raw uint32) (string, bool) {
	if f.Enum == nil {
		return "", false
	}
	l, ok := f.Enum[raw]
	return l, ok
}

// RawFor reverse-maps a symbolic label to its raw value.
func (f Field) RawFor(label string) (uint32, bool) {
	for raw, l := range f.Enum {
		if l == label {
			return raw, true
		}
	}
	return 0, false
}
