// internal/codec/codec.go
//
// Pure translation between the board's memory image and typed values.
// No IO. No side effects. The image is caller-owned: decode reads a
// view, encode returns a patch, nothing is retained.
package codec

import (
	"fmt"

	"github.com/tamzrod/ascaso-link/internal/memmap"
)

// Image is a caller-owned slice of board memory. Base is the absolute
// address of Data[0]; the board reports its window starting at
// memmap.WindowOffset, not at zero.
type Image struct {
	Base int
	Data []byte
}

// End returns the first absolute address past the image.
func (img Image) End() int { return img.Base + len(img.Data) }

// Patch is one encoded write: Bytes belong at absolute address Offset.
// The caller decides whether to splice it into an image, a frame, or both.
type Patch struct {
	Offset int
	Bytes  []byte
}

// Snapshot is the result of decoding a whole view against one image.
type Snapshot struct {
	Values map[string]Value

	// Truncated lists fields whose range fell outside the image, in
	// offset order. A short read skips fields, it does not fail.
	Truncated []string
}

// Decode reads one field from the image. Pure function of (img, f).
func Decode(img Image, f memmap.Field) (Value, error) {
	raw, err := readRaw(img, f.Name, f.Offset, f.Length)
	if err != nil {
		return Value{}, err
	}

	switch {
	case f.Bool:
		return Bool(raw != 0), nil
	case f.Enum != nil:
		if label, ok := f.LabelFor(raw); ok {
			return Value{Kind: KindEnum, Raw: raw, Label: label}, nil
		}
		// Unmapped state stays visible as its raw value.
		return Value{Kind: KindEnum, Raw: raw, Unknown: true}, nil
	default:
		return Int(raw, f.EffectiveScale()), nil
	}
}

// DecodeAll decodes every field of the view that fits the image.
// Fields beyond the image's actual length are reported as Truncated,
// never as an error: a partial read should not hide the fields present.
func DecodeAll(img Image, v *memmap.View) Snapshot {
	snap := Snapshot{Values: make(map[string]Value, len(v.Fields()))}
	for _, f := range v.Fields() {
		val, err := Decode(img, f)
		if err != nil {
			snap.Truncated = append(snap.Truncated, f.Name)
			continue
		}
		snap.Values[f.Name] = val
	}
	return snap
}

// Encode turns a value into a byte patch at the field's effective
// offset. All validation happens here, before any wire traffic; a write
// is all-or-nothing.
func Encode(f memmap.Field, v Value) (Patch, error) {
	if f.Access == memmap.ReadOnly {
		return Patch{}, &ReadOnlyError{Field: f.Name}
	}

	raw, err := rawFor(f, v)
	if err != nil {
		return Patch{}, err
	}

	if !fitsLength(uint64(raw), f.Length) {
		return Patch{}, &RangeError{
			Field: f.Name,
			Value: fmt.Sprintf("%d", raw),
			Min:   0,
			Max:   maxForLength(f.Length),
		}
	}
	if f.Limit != nil && (raw < f.Limit.Min || raw > f.Limit.Max) {
		return Patch{}, &RangeError{
			Field: f.Name,
			Value: formatScaled(raw, f.EffectiveScale()),
			Min:   uint64(f.Limit.Min),
			Max:   uint64(f.Limit.Max),
		}
	}

	return Patch{Offset: f.Offset, Bytes: putLE(raw, f.Length)}, nil
}

// rawFor maps a typed value onto the field's storage integer.
func rawFor(f memmap.Field, v Value) (uint32, error) {
	switch v.Kind {
	case KindBool:
		if !f.Bool {
			return 0, &KindError{Field: f.Name, Kind: v.Kind}
		}
		if v.Bool {
			return 1, nil
		}
		return 0, nil

	case KindEnum:
		if f.Enum == nil {
			return 0, &KindError{Field: f.Name, Kind: v.Kind}
		}
		if v.Label == "" {
			// Raw fallback for states outside the documented map.
			return v.Raw, nil
		}
		raw, ok := f.RawFor(v.Label)
		if !ok {
			return 0, &UnknownLabelError{Field: f.Name, Label: v.Label}
		}
		return raw, nil

	case KindInt:
		if f.Bool || f.Enum != nil {
			return 0, &KindError{Field: f.Name, Kind: v.Kind}
		}
		return v.Raw, nil

	default:
		return 0, &KindError{Field: f.Name, Kind: v.Kind}
	}
}

// ParseInput converts CLI text into a value for the field: labels for
// enum fields, on/off forms for flags, exact decimals otherwise.
func ParseInput(f memmap.Field, s string) (Value, error) {
	switch {
	case f.Bool:
		switch s {
		case "on", "true", "1", "enabled", "yes":
			return Bool(true), nil
		case "off", "false", "0", "disabled", "no":
			return Bool(false), nil
		default:
			return Value{}, &ParseError{Field: f.Name, Input: s}
		}

	case f.Enum != nil:
		if _, ok := f.RawFor(s); ok {
			return EnumLabel(s), nil
		}
		return Value{}, &UnknownLabelError{Field: f.Name, Label: s}

	default:
		raw, err := parseScaled(f, s)
		if err != nil {
			return Value{}, err
		}
		return Int(raw, f.EffectiveScale()), nil
	}
}

// ParseLimit converts a logical min/max pair into storage units for
// memmap.Registry.OverrideLimit.
func ParseLimit(f memmap.Field, min, max string) (memmap.Limit, error) {
	lo, err := parseScaled(f, min)
	if err != nil {
		return memmap.Limit{}, err
	}
	hi, err := parseScaled(f, max)
	if err != nil {
		return memmap.Limit{}, err
	}
	if lo > hi {
		return memmap.Limit{}, fmt.Errorf("codec: field %q: limit min %s > max %s", f.Name, min, max)
	}
	return memmap.Limit{Min: lo, Max: hi}, nil
}

// ---- custom (raw address) access ----

// ReadRaw reads an unscaled integer at an arbitrary absolute address.
func ReadRaw(img Image, offset, length int) (uint32, error) {
	return readRaw(img, "custom", offset, length)
}

// EncodeRaw builds a patch for an arbitrary absolute address.
func EncodeRaw(offset int, value uint32, length int) (Patch, error) {
	if length != 1 && length != 2 && length != 4 {
		return Patch{}, fmt.Errorf("codec: custom length must be 1, 2 or 4, got %d", length)
	}
	if !fitsLength(uint64(value), length) {
		return Patch{}, &RangeError{
			Field: "custom",
			Value: fmt.Sprintf("%d", value),
			Min:   0,
			Max:   maxForLength(length),
		}
	}
	return Patch{Offset: offset, Bytes: putLE(value, length)}, nil
}

// Apply splices a patch into a caller-owned image. This is the only
// codec function that mutates anything, and it mutates only its argument.
func Apply(img Image, p Patch) error {
	rel := p.Offset - img.Base
	if rel < 0 || rel+len(p.Bytes) > len(img.Data) {
		return &OutOfBoundsError{
			Field:    "patch",
			Offset:   p.Offset,
			Length:   len(p.Bytes),
			ImageEnd: img.End(),
		}
	}
	copy(img.Data[rel:], p.Bytes)
	return nil
}

// Slice returns a copy of the image bytes at [offset, offset+length).
func Slice(img Image, offset, length int) ([]byte, error) {
	rel := offset - img.Base
	if rel < 0 || length < 0 || rel+length > len(img.Data) {
		return nil, &OutOfBoundsError{
			Field:    "slice",
			Offset:   offset,
			Length:   length,
			ImageEnd: img.End(),
		}
	}
	out := make([]byte, length)
	copy(out, img.Data[rel:])
	return out, nil
}

// ---- little-endian plumbing ----

func readRaw(img Image, name string, offset, length int) (uint32, error) {
	rel := offset - img.Base
	if rel < 0 || length <= 0 || rel+length > len(img.Data) {
		return 0, &OutOfBoundsError{
			Field:    name,
			Offset:   offset,
			Length:   length,
			ImageEnd: img.End(),
		}
	}
	var raw uint32
	for i := length - 1; i >= 0; i-- {
		raw = raw<<8 | uint32(img.Data[rel+i])
	}
	return raw, nil
}

func putLE(v uint32, length int) []byte {
	out := make([]byte, length)
	for i := 0; i < length; i++ {
		out[i] = byte(v >> (8 * i))
	}
	return out
}
