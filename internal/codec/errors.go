// internal/codec/errors.go
package codec

import "fmt"

// OutOfBoundsError reports a descriptor range that does not fit the
// image. Locally recoverable: DecodeAll downgrades it to a Truncated
// entry, since a short image is an expected occurrence.
type OutOfBoundsError struct {
	Field    string
	Offset   int
	Length   int
	ImageEnd int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"codec: field %q range [%d,%d) outside image ending at %d",
		e.Field, e.Offset, e.Offset+e.Length, e.ImageEnd,
	)
}

// ReadOnlyError reports a write attempt on a counter or state the board
// owns. Rejected before any wire traffic.
type ReadOnlyError struct {
	Field string
}

func (e *ReadOnlyError) Error() string {
	return fmt.Sprintf("codec: field %q is read-only", e.Field)
}

// UnknownLabelError reports an enum label the field does not map.
// No guessing: the write is rejected.
type UnknownLabelError struct {
	Field string
	Label string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("codec: field %q has no value %q", e.Field, e.Label)
}

// RangeError reports a value outside the field's representable or
// permitted range. Min/Max are in raw storage units.
type RangeError struct {
	Field string
	Value string
	Min   uint64
	Max   uint64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf(
		"codec: field %q: value %s outside range [%d,%d] (storage units)",
		e.Field, e.Value, e.Min, e.Max,
	)
}

// ParseError reports CLI input that is not a decimal number.
type ParseError struct {
	Field string
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("codec: field %q: cannot parse %q as a decimal value", e.Field, e.Input)
}

// KindError reports a value whose kind does not match the field's type.
type KindError struct {
	Field string
	Kind  Kind
}

func (e *KindError) Error() string {
	return fmt.Sprintf("codec: field %q: value kind %d does not match field type", e.Field, int(e.Kind))
}
