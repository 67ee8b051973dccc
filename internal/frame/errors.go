// internal/frame/errors.go
package frame

import "fmt"

// ChecksumError reports a response whose trailing checksum does not
// match the recomputed sum. The frame is discarded whole.
type ChecksumError struct {
	Want byte // declared by the frame
	Got  byte // recomputed over the body
}

func (e *ChecksumError) Error() string {
	return fmt.Sprintf("frame: checksum mismatch: frame says %02X, body sums to %02X", e.Want, e.Got)
}

// DirectionError reports a frame whose marker is not the expected one.
type DirectionError struct {
	Want Direction
	Got  byte
}

func (e *DirectionError) Error() string {
	if e.Want.valid() {
		return fmt.Sprintf("frame: expected %q marker, got %q", byte(e.Want), e.Got)
	}
	return fmt.Sprintf("frame: invalid marker %q", e.Got)
}

// HeaderMismatchError reports a response whose offset/length echo does
// not match the request it should answer.
type HeaderMismatchError struct {
	Want Request
	Got  Request
}

func (e *HeaderMismatchError) Error() string {
	return fmt.Sprintf(
		"frame: header echo mismatch: sent offset=%d length=%d, response says offset=%d length=%d",
		e.Want.Offset, e.Want.Length, e.Got.Offset, e.Got.Length,
	)
}

// LengthError reports a payload that does not match the declared length.
type LengthError struct {
	Declared     int
	PayloadChars int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf(
		"frame: length mismatch: header declares %d bytes, payload has %d hex chars",
		e.Declared, e.PayloadChars,
	)
}

// WriteRejectedError reports a write acknowledgement that is not the
// literal OK. The raw payload is kept for diagnostics.
type WriteRejectedError struct {
	Payload string
}

func (e *WriteRejectedError) Error() string {
	return fmt.Sprintf("frame: write rejected, board answered %q", e.Payload)
}
