// internal/frame/frame.go
//
// Wire framing for the control-board serial protocol. Frames are
// printable ASCII hex:
//
//	read-request   'r' offset{4} length{4} checksum{2}
//	read-response  'r' offset{4} length{4} payload{2*length} checksum{2}
//	write-request  'w' offset{4} length{4} data{2*length} checksum{2}
//	write-response 'w' offset{4} length{4} "OK" checksum{2}
//
// Offsets and lengths are big-endian hex text; byte order inside
// multi-byte field values is the codec's concern, not ours. Output is
// uppercase, input is accepted in either case. This layer is a pure
// validating translator: no IO, no retries.
package frame

import (
	"encoding/hex"
	"fmt"
	"strconv"
)

// Direction is the frame marker character.
type Direction byte

const (
	Read  Direction = 'r'
	Write Direction = 'w'
)

func (d Direction) valid() bool { return d == Read || d == Write }

// Request records what was sent, so the response can be validated
// against it.
type Request struct {
	Direction Direction
	Offset    int
	Length    int
}

// Frame is one parsed wire message.
type Frame struct {
	Direction Direction
	Offset    int
	Length    int

	// Payload is the decoded data bytes of a read response; nil for a
	// write acknowledgement.
	Payload []byte
}

const (
	headerChars   = 9 // marker + offset{4} + length{4}
	checksumChars = 2
)

// writeAckPayload is the literal body of an accepted write.
const writeAckPayload = "OK"

// Checksum sums the ASCII code points of b modulo 256.
func Checksum(b []byte) byte {
	var sum int
	for _, c := range b {
		sum += int(c)
	}
	return byte(sum % 256)
}

// BuildReadRequest frames a request for length bytes at offset.
func BuildReadRequest(offset, length int) ([]byte, error) {
	if err := checkHeader(offset, length); err != nil {
		return nil, err
	}
	return seal(fmt.Sprintf("%c%04X%04X", Read, offset, length)), nil
}

// BuildWriteRequest frames data for writing at offset.
func BuildWriteRequest(offset int, data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("frame: write request needs data")
	}
	if err := checkHeader(offset, len(data)); err != nil {
		return nil, err
	}
	return seal(fmt.Sprintf("%c%04X%04X%X", Write, offset, len(data), data)), nil
}

// BuildReadResponse frames a device-side read response. Used by the
// snapshot cache (the stored format is a full response line) and by
// test doubles standing in for the board.
func BuildReadResponse(offset int, data []byte) ([]byte, error) {
	if err := checkHeader(offset, len(data)); err != nil {
		return nil, err
	}
	return seal(fmt.Sprintf("%c%04X%04X%X", Read, offset, len(data), data)), nil
}

// BuildWriteAck frames a device-side write acknowledgement.
func BuildWriteAck(offset, length int) ([]byte, error) {
	if err := checkHeader(offset, length); err != nil {
		return nil, err
	}
	return seal(fmt.Sprintf("%c%04X%04X%s", Write, offset, length, writeAckPayload)), nil
}

// ParseHeader reads the marker, offset and length of a frame without
// validating its body. The session uses it to size the remaining read;
// the snapshot cache uses it to bootstrap a stored response.
func ParseHeader(raw []byte) (Request, error) {
	if len(raw) < headerChars {
		return Request{}, fmt.Errorf("frame: %d bytes is too short for a header", len(raw))
	}
	d := Direction(raw[0])
	if !d.valid() {
		return Request{}, &DirectionError{Got: raw[0]}
	}
	offset, err := parseHex(raw[1:5])
	if err != nil {
		return Request{}, fmt.Errorf("frame: bad offset field: %w", err)
	}
	length, err := parseHex(raw[5:9])
	if err != nil {
		return Request{}, fmt.Errorf("frame: bad length field: %w", err)
	}
	return Request{Direction: d, Offset: offset, Length: length}, nil
}

// ParseResponse validates a raw response against the request it
// answers. A failed check discards the frame; nothing is partially
// trusted. A read response may declare fewer bytes than requested
// (the board answers with what it has); more is an error.
func ParseResponse(raw []byte, want Request) (Frame, error) {
	if !want.Direction.valid() {
		return Frame{}, &DirectionError{Got: byte(want.Direction)}
	}
	if len(raw) < headerChars+checksumChars {
		return Frame{}, fmt.Errorf("frame: response too short (%d bytes)", len(raw))
	}

	if Direction(raw[0]) != want.Direction {
		return Frame{}, &DirectionError{Want: want.Direction, Got: raw[0]}
	}

	// Checksum first: a frame that fails it has no trustworthy fields.
	body := raw[:len(raw)-checksumChars]
	declared, err := parseHex(raw[len(raw)-checksumChars:])
	if err != nil {
		return Frame{}, fmt.Errorf("frame: bad checksum field: %w", err)
	}
	if got := Checksum(body); got != byte(declared) {
		return Frame{}, &ChecksumError{Want: byte(declared), Got: got}
	}

	hdr, err := ParseHeader(raw)
	if err != nil {
		return Frame{}, err
	}
	if hdr.Offset != want.Offset {
		return Frame{}, &HeaderMismatchError{Want: want, Got: hdr}
	}

	payloadHex := raw[headerChars : len(raw)-checksumChars]

	switch want.Direction {
	case Write:
		if hdr.Length != want.Length {
			return Frame{}, &HeaderMismatchError{Want: want, Got: hdr}
		}
		if string(payloadHex) != writeAckPayload {
			return Frame{}, &WriteRejectedError{Payload: string(payloadHex)}
		}
		return Frame{Direction: Write, Offset: hdr.Offset, Length: hdr.Length}, nil

	default: // Read
		if hdr.Length > want.Length {
			return Frame{}, &HeaderMismatchError{Want: want, Got: hdr}
		}
		if len(payloadHex) != 2*hdr.Length {
			return Frame{}, &LengthError{Declared: hdr.Length, PayloadChars: len(payloadHex)}
		}
		payload, err := hex.DecodeString(string(payloadHex))
		if err != nil {
			return Frame{}, fmt.Errorf("frame: payload is not hex: %w", err)
		}
		return Frame{Direction: Read, Offset: hdr.Offset, Length: hdr.Length, Payload: payload}, nil
	}
}

func checkHeader(offset, length int) error {
	if offset < 0 || offset > 0xFFFF {
		return fmt.Errorf("frame: offset %d outside 16-bit range", offset)
	}
	if length < 0 || length > 0xFFFF {
		return fmt.Errorf("frame: length %d outside 16-bit range", length)
	}
	return nil
}

// seal appends the checksum of everything before it.
func seal(body string) []byte {
	return []byte(fmt.Sprintf("%s%02X", body, Checksum([]byte(body))))
}

// parseHex accepts either case, matching boards that answer lowercase.
func parseHex(b []byte) (int, error) {
	v, err := strconv.ParseUint(string(b), 16, 32)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}
