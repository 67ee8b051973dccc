// internal/session/session.go
package session

import (
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/tamzrod/ascaso-link/internal/codec"
	"github.com/tamzrod/ascaso-link/internal/frame"
)

// Session is one logical conversation with the control board over a
// byte stream. The protocol is strictly half-duplex request/response;
// the mutex enforces at-most-one-outstanding-frame per session, which
// is the only concurrency discipline the core asks for.
type Session struct {
	mu  sync.Mutex
	rw  io.ReadWriter
	log zerolog.Logger
}

// New wraps an open byte stream. The stream's timeout behavior is the
// caller's: a blocked read surfaces as the stream's own error.
func New(rw io.ReadWriter, log zerolog.Logger) *Session {
	return &Session{rw: rw, log: log}
}

// ReadImage requests length bytes starting at the absolute board
// address offset and returns the validated image. The board may answer
// with fewer bytes than requested; the image carries what arrived.
func (s *Session) ReadImage(offset, length int) (codec.Image, error) {
	req, err := frame.BuildReadRequest(offset, length)
	if err != nil {
		return codec.Image{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.exchange(req, frame.Read)
	if err != nil {
		return codec.Image{}, err
	}

	fr, err := frame.ParseResponse(raw, frame.Request{
		Direction: frame.Read,
		Offset:    offset,
		Length:    length,
	})
	if err != nil {
		return codec.Image{}, err
	}

	s.log.Debug().
		Int("offset", fr.Offset).
		Int("length", fr.Length).
		Msg("image read")

	return codec.Image{Base: fr.Offset, Data: fr.Payload}, nil
}

// Write sends one encoded patch and validates the acknowledgement.
// Nothing is retried here; a failed ack means the write must be
// treated as not applied.
func (s *Session) Write(p codec.Patch) error {
	req, err := frame.BuildWriteRequest(p.Offset, p.Bytes)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.exchange(req, frame.Write)
	if err != nil {
		return err
	}

	if _, err := frame.ParseResponse(raw, frame.Request{
		Direction: frame.Write,
		Offset:    p.Offset,
		Length:    len(p.Bytes),
	}); err != nil {
		return err
	}

	s.log.Debug().
		Int("offset", p.Offset).
		Int("length", len(p.Bytes)).
		Msg("write acknowledged")

	return nil
}

// exchange sends a framed request and reads the complete response.
// Response size is derived from the echoed header, so reads are exact:
// header first, then payload + checksum.
func (s *Session) exchange(req []byte, want frame.Direction) ([]byte, error) {
	s.log.Debug().Str("tx", string(req)).Msg("request")

	if _, err := s.rw.Write(req); err != nil {
		return nil, fmt.Errorf("session: send: %w", err)
	}

	hdr := make([]byte, 9)
	if _, err := io.ReadFull(s.rw, hdr); err != nil {
		return nil, fmt.Errorf("session: read header: %w", err)
	}

	echo, err := frame.ParseHeader(hdr)
	if err != nil {
		return nil, err
	}

	var bodyChars int
	switch want {
	case frame.Write:
		bodyChars = 2 + 2 // "OK" + checksum
	default:
		bodyChars = 2*echo.Length + 2
	}

	rest := make([]byte, bodyChars)
	if _, err := io.ReadFull(s.rw, rest); err != nil {
		return nil, fmt.Errorf("session: read body: %w", err)
	}

	raw := append(hdr, rest...)
	s.log.Debug().Str("rx", string(raw)).Msg("response")
	return raw, nil
}
