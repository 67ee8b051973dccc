// internal/snapshot/snapshot.go
//
// Cached image persistence. The on-disk format is one full framed read
// response line, checksum included, so a stored snapshot validates
// exactly like a live one.
package snapshot

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tamzrod/ascaso-link/internal/codec"
	"github.com/tamzrod/ascaso-link/internal/frame"
)

// Load reads a cached image from path. The line's own header supplies
// the expected offset and length; the checksum must hold.
func Load(path string) (codec.Image, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return codec.Image{}, err
	}
	img, err := Parse(firstLine(raw))
	if err != nil {
		return codec.Image{}, fmt.Errorf("snapshot %s: %w", path, err)
	}
	return img, nil
}

// Save writes an image to path as a framed response line.
func Save(path string, img codec.Image) error {
	line, err := frame.BuildReadResponse(img.Base, img.Data)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, line, 0o644)
}

// Parse validates one stored response line.
func Parse(line []byte) (codec.Image, error) {
	hdr, err := frame.ParseHeader(line)
	if err != nil {
		return codec.Image{}, err
	}
	fr, err := frame.ParseResponse(line, hdr)
	if err != nil {
		return codec.Image{}, err
	}
	return codec.Image{Base: fr.Offset, Data: fr.Payload}, nil
}

func firstLine(raw []byte) []byte {
	raw = bytes.TrimSpace(raw)
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		raw = bytes.TrimSpace(raw[:i])
	}
	return raw
}
