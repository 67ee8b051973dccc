// internal/session/serial.go
package session

import (
	"errors"
	"time"

	"github.com/goburrow/serial"
	"github.com/rs/zerolog"
)

// Config is minimal transport config. The board speaks 115200 8N1.
type Config struct {
	Port    string
	Baud    int
	Timeout time.Duration
}

// Open connects to the board's serial port and wraps it in a Session.
// ONE attempt, fail fast at startup; reconnection policy belongs to the
// caller.
func Open(cfg Config, log zerolog.Logger) (*Session, func() error, error) {
	if cfg.Port == "" {
		return nil, nil, errors.New("session: serial port required")
	}
	if cfg.Baud <= 0 {
		cfg.Baud = 115200
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	port, err := serial.Open(&serial.Config{
		Address:  cfg.Port,
		BaudRate: cfg.Baud,
		DataBits: 8,
		StopBits: 1,
		Parity:   "N",
		Timeout:  cfg.Timeout,
	})
	if err != nil {
		return nil, nil, err
	}

	log.Info().Str("port", cfg.Port).Int("baud", cfg.Baud).Msg("serial port open")

	return New(port, log), port.Close, nil
}
