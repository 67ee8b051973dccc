// cmd/ascasoctl/app.go
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tamzrod/ascaso-link/internal/codec"
	"github.com/tamzrod/ascaso-link/internal/config"
	"github.com/tamzrod/ascaso-link/internal/memmap"
	"github.com/tamzrod/ascaso-link/internal/session"
	"github.com/tamzrod/ascaso-link/internal/snapshot"
)

// app carries flag values and the startup-built registry shared by all
// subcommands.
type app struct {
	configPath string
	port       string
	baud       int
	timeoutMs  int
	file       string
	skipRead   bool
	jsonOut    bool
	verbose    bool

	cfg *config.Config
	reg *memmap.Registry
	log zerolog.Logger
}

// setup loads config, builds the validated registry and applies limit
// overrides. Fail fast: nothing talks to the board before this passes.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	level := zerolog.InfoLevel
	if a.verbose {
		level = zerolog.DebugLevel
	}
	a.log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	// ---- config ----
	a.cfg = &config.Config{}
	if a.configPath != "" {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return fmt.Errorf("config load failed: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
		a.cfg = cfg
	}
	config.Normalize(a.cfg)

	// Flags override config.
	if a.port == "" {
		a.port = a.cfg.Serial.Port
	}
	if a.baud == 0 {
		a.baud = a.cfg.Serial.Baudrate
	}
	if a.timeoutMs == 0 {
		a.timeoutMs = a.cfg.Serial.TimeoutMs
	}

	// ---- registry ----
	reg, err := memmap.New(memmap.Table())
	if err != nil {
		return fmt.Errorf("memory map invalid: %w", err)
	}
	for name, lc := range a.cfg.Limits {
		f, err := reg.Lookup(name)
		if err != nil {
			return fmt.Errorf("config limits: %w", err)
		}
		lim, err := codec.ParseLimit(f, lc.Min, lc.Max)
		if err != nil {
			return fmt.Errorf("config limits: %w", err)
		}
		if err := reg.OverrideLimit(name, lim); err != nil {
			return fmt.Errorf("config limits: %w", err)
		}
	}
	a.reg = reg
	return nil
}

// openSession connects to the configured serial port.
func (a *app) openSession() (*session.Session, func() error, error) {
	if a.port == "" {
		return nil, nil, errors.New("no serial port configured (--port)")
	}
	return session.Open(session.Config{
		Port:    a.port,
		Baud:    a.baud,
		Timeout: time.Duration(a.timeoutMs) * time.Millisecond,
	}, a.log)
}

// acquireImage obtains the current memory image: an explicit response
// file wins, then the live port (unless --skip-read), then the cached
// snapshot, then the captured default. Live reads re-read the extended
// window on model-5+ boards and refresh the cache.
func (a *app) acquireImage() (codec.Image, error) {
	if a.file != "" {
		return snapshot.Load(a.file)
	}

	if a.port != "" && !a.skipRead {
		img, err := a.readLive()
		if err == nil {
			return img, nil
		}
		a.log.Warn().Err(err).Msg("live read failed, falling back to cache")
	}

	if img, err := snapshot.Load(a.cfg.Cache.Path); err == nil {
		return img, nil
	}

	a.log.Warn().Msg("no cached snapshot, using captured default image")
	return snapshot.Default()
}

func (a *app) readLive() (codec.Image, error) {
	s, closer, err := a.openSession()
	if err != nil {
		return codec.Image{}, err
	}
	defer closer()

	img, err := s.ReadImage(memmap.WindowOffset, memmap.WindowLength)
	if err != nil {
		return codec.Image{}, err
	}

	// The relocated model-5+ block sits past the baseline window.
	if mf, err := a.reg.Lookup(codec.FieldModel); err == nil {
		if mv, err := codec.Decode(img, mf); err == nil && int(mv.Raw) >= memmap.Model5Plus {
			ext, err := s.ReadImage(memmap.WindowOffset, memmap.ExtendedWindowLength)
			if err != nil {
				return codec.Image{}, err
			}
			img = ext
		}
	}

	if err := snapshot.Save(a.cfg.Cache.Path, img); err != nil {
		a.log.Warn().Err(err).Msg("snapshot save failed")
	}
	return img, nil
}

// resolveView derives the effective field set from an image.
func (a *app) resolveView(img codec.Image) (*memmap.View, error) {
	return codec.ResolveView(img, a.reg)
}
