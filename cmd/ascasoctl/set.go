// cmd/ascasoctl/set.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tamzrod/ascaso-link/internal/codec"
	"github.com/tamzrod/ascaso-link/internal/frame"
	"github.com/tamzrod/ascaso-link/internal/snapshot"
)

func newSetCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "set <field> <value>",
		Short: "Encode and send one setting",
		Long: `set validates the value against the memory map, encodes it, and
sends a write frame. Encoding failures reject the write before any
wire traffic; a bad acknowledgement means the write did not apply.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, input := args[0], args[1]

			// The current image decides the model, which decides where
			// the field lives.
			img, err := a.acquireImage()
			if err != nil {
				return err
			}
			view, err := a.resolveView(img)
			if err != nil {
				return err
			}

			f, err := view.Lookup(name)
			if err != nil {
				return err
			}
			val, err := codec.ParseInput(f, input)
			if err != nil {
				return err
			}
			patch, err := codec.Encode(f, val)
			if err != nil {
				return err
			}

			return a.sendPatch(patch, img, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the frame without sending it")
	return cmd
}

// sendPatch delivers an encoded patch to the board, or prints the frame
// when no port is available or --dry-run is set. On a confirmed ack the
// cached image is patched too, so later offline reads stay current.
func (a *app) sendPatch(patch codec.Patch, img codec.Image, dryRun bool) error {
	raw, err := frame.BuildWriteRequest(patch.Offset, patch.Bytes)
	if err != nil {
		return err
	}

	if dryRun || a.port == "" {
		fmt.Printf("%s\n", raw)
		return nil
	}

	s, closer, err := a.openSession()
	if err != nil {
		return err
	}
	defer closer()

	if err := s.Write(patch); err != nil {
		return err
	}
	a.log.Info().Int("offset", patch.Offset).Int("length", len(patch.Bytes)).Msg("write confirmed")

	if err := codec.Apply(img, patch); err == nil {
		if err := snapshot.Save(a.cfg.Cache.Path, img); err != nil {
			a.log.Warn().Err(err).Msg("snapshot save failed")
		}
	}
	return nil
}
