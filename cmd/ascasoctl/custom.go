// cmd/ascasoctl/custom.go
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tamzrod/ascaso-link/internal/codec"
)

// newCustomCmd exposes raw address access for offsets the map does not
// name yet. Values are unscaled.
func newCustomCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Raw access to unmapped memory offsets",
	}

	readCmd := &cobra.Command{
		Use:   "read <offset> <size>",
		Short: "Read a raw value (size 1, 2 or 4)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad offset %q", args[0])
			}
			size, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("bad size %q", args[1])
			}

			img, err := a.acquireImage()
			if err != nil {
				return err
			}
			v, err := codec.ReadRaw(img, offset, size)
			if err != nil {
				return err
			}
			fmt.Printf("offset %d (0x%04X): %d (0x%X)\n", offset, offset, v, v)
			return nil
		},
	}

	var dryRun bool
	writeCmd := &cobra.Command{
		Use:   "write <offset> <value> <size>",
		Short: "Write a raw value (size 1, 2 or 4)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			offset, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("bad offset %q", args[0])
			}
			value, err := strconv.ParseUint(args[1], 0, 32)
			if err != nil {
				return fmt.Errorf("bad value %q", args[1])
			}
			size, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("bad size %q", args[2])
			}

			patch, err := codec.EncodeRaw(offset, uint32(value), size)
			if err != nil {
				return err
			}

			img, err := a.acquireImage()
			if err != nil {
				return err
			}
			return a.sendPatch(patch, img, dryRun)
		},
	}
	writeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the frame without sending it")

	cmd.AddCommand(readCmd)
	cmd.AddCommand(writeCmd)
	return cmd
}
