// cmd/ascasoctl/autotimer.go
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tamzrod/ascaso-link/internal/codec"
)

// timerDisabledCell is what the board stores in hour/minute cells when
// the timer is off.
const timerDisabledCell = 100

// newAutotimerCmd manages the five consecutive autotimer bytes as one
// write, the way the machine firmware expects them.
func newAutotimerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "autotimer",
		Short: "Control the auto power on/off timer",
	}

	var onTime, offTime string
	var dryRun bool

	setCmd := &cobra.Command{
		Use:   "set",
		Short: "Enable the timer with on/off times",
		RunE: func(cmd *cobra.Command, args []string) error {
			hOn, mOn, err := parseClock(onTime)
			if err != nil {
				return fmt.Errorf("--on: %w", err)
			}
			hOff, mOff, err := parseClock(offTime)
			if err != nil {
				return fmt.Errorf("--off: %w", err)
			}
			return a.writeTimerBlock([5]uint32{1, hOn, mOn, hOff, mOff}, dryRun)
		},
	}
	setCmd.Flags().StringVar(&onTime, "on", "", "power-on time hh:mm (24h)")
	setCmd.Flags().StringVar(&offTime, "off", "", "power-off time hh:mm (24h)")
	setCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the frame without sending it")
	setCmd.MarkFlagRequired("on")
	setCmd.MarkFlagRequired("off")

	var disableDry bool
	disableCmd := &cobra.Command{
		Use:   "disable",
		Short: "Disable the timer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.writeTimerBlock([5]uint32{
				0,
				timerDisabledCell, timerDisabledCell,
				timerDisabledCell, timerDisabledCell,
			}, disableDry)
		},
	}
	disableCmd.Flags().BoolVar(&disableDry, "dry-run", false, "print the frame without sending it")

	cmd.AddCommand(setCmd)
	cmd.AddCommand(disableCmd)
	return cmd
}

// writeTimerBlock encodes the enable flag plus the four clock cells and
// splices them into one contiguous patch.
func (a *app) writeTimerBlock(cells [5]uint32, dryRun bool) error {
	img, err := a.acquireImage()
	if err != nil {
		return err
	}
	view, err := a.resolveView(img)
	if err != nil {
		return err
	}

	names := [5]string{
		"autotimer_enabled",
		"autotimer_h_on", "autotimer_m_on",
		"autotimer_h_off", "autotimer_m_off",
	}

	block := make([]byte, 0, len(names))
	start := 0
	for i, name := range names {
		f, err := view.Lookup(name)
		if err != nil {
			return err
		}
		var v codec.Value
		if f.Bool {
			v = codec.Bool(cells[i] != 0)
		} else {
			v = codec.Int(cells[i], 1)
		}
		p, err := codec.Encode(f, v)
		if err != nil {
			return err
		}
		if i == 0 {
			start = p.Offset
		} else if p.Offset != start+len(block) {
			return fmt.Errorf("autotimer fields are not contiguous at offset %d", p.Offset)
		}
		block = append(block, p.Bytes...)
	}

	return a.sendPatch(codec.Patch{Offset: start, Bytes: block}, img, dryRun)
}

func parseClock(s string) (h, m uint32, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("time must be hh:mm, got %q", s)
	}
	hv, err := strconv.Atoi(parts[0])
	if err != nil || hv < 0 || hv > 23 {
		return 0, 0, fmt.Errorf("hour must be 0-23, got %q", parts[0])
	}
	mv, err := strconv.Atoi(parts[1])
	if err != nil || mv < 0 || mv > 59 {
		return 0, 0, fmt.Errorf("minute must be 0-59, got %q", parts[1])
	}
	return uint32(hv), uint32(mv), nil
}
