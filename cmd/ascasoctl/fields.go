// cmd/ascasoctl/fields.go
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tamzrod/ascaso-link/internal/memmap"
)

func newFieldsCmd(a *app) *cobra.Command {
	var model int

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "List the effective memory map for a model",
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := a.reg.ForModel(model)
			if err != nil {
				return err
			}
			view = view.ForGroups(memmap.GroupCount(model))

			fmt.Printf("Model %d (%s):\n\n", model, memmap.ModelName(model))
			fmt.Printf("%-22s %6s %4s %-6s %-6s %s\n", "NAME", "OFFSET", "LEN", "TYPE", "ACCESS", "RANGE")
			for _, f := range view.Fields() {
				access := "rw"
				if f.Access == memmap.ReadOnly {
					access = "ro"
				}
				rng := "-"
				if f.Limit != nil {
					rng = formatLimit(f)
				}
				fmt.Printf("%-22s %6d %4d %-6s %-6s %s\n",
					f.Name, f.Offset, f.Length, f.Encoding, access, rng)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&model, "model", 2, "model id (1-8)")
	return cmd
}

func formatLimit(f memmap.Field) string {
	scale := f.EffectiveScale()
	if scale == 1 {
		return fmt.Sprintf("%d..%d", f.Limit.Min, f.Limit.Max)
	}
	return scaledBound(f.Limit.Min, scale) + ".." + scaledBound(f.Limit.Max, scale)
}

func scaledBound(raw uint32, scale int) string {
	whole := raw / uint32(scale)
	rem := raw % uint32(scale)
	if rem == 0 {
		return strconv.FormatUint(uint64(whole), 10)
	}
	// Limits in the table use scales dividing a power of ten.
	p10 := 1
	for p10%scale != 0 {
		p10 *= 10
	}
	return fmt.Sprintf("%d.%d", whole, uint64(rem)*uint64(p10/scale))
}
