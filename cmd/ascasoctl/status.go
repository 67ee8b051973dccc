// cmd/ascasoctl/status.go
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tamzrod/ascaso-link/internal/codec"
	"github.com/tamzrod/ascaso-link/internal/memmap"
)

// displayGroups orders the status output the way the machine menus do.
var displayGroups = []struct {
	title  string
	fields []string
}{
	{"Machine", []string{"model", "power_state", "coffee_group_state", "steam_state", "num_groups", "language", "water_connection"}},
	{"Temperatures", []string{"temperature_unit", "coffee_temperature", "steam_temperature", "offset_temperature", "standby_temperature", "standby_time"}},
	{"Doses", []string{"flush_enabled", "dose_S1", "dose_S2", "dose_L1", "dose_L2",
		"dose_S1_gr2", "dose_S2_gr2", "dose_L1_gr2", "dose_L2_gr2",
		"dose_S1_gr3", "dose_S2_gr3", "dose_L1_gr3", "dose_L2_gr3"}},
	{"Pre-infusion", []string{"pre_infusion_enabled", "pre_infusion_S1", "pre_infusion_S2", "pre_infusion_L1", "pre_infusion_L2",
		"pre_infusion_S1_gr2", "pre_infusion_S2_gr2", "pre_infusion_L1_gr2", "pre_infusion_L2_gr2",
		"pre_infusion_S1_gr3", "pre_infusion_S2_gr3", "pre_infusion_L1_gr3", "pre_infusion_L2_gr3"}},
	{"Auto timer", []string{"autotimer_enabled", "autotimer_h_on", "autotimer_m_on", "autotimer_h_off", "autotimer_m_off"}},
	{"Counters", []string{"counter_S1", "counter_S2", "counter_L1", "counter_L2", "counter_XL",
		"counter_S1_gr2", "counter_S2_gr2", "counter_L1_gr2", "counter_L2_gr2", "counter_XL_gr2",
		"counter_S1_gr3", "counter_S2_gr3", "counter_L1_gr3", "counter_L2_gr3", "counter_XL_gr3",
		"counter_total"}},
}

func newStatusCmd(a *app) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Read and display the machine state",
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := a.acquireImage()
			if err != nil {
				return err
			}
			view, err := a.resolveView(img)
			if err != nil {
				return err
			}
			snap := codec.DecodeAll(img, view)

			if a.jsonOut {
				return printJSON(snap, view.Model())
			}
			printGrouped(snap, view.Model(), filter)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "show only fields containing this substring")
	return cmd
}

func printJSON(snap codec.Snapshot, model int) error {
	out := make(map[string]string, len(snap.Values)+1)
	for name, v := range snap.Values {
		out[name] = v.String()
	}
	out["model_name"] = memmap.ModelName(model)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Values    map[string]string `json:"values"`
		Truncated []string          `json:"truncated,omitempty"`
	}{Values: out, Truncated: snap.Truncated})
}

func printGrouped(snap codec.Snapshot, model int, filter string) {
	fmt.Printf("Machine: %s\n", memmap.ModelName(model))

	for _, g := range displayGroups {
		shown := false
		for _, name := range g.fields {
			if filter != "" && !strings.Contains(name, filter) {
				continue
			}
			v, ok := snap.Values[name]
			if !ok {
				continue
			}
			if !shown {
				fmt.Printf("\n%s:\n", g.title)
				shown = true
			}
			fmt.Printf("  %-22s %s\n", name, v.String())
		}
	}

	if len(snap.Truncated) > 0 {
		fmt.Printf("\nNot present in this image: %s\n", strings.Join(snap.Truncated, ", "))
	}
}
