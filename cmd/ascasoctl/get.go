// cmd/ascasoctl/get.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tamzrod/ascaso-link/internal/codec"
)

func newGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <field>...",
		Short: "Decode one or more named fields",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := a.acquireImage()
			if err != nil {
				return err
			}
			view, err := a.resolveView(img)
			if err != nil {
				return err
			}

			for _, name := range args {
				f, err := view.Lookup(name)
				if err != nil {
					return err
				}
				v, err := codec.Decode(img, f)
				if err != nil {
					return err
				}
				fmt.Printf("%s: %s\n", name, v.String())
			}
			return nil
		},
	}
}
