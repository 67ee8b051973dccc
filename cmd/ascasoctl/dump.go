// cmd/ascasoctl/dump.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDumpCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Hex dump of the memory image",
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := a.acquireImage()
			if err != nil {
				return err
			}

			const lineLen = 16
			for i := 0; i < len(img.Data); i += lineLen {
				end := i + lineLen
				if end > len(img.Data) {
					end = len(img.Data)
				}
				chunk := img.Data[i:end]

				hexCol := ""
				asciiCol := ""
				for _, b := range chunk {
					hexCol += fmt.Sprintf("%02X ", b)
					if b >= 0x20 && b <= 0x7E {
						asciiCol += string(b)
					} else {
						asciiCol += "."
					}
				}
				// Addresses are absolute board offsets, not image indexes.
				fmt.Printf("%04X: %-48s | %s\n", img.Base+i, hexCol, asciiCol)
			}
			return nil
		},
	}
}
