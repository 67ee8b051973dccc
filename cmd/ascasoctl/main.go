// cmd/ascasoctl/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	app := &app{}

	rootCmd := &cobra.Command{
		Use:   "ascasoctl",
		Short: "Read and write Ascaso espresso machine settings over serial",
		Long: `ascasoctl talks the Ascaso control-board protocol: it reads the
board's memory image over a serial link, decodes named settings and
counters, and generates validated write commands.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: app.setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&app.configPath, "config", "", "config file (yaml)")
	pf.StringVar(&app.port, "port", "", "serial port of the machine")
	pf.IntVar(&app.baud, "baud", 0, "baud rate (default 115200)")
	pf.IntVar(&app.timeoutMs, "timeout", 0, "serial timeout in milliseconds (default 5000)")
	pf.StringVar(&app.file, "file", "", "parse a saved response file instead of the port")
	pf.BoolVar(&app.skipRead, "skip-read", false, "use the cached snapshot instead of reading the board")
	pf.BoolVar(&app.jsonOut, "json", false, "output as JSON")
	pf.BoolVarP(&app.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newStatusCmd(app))
	rootCmd.AddCommand(newGetCmd(app))
	rootCmd.AddCommand(newSetCmd(app))
	rootCmd.AddCommand(newAutotimerCmd(app))
	rootCmd.AddCommand(newCustomCmd(app))
	rootCmd.AddCommand(newFieldsCmd(app))
	rootCmd.AddCommand(newDumpCmd(app))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
