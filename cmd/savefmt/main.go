package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "savefmt",
	Short: "Format values through guarded stream state",
	Long: `savefmt renders and scans values through formatting specs and profiles,
guarding the shared stream's configuration around every change.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		mode, err := cmd.Root().PersistentFlags().GetString("color")
		if err != nil {
			return err
		}
		switch mode {
		case "on":
			color.NoColor = false
		case "off":
			color.NoColor = true
		case "auto":
			// fatih/color detects terminals on its own.
		default:
			return fmt.Errorf("unsupported color mode %q (must be auto, on or off)", mode)
		}
		return nil
	},
}

func main() {
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(scanCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
